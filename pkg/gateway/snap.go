// Package gateway is a client for the hosted-checkout payment provider.
// Card and bank processing is entirely the provider's job: this package only
// creates checkout sessions and queries transaction status.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Transaction statuses the provider reports.
const (
	StatusPending    = "pending"
	StatusSettlement = "settlement"
	StatusCapture    = "capture"
	StatusExpire     = "expire"
	StatusCancel     = "cancel"
	StatusDeny       = "deny"
)

type Client struct {
	BaseURL    string
	ServerKey  string
	Production bool
	client     *http.Client
}

func NewClient(baseURL, serverKey string, production bool) *Client {
	if baseURL == "" {
		baseURL = "https://app.sandbox.midtrans.com"
	}
	return &Client{
		BaseURL:    baseURL,
		ServerKey:  serverKey,
		Production: production,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckoutRequest creates one hosted payment page for an order.
type CheckoutRequest struct {
	OrderID       string
	GrossAmount   string // fixed-point decimal string
	CustomerName  string
	CustomerEmail string
	FinishURL     string
}

type CheckoutResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckout opens a checkout session and returns the URL the sponsor's
// browser should be sent to. OrderID doubles as the idempotency key on the
// provider side.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	body := map[string]interface{}{
		"transaction_details": map[string]string{
			"order_id":     req.OrderID,
			"gross_amount": req.GrossAmount,
		},
		"customer_details": map[string]string{
			"first_name": req.CustomerName,
			"email":      req.CustomerEmail,
		},
	}
	if req.FinishURL != "" {
		body["callbacks"] = map[string]string{"finish": req.FinishURL}
	}
	bodyBytes, _ := json.Marshal(body)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/snap/v1/transactions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Basic "+c.basicAuth())
	log.Printf("[Gateway] POST /snap/v1/transactions order_id=%s amount=%s", req.OrderID, req.GrossAmount)
	resp, err := c.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout api: %d %s", resp.StatusCode, string(respBody))
	}
	var out CheckoutResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StatusResponse is the provider's view of one transaction.
type StatusResponse struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	StatusMessage     string `json:"status_message"`
	RawBody           string `json:"-"`
}

// GetStatus re-queries the transaction, used by the browser-return endpoint
// so a redirect never trusts query parameters over the provider.
func (c *Client) GetStatus(ctx context.Context, orderID string) (*StatusResponse, error) {
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v2/"+orderID+"/status", nil)
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Accept", "application/json")
	apiReq.Header.Set("Authorization", "Basic "+c.basicAuth())
	resp, err := c.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status api: %d %s", resp.StatusCode, string(respBody))
	}
	var out StatusResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	out.RawBody = string(respBody)
	return &out, nil
}

func (c *Client) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(c.ServerKey + ":"))
}
