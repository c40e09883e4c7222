package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckout(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/snap/v1/transactions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"tok-1","redirect_url":"https://pay.example/tok-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "SB-server-key", false)
	out, err := c.CreateCheckout(context.Background(), CheckoutRequest{
		OrderID:       "fund-123",
		GrossAmount:   "220000.00",
		CustomerName:  "Acme Sponsor",
		CustomerEmail: "sponsor@acme.test",
		FinishURL:     "https://app.test/payments/finish",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", out.Token)
	assert.Equal(t, "https://pay.example/tok-1", out.RedirectURL)

	// server key is sent as basic auth with an empty password
	assert.Equal(t, "Basic U0Itc2VydmVyLWtleTo=", gotAuth)

	td := gotBody["transaction_details"].(map[string]interface{})
	assert.Equal(t, "fund-123", td["order_id"])
	assert.Equal(t, "220000.00", td["gross_amount"])
	cb := gotBody["callbacks"].(map[string]interface{})
	assert.Equal(t, "https://app.test/payments/finish", cb["finish"])
}

func TestCreateCheckoutAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error_messages":["unauthorized"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "wrong-key", false)
	_, err := c.CreateCheckout(context.Background(), CheckoutRequest{OrderID: "fund-x", GrossAmount: "100.00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestGetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/fund-123/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"order_id":"fund-123","transaction_status":"settlement","gross_amount":"220000.00","payment_type":"bank_transfer"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "SB-server-key", false)
	st, err := c.GetStatus(context.Background(), "fund-123")
	require.NoError(t, err)
	assert.Equal(t, "fund-123", st.OrderID)
	assert.Equal(t, StatusSettlement, st.TransactionStatus)
	assert.NotEmpty(t, st.RawBody)
}

func TestNewClientDefaultsToSandbox(t *testing.T) {
	c := NewClient("", "key", false)
	assert.Equal(t, "https://app.sandbox.midtrans.com", c.BaseURL)
}
