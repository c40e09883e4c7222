package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"brandloop/internal/domain"
	"brandloop/internal/service"

	"github.com/gin-gonic/gin"
)

// GatewayNotification is the asynchronous callback payload from the
// payment provider.
type GatewayNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
}

type PaymentWebhookHandler struct {
	paymentSvc *service.PaymentService
}

func NewPaymentWebhookHandler(paymentSvc *service.PaymentService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{paymentSvc: paymentSvc}
}

// Handle reconciles the Payment record from a gateway callback. Unknown
// orders are acknowledged so the provider stops retrying.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	var payload GatewayNotification
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[Gateway callback] json unmarshal error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.OrderID == "" {
		log.Printf("[Gateway callback] no order_id in payload, acknowledging")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	log.Printf("[Gateway callback] order_id=%s status=%s amount=%s", payload.OrderID, payload.TransactionStatus, payload.GrossAmount)
	if _, err := h.paymentSvc.ApplyGatewayStatus(payload.OrderID, payload.TransactionStatus, string(body)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("[Gateway callback] payment not found for order_id=%s", payload.OrderID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
