package handler

import (
	"net/http"

	"brandloop/internal/middleware"
	"brandloop/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentSvc *service.PaymentService
}

func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Fund creates the hosted checkout for an approved campaign and returns the
// redirect URL the sponsor's browser should follow.
func (h *PaymentHandler) Fund(c *gin.Context) {
	p, err := h.paymentSvc.InitiateFunding(c.Request.Context(), middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order_id":     p.OrderID,
		"amount":       p.Amount,
		"redirect_url": p.RedirectURL,
	})
}

// Return is the browser-return endpoint: it re-queries the gateway for the
// live status and redirects to the frontend with order_id and outcome.
func (h *PaymentHandler) Return(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id required"})
		return
	}
	p, err := h.paymentSvc.Reconcile(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.paymentSvc.FinishRedirectURL(p))
}
