package handler

import (
	"net/http"

	"brandloop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CampaignPaymentHandler exposes the distribution engine to operators.
type CampaignPaymentHandler struct {
	distribution *service.DistributionService
}

func NewCampaignPaymentHandler(distribution *service.DistributionService) *CampaignPaymentHandler {
	return &CampaignPaymentHandler{distribution: distribution}
}

// PayStudent pays one participation an explicit amount.
func (h *CampaignPaymentHandler) PayStudent(c *gin.Context) {
	var req struct {
		ParticipationID uint            `json:"participation_id" binding:"required"`
		Amount          decimal.Decimal `json:"amount" binding:"required"`
		Description     string          `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.distribution.PayOne(req.ParticipationID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

// PayAll pays every payable participant the campaign's price per post.
func (h *CampaignPaymentHandler) PayAll(c *gin.Context) {
	var req struct {
		CampaignID uint `json:"campaign_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.distribution.PayAllAccepted(req.CampaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PayCustom pays an explicit list of (participation, amount) rows.
func (h *CampaignPaymentHandler) PayCustom(c *gin.Context) {
	var req struct {
		Items []service.PayoutItem `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.distribution.PayCustom(req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
