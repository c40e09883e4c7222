package handler

import (
	"fmt"
	"net/http"

	"brandloop/internal/domain"
	"brandloop/internal/middleware"
	"brandloop/internal/repository"
	"brandloop/internal/service"
	"brandloop/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct {
	withdrawalSvc  *service.WithdrawalService
	withdrawalRepo *repository.WithdrawalRepository
	cloud          cloudinary.Client
}

func NewWithdrawalHandler(withdrawalSvc *service.WithdrawalService, withdrawalRepo *repository.WithdrawalRepository, cloud cloudinary.Client) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalSvc: withdrawalSvc, withdrawalRepo: withdrawalRepo, cloud: cloud}
}

// Request reserves the amount immediately and creates a PENDING withdrawal.
func (h *WithdrawalHandler) Request(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount            decimal.Decimal `json:"amount" binding:"required"`
		BankName          string          `json:"bank_name" binding:"required"`
		AccountNumber     string          `json:"account_number" binding:"required"`
		AccountHolderName string          `json:"account_holder_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, newBalance, err := h.withdrawalSvc.Request(userID, req.Amount, req.BankName, req.AccountNumber, req.AccountHolderName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdrawal": w, "new_balance": newBalance})
}

// List returns the caller's own withdrawals, or all of them for operators
// (optionally filtered by status).
func (h *WithdrawalHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	if middleware.GetRole(c) == domain.RoleAdmin {
		list, err := h.withdrawalRepo.List(c.Query("status"), limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"withdrawals": list})
		return
	}
	list, err := h.withdrawalRepo.ListByUserID(middleware.GetUserID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

func (h *WithdrawalHandler) Approve(c *gin.Context) {
	w, err := h.withdrawalSvc.Approve(middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

func (h *WithdrawalHandler) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawalSvc.Reject(middleware.GetUserID(c), paramID(c, "id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

// Complete uploads the multipart transfer proof and marks the withdrawal
// transferred.
func (h *WithdrawalHandler) Complete(c *gin.Context) {
	file, _, err := c.Request.FormFile("transfer_proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transfer_proof file required"})
		return
	}
	defer file.Close()
	id := paramID(c, "id")
	proofURL, err := h.cloud.UploadImage(c.Request.Context(), file, "transfer-proofs",
		fmt.Sprintf("withdrawal-%d-%s", id, uuid.New().String()))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "proof upload failed"})
		return
	}
	w, err := h.withdrawalSvc.Complete(middleware.GetUserID(c), id, proofURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

// Cancel removes the owner's own PENDING withdrawal and returns the
// reserved amount.
func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	if err := h.withdrawalSvc.Cancel(middleware.GetUserID(c), paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
