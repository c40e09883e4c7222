package handler

import (
	"net/http"
	"strconv"

	"brandloop/internal/domain"
	"brandloop/internal/ledger"
	"brandloop/internal/middleware"
	"brandloop/internal/models"
	"brandloop/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BalanceHandler struct {
	userRepo *repository.UserRepository
	txRepo   *repository.TransactionRepository
	ledger   *ledger.Ledger
}

func NewBalanceHandler(userRepo *repository.UserRepository, txRepo *repository.TransactionRepository, lg *ledger.Ledger) *BalanceHandler {
	return &BalanceHandler{userRepo: userRepo, txRepo: txRepo, ledger: lg}
}

// GetBalance returns the current user's ledger balance.
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": u.Balance})
}

// ListTransactions returns the user's ledger history, newest first.
func (h *BalanceHandler) ListTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.txRepo.ListByUserID(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

// Adjust lets an operator move a user's balance outside the automated flows:
// bonuses, penalties, and manual corrections. The entry lands in the ledger
// like any other, with a MANUAL reference.
func (h *BalanceHandler) Adjust(c *gin.Context) {
	var req struct {
		UserID      uint            `json:"user_id" binding:"required"`
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Direction   string          `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
		Category    string          `json:"category" binding:"required,oneof=BONUS PENALTY ADJUSTMENT"`
		Description string          `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var entry *models.Transaction
	err := h.ledger.DB().Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = h.ledger.Apply(tx, req.UserID, req.Amount, req.Direction, req.Category, domain.ManualRef(), req.Description)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": entry})
}

// pagination reads limit/offset query params with sane defaults.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
