package repository

import (
	"brandloop/internal/domain"
	"brandloop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRepository reads the ledger. Appending entries goes through the
// ledger package so a balance write can never be separated from its entry;
// there is deliberately no Update or Delete here.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByUserID(userID uint, limit, offset int) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// SumDistributed returns the total of CAMPAIGN_PAYMENT credits issued against
// the campaign's participations.
func (r *TransactionRepository) SumDistributed(tx *gorm.DB, campaignID uint) (decimal.Decimal, error) {
	if tx == nil {
		tx = r.db
	}
	var total decimal.Decimal
	sub := tx.Model(&models.CampaignUser{}).Select("id").Where("campaign_id = ?", campaignID)
	err := tx.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category = ? AND reference_type = ? AND reference_id IN (?)",
			domain.CategoryCampaignPayment, domain.RefParticipation, sub).
		Scan(&total).Error
	return total, err
}

// SumRefunded returns the total already refunded to the sponsor for the
// campaign, so the settle check can be re-run without double-refunding.
func (r *TransactionRepository) SumRefunded(tx *gorm.DB, campaignID uint) (decimal.Decimal, error) {
	if tx == nil {
		tx = r.db
	}
	var total decimal.Decimal
	err := tx.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category = ? AND reference_type = ? AND reference_id = ?",
			domain.CategoryRefund, domain.RefCampaign, campaignID).
		Scan(&total).Error
	return total, err
}
