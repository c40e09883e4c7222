package repository

import (
	"brandloop/internal/domain"
	"brandloop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Update(p *models.Payment) error {
	return r.db.Save(p).Error
}

// SumSettledByCampaign returns the campaign's total funded amount, for the
// leftover-budget refund derivation.
func (r *PaymentRepository) SumSettledByCampaign(tx *gorm.DB, campaignID uint) (decimal.Decimal, error) {
	if tx == nil {
		tx = r.db
	}
	var total decimal.Decimal
	err := tx.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("campaign_id = ? AND status = ?", campaignID, domain.PaymentSettled).
		Scan(&total).Error
	return total, err
}
