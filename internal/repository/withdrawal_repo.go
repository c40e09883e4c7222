package repository

import (
	"brandloop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(tx *gorm.DB, w *models.Withdrawal) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(w).Error
}

// GetByIDForUpdate locks the withdrawal row inside the caller's transaction
// so two operators cannot both pass the status guard.
func (r *WithdrawalRepository) GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) Update(tx *gorm.DB, w *models.Withdrawal) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(w).Error
}

func (r *WithdrawalRepository) Delete(tx *gorm.DB, w *models.Withdrawal) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(w).Error
}

func (r *WithdrawalRepository) ListByUserID(userID uint, limit, offset int) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *WithdrawalRepository) List(status string, limit, offset int) ([]models.Withdrawal, error) {
	q := r.db.Model(&models.Withdrawal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Withdrawal
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
