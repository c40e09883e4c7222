package repository

import (
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(cam *models.Campaign) error {
	return r.db.Create(cam).Error
}

func (r *CampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var cam models.Campaign
	err := r.db.First(&cam, id).Error
	if err != nil {
		return nil, err
	}
	return &cam, nil
}

// GetByIDForUpdate loads the campaign with a row lock inside the caller's
// transaction, so the status check and write cannot interleave with the
// deadline timer or a concurrent webhook.
func (r *CampaignRepository) GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Campaign, error) {
	var cam models.Campaign
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cam, id).Error
	if err != nil {
		return nil, err
	}
	return &cam, nil
}

func (r *CampaignRepository) Update(cam *models.Campaign) error {
	return r.db.Save(cam).Error
}

func (r *CampaignRepository) ListBySponsorID(sponsorID uint, limit, offset int) ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("sponsor_id = ?", sponsorID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *CampaignRepository) ListByStatus(status string, limit, offset int) ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("status = ?", status).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// ListPendingPayment returns every campaign still waiting for sponsor
// funding, for deadline recovery after a restart.
func (r *CampaignRepository) ListPendingPayment() ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("status = ?", domain.CampaignPendingPayment).Find(&list).Error
	return list, err
}

// ListActive returns ACTIVE campaigns for milestone evaluation.
func (r *CampaignRepository) ListActive() ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("status = ?", domain.CampaignActive).Find(&list).Error
	return list, err
}

// UpdateSubStatus writes only the sub-status column.
func (r *CampaignRepository) UpdateSubStatus(id uint, subStatus string, at time.Time) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).
		Updates(map[string]interface{}{"sub_status": subStatus, "updated_at": at}).Error
}
