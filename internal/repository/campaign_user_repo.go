package repository

import (
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"gorm.io/gorm"
)

type CampaignUserRepository struct {
	db *gorm.DB
}

func NewCampaignUserRepository(db *gorm.DB) *CampaignUserRepository {
	return &CampaignUserRepository{db: db}
}

func (r *CampaignUserRepository) Create(cu *models.CampaignUser) error {
	return r.db.Create(cu).Error
}

func (r *CampaignUserRepository) GetByID(id uint) (*models.CampaignUser, error) {
	var cu models.CampaignUser
	err := r.db.Preload("User").Preload("Campaign").First(&cu, id).Error
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (r *CampaignUserRepository) Update(cu *models.CampaignUser) error {
	return r.db.Save(cu).Error
}

func (r *CampaignUserRepository) ListByCampaignID(campaignID uint) ([]models.CampaignUser, error) {
	var list []models.CampaignUser
	err := r.db.Where("campaign_id = ?", campaignID).Preload("User").Find(&list).Error
	return list, err
}

// ListPayable returns participations eligible for a batch payout: accepted
// with an approved deliverable and not yet paid.
func (r *CampaignUserRepository) ListPayable(campaignID uint) ([]models.CampaignUser, error) {
	var list []models.CampaignUser
	err := r.db.Where("campaign_id = ? AND application_status = ? AND content_approved = ?",
		campaignID, domain.ApplicationAccepted, true).Preload("User").Find(&list).Error
	return list, err
}

// CountAcceptedApproved counts participations that must be paid before the
// campaign can settle.
func (r *CampaignUserRepository) CountAcceptedApproved(tx *gorm.DB, campaignID uint) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var c int64
	err := tx.Model(&models.CampaignUser{}).
		Where("campaign_id = ? AND application_status IN ? AND content_approved = ?",
			campaignID, []string{domain.ApplicationAccepted, domain.ApplicationPaid}, true).
		Count(&c).Error
	return c, err
}

// CountPaid counts participations already paid for the campaign.
func (r *CampaignUserRepository) CountPaid(tx *gorm.DB, campaignID uint) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var c int64
	err := tx.Model(&models.CampaignUser{}).
		Where("campaign_id = ? AND application_status = ?", campaignID, domain.ApplicationPaid).
		Count(&c).Error
	return c, err
}

// MarkPaid flips the participation to PAID inside the caller's transaction.
func (r *CampaignUserRepository) MarkPaid(tx *gorm.DB, id uint, at time.Time) error {
	return tx.Model(&models.CampaignUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{"application_status": domain.ApplicationPaid, "paid_at": at}).Error
}
