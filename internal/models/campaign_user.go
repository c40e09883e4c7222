package models

import (
	"time"

	"gorm.io/gorm"
)

// CampaignUser links an influencer to a campaign. One row per
// (campaign, user) pair, enforced by the composite unique index.
type CampaignUser struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CampaignID        uint           `gorm:"not null;uniqueIndex:idx_campaign_user" json:"campaign_id"`
	UserID            uint           `gorm:"not null;uniqueIndex:idx_campaign_user" json:"user_id"`
	ApplicationStatus string         `gorm:"size:20;not null;index" json:"application_status"` // PENDING, ACCEPTED, REJECTED, COMPLETED, PAID
	ContentApproved   bool           `gorm:"not null;default:false" json:"content_approved"`
	ContentURL        string         `gorm:"size:512" json:"content_url"`
	PaidAt            *time.Time     `json:"paid_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

func (CampaignUser) TableName() string {
	return "campaign_users"
}
