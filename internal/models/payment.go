package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is the gateway-side funding record for a campaign. Only gateway
// callbacks and browser-return reconciliation update it; the distribution
// engine reads it to derive the funded amount.
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	CampaignID  uint            `gorm:"not null;index" json:"campaign_id"`
	SponsorID   uint            `gorm:"not null;index" json:"sponsor_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status      string          `gorm:"size:20;not null;index" json:"status"` // PENDING, SETTLED, EXPIRED, CANCELLED, FAILED
	RedirectURL string          `gorm:"size:512" json:"redirect_url"`
	RawPayload  string          `gorm:"type:text" json:"-"` // last gateway payload, for reconciliation
	SettledAt   *time.Time      `json:"settled_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Sponsor  User     `gorm:"foreignKey:SponsorID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
