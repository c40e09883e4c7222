package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Campaign struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	SponsorID          uint            `gorm:"not null;index" json:"sponsor_id"`
	Title              string          `gorm:"size:255;not null" json:"title"`
	Description        string          `gorm:"type:text" json:"description"`
	PricePerPost       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"price_per_post"`
	InfluencerCount    int             `gorm:"not null;default:0" json:"influencer_count"`
	Status             string          `gorm:"size:20;not null;index" json:"status"`
	SubStatus          string          `gorm:"size:30" json:"sub_status"` // only meaningful while Status == ACTIVE
	CancellationReason string          `gorm:"size:255" json:"cancellation_reason"`

	// PaymentDueAt is persisted so pending deadlines survive a restart.
	PaymentDueAt         *time.Time `json:"payment_due_at"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	SubmissionDeadline   *time.Time `json:"submission_deadline"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Sponsor User `gorm:"foreignKey:SponsorID" json:"-"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
