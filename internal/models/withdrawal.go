package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Withdrawal struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `gorm:"not null;index" json:"user_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	BankName          string          `gorm:"size:100;not null" json:"bank_name"`
	AccountNumber     string          `gorm:"size:50;not null" json:"account_number"`
	AccountHolderName string          `gorm:"size:255;not null" json:"account_holder_name"`
	Status            string          `gorm:"size:20;not null;index" json:"status"` // PENDING, APPROVED, REJECTED, COMPLETED
	ReviewedBy        *uint           `json:"reviewed_by"`
	RejectionReason   string          `gorm:"size:255" json:"rejection_reason"`
	TransferProof     string          `gorm:"size:512" json:"transfer_proof"`
	CompletedAt       *time.Time      `json:"completed_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
