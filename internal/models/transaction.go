package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable ledger entry: a single balance change and the
// business object that caused it. Rows are append-only; there is no update or
// delete path anywhere in the codebase.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // always positive; Direction carries the sign
	Direction     string          `gorm:"size:10;not null" json:"direction"`         // CREDIT | DEBIT
	Category      string          `gorm:"size:30;not null;index" json:"category"`    // CAMPAIGN_PAYMENT, WITHDRAWAL, REFUND, ...
	ReferenceType string          `gorm:"size:20;not null" json:"reference_type"`
	ReferenceID   uint            `gorm:"index" json:"reference_id"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	Description   string          `gorm:"size:255" json:"description"`
	CreatedAt     time.Time       `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
