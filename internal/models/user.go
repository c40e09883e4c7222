package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"uniqueIndex;size:64;not null;default:''" json:"username"`
	Email        string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string          `gorm:"size:255" json:"-"`
	Role         string          `gorm:"size:20;not null;index" json:"role"` // SPONSOR | INFLUENCER | ADMIN
	FullName     string          `gorm:"size:255" json:"full_name"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"` // written only through the ledger
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
