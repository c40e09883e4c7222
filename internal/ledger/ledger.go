// Package ledger is the only writer of account balances. Every balance
// change goes through Apply, which locks the account row, mutates the
// balance, and appends exactly one immutable transaction entry — all inside
// the caller's database transaction, so a caller-side status change commits
// or rolls back together with the money movement.
package ledger

import (
	"fmt"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Apply mutates one account's balance and appends the entry explaining it.
// tx must be an open transaction; the account row is locked FOR UPDATE so
// the funds check and the write cannot be separated by a concurrent writer.
// A debit that would take the balance below zero fails with
// domain.ErrInsufficientFunds and writes nothing.
func (l *Ledger) Apply(tx *gorm.DB, userID uint, amount decimal.Decimal, direction, category string, ref domain.Reference, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if direction != domain.DirectionCredit && direction != domain.DirectionDebit {
		return nil, fmt.Errorf("unknown direction %q", direction)
	}
	if !domain.ValidReference(category, ref) {
		return nil, fmt.Errorf("%w: %s / %s", domain.ErrInvalidReference, category, ref.Type)
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("lock account %d: %w", userID, err)
	}

	before := user.Balance
	var after decimal.Decimal
	if direction == domain.DirectionCredit {
		after = before.Add(amount)
	} else {
		if before.LessThan(amount) {
			return nil, domain.ErrInsufficientFunds
		}
		after = before.Sub(amount)
	}

	if err := tx.Model(&user).Update("balance", after).Error; err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	entry := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Direction:     direction,
		Category:      category,
		ReferenceType: ref.Type,
		ReferenceID:   ref.ID,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	return entry, nil
}

// Credit is shorthand for Apply with DirectionCredit.
func (l *Ledger) Credit(tx *gorm.DB, userID uint, amount decimal.Decimal, category string, ref domain.Reference, description string) (*models.Transaction, error) {
	return l.Apply(tx, userID, amount, domain.DirectionCredit, category, ref, description)
}

// Debit is shorthand for Apply with DirectionDebit.
func (l *Ledger) Debit(tx *gorm.DB, userID uint, amount decimal.Decimal, category string, ref domain.Reference, description string) (*models.Transaction, error) {
	return l.Apply(tx, userID, amount, domain.DirectionDebit, category, ref, description)
}

// DB returns the underlying handle for callers that open their own
// transaction around Apply.
func (l *Ledger) DB() *gorm.DB {
	return l.db
}
