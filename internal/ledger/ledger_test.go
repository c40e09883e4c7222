package ledger

import (
	"testing"

	"brandloop/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Validation runs before the account row is touched, so a nil tx is fine
// for these paths.

func TestApplyRejectsNonPositiveAmount(t *testing.T) {
	l := New(nil)
	ref := domain.WithdrawalRef(1)
	for _, amt := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-500)} {
		_, err := l.Apply(nil, 1, amt, domain.DirectionDebit, domain.CategoryWithdrawal, ref, "test")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %s", amt)
	}
}

func TestApplyRejectsUnknownDirection(t *testing.T) {
	l := New(nil)
	_, err := l.Apply(nil, 1, decimal.NewFromInt(100), "SIDEWAYS", domain.CategoryAdjustment, domain.ManualRef(), "test")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestApplyRejectsMismatchedReference(t *testing.T) {
	l := New(nil)
	// a withdrawal entry must point at a withdrawal, not a campaign
	_, err := l.Apply(nil, 1, decimal.NewFromInt(100), domain.DirectionDebit, domain.CategoryWithdrawal, domain.CampaignRef(9), "test")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}
