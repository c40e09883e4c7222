package service

import (
	"testing"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCompensationMirrorsReservation(t *testing.T) {
	w := &models.Withdrawal{ID: 9, UserID: 3, Amount: dec("500000.50")}

	amount, category, ref := compensation(w)

	// rejecting or cancelling restores exactly what the request debited
	assert.True(t, amount.Equal(w.Amount), "got %s", amount)
	assert.Equal(t, domain.CategoryRefund, category)
	assert.Equal(t, domain.WithdrawalRef(w.ID), ref)
	assert.True(t, domain.ValidReference(category, ref))
}
