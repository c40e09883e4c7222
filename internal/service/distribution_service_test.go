package service

import (
	"errors"
	"testing"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRemainingBudget(t *testing.T) {
	// funded 220000 = 100000 x 2 + 10% fee; both participants paid 100000
	remaining := RemainingBudget(dec("220000"), dec("200000"), decimal.Zero)
	assert.True(t, remaining.Equal(dec("20000")), "got %s", remaining)

	// re-running the settle check after the refund yields nothing
	again := RemainingBudget(dec("220000"), dec("200000"), dec("20000"))
	assert.False(t, again.IsPositive())

	// over-distribution can never produce a refund
	over := RemainingBudget(dec("100000"), dec("120000"), decimal.Zero)
	assert.False(t, over.IsPositive())
}

func TestPayCustomRejectsBadAmountsUpFront(t *testing.T) {
	s := &DistributionService{}
	_, err := s.PayCustom([]PayoutItem{
		{ParticipationID: 1, Amount: dec("50000")},
		{ParticipationID: 2, Amount: decimal.Zero},
	})
	assert.Error(t, err)

	_, err = s.PayCustom([]PayoutItem{
		{ParticipationID: 1, Amount: dec("-10")},
	})
	assert.Error(t, err)

	_, err = s.PayCustom(nil)
	assert.Error(t, err)
}

func TestPayCustomIsolatesItemFailures(t *testing.T) {
	participants := map[uint]*models.CampaignUser{
		1: {ID: 1, UserID: 11, CampaignID: 5, ApplicationStatus: domain.ApplicationAccepted},
		2: {ID: 2, UserID: 12, CampaignID: 5, ApplicationStatus: domain.ApplicationAccepted},
		3: {ID: 3, UserID: 13, CampaignID: 5, ApplicationStatus: domain.ApplicationAccepted},
	}
	var paid []uint
	s := &DistributionService{}
	s.find = func(id uint) (*models.CampaignUser, error) {
		cu, ok := participants[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return cu, nil
	}
	s.pay = func(cu *models.CampaignUser, amount decimal.Decimal, _ string) (*refundOutcome, error) {
		if cu.ID == 2 {
			return nil, errors.New("credit failed")
		}
		paid = append(paid, cu.ID)
		if cu.ID == 3 {
			// last payout settles the campaign and refunds the leftover
			return &refundOutcome{sponsorID: 1, campaignID: 5, amount: dec("20000")}, nil
		}
		return nil, nil
	}

	res, err := s.PayCustom([]PayoutItem{
		{ParticipationID: 1, Amount: dec("100000")},
		{ParticipationID: 2, Amount: dec("100000")},
		{ParticipationID: 3, Amount: dec("100000")},
		{ParticipationID: 4, Amount: dec("100000")},
	})
	require.NoError(t, err)

	// one credit failure and one missing row do not abort the other payouts
	assert.Equal(t, 2, res.PaidCount)
	assert.Equal(t, 2, res.FailedCount)
	assert.Equal(t, []uint{1, 3}, paid)

	require.Len(t, res.Items, 4)
	assert.True(t, res.Items[0].Paid)
	assert.Equal(t, "credit failed", res.Items[1].Error)
	assert.False(t, res.Items[1].Paid)
	assert.True(t, res.Items[2].Paid)
	assert.Equal(t, "participation not found", res.Items[3].Error)
	assert.True(t, res.Refund.Equal(dec("20000")), "got %s", res.Refund)
}

func TestPayOneRejectsAlreadyPaid(t *testing.T) {
	s := &DistributionService{}
	s.find = func(id uint) (*models.CampaignUser, error) {
		return &models.CampaignUser{ID: id, UserID: 11, ApplicationStatus: domain.ApplicationPaid}, nil
	}
	credited := false
	s.pay = func(*models.CampaignUser, decimal.Decimal, string) (*refundOutcome, error) {
		credited = true
		return nil, nil
	}

	_, err := s.PayOne(1, dec("100000"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.False(t, credited)
}

func TestPayOneRejectsNonPositiveAmount(t *testing.T) {
	s := &DistributionService{}
	_, err := s.PayOne(1, decimal.Zero, "")
	assert.Error(t, err)
	_, err = s.PayOne(1, dec("-5"), "")
	assert.Error(t, err)
}
