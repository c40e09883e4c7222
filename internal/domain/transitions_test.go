package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{CampaignDraft, CampaignAdminReview, true},
		{CampaignAdminReview, CampaignPendingPayment, true},
		{CampaignAdminReview, CampaignCancelled, true},
		{CampaignPendingPayment, CampaignActive, true},
		{CampaignPendingPayment, CampaignCancelled, true},
		{CampaignActive, CampaignCompleted, true},
		{CampaignActive, CampaignPaid, true},
		{CampaignCompleted, CampaignPaid, true},

		{CampaignDraft, CampaignActive, false},
		{CampaignDraft, CampaignPendingPayment, false},
		{CampaignAdminReview, CampaignActive, false},
		{CampaignPendingPayment, CampaignPaid, false},
		{CampaignCancelled, CampaignActive, false},
		{CampaignCancelled, CampaignAdminReview, false},
		{CampaignPaid, CampaignActive, false},
		{CampaignActive, CampaignDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransitionCampaign(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestWithdrawalTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{WithdrawalPending, WithdrawalApproved, true},
		{WithdrawalPending, WithdrawalRejected, true},
		{WithdrawalPending, WithdrawalCompleted, true},
		{WithdrawalApproved, WithdrawalCompleted, true},

		{WithdrawalApproved, WithdrawalRejected, false},
		{WithdrawalRejected, WithdrawalApproved, false},
		{WithdrawalRejected, WithdrawalCompleted, false},
		{WithdrawalCompleted, WithdrawalApproved, false},
		{WithdrawalCompleted, WithdrawalRejected, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransitionWithdrawal(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestLaterSubStatusNeverMovesBackwards(t *testing.T) {
	assert.Equal(t, SubStatusStudentSelection, LaterSubStatus(SubStatusRegistrationOpen, SubStatusStudentSelection))
	assert.Equal(t, SubStatusPosting, LaterSubStatus(SubStatusPosting, SubStatusContentSubmission))
	assert.Equal(t, SubStatusPayoutSuccess, LaterSubStatus(SubStatusPayoutSuccess, SubStatusRegistrationOpen))
	// equal phase stays put
	assert.Equal(t, SubStatusPosting, LaterSubStatus(SubStatusPosting, SubStatusPosting))
}

func TestValidReference(t *testing.T) {
	assert.True(t, ValidReference(CategoryCampaignPayment, ParticipationRef(1)))
	assert.True(t, ValidReference(CategoryWithdrawal, WithdrawalRef(1)))
	assert.True(t, ValidReference(CategoryRefund, WithdrawalRef(1)))
	assert.True(t, ValidReference(CategoryRefund, CampaignRef(1)))
	assert.True(t, ValidReference(CategoryAdjustment, ManualRef()))

	assert.False(t, ValidReference(CategoryCampaignPayment, CampaignRef(1)))
	assert.False(t, ValidReference(CategoryWithdrawal, ParticipationRef(1)))
	assert.False(t, ValidReference(CategoryRefund, ParticipationRef(1)))
	assert.False(t, ValidReference("UNKNOWN", ManualRef()))
}
