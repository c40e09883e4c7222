package domain

// campaignTransitions lists the legal status moves. The PENDING_PAYMENT →
// CANCELLED edge covers both the deadline timer and manual cancellation.
var campaignTransitions = map[string][]string{
	CampaignDraft:          {CampaignAdminReview},
	CampaignAdminReview:    {CampaignPendingPayment, CampaignCancelled},
	CampaignPendingPayment: {CampaignActive, CampaignCancelled},
	CampaignActive:         {CampaignCompleted, CampaignPaid},
	CampaignCompleted:      {CampaignPaid},
}

// CanTransitionCampaign reports whether a campaign may move from one status
// to another. Terminal statuses (CANCELLED, PAID) have no outgoing edges.
func CanTransitionCampaign(from, to string) bool {
	for _, t := range campaignTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

var withdrawalTransitions = map[string][]string{
	WithdrawalPending:  {WithdrawalApproved, WithdrawalRejected, WithdrawalCompleted},
	WithdrawalApproved: {WithdrawalCompleted},
}

// CanTransitionWithdrawal reports whether a withdrawal may move from one
// status to another. REJECTED and COMPLETED are terminal.
func CanTransitionWithdrawal(from, to string) bool {
	for _, t := range withdrawalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// subStatusOrder gives each active-campaign phase its rank so evaluation can
// only ever move forward.
var subStatusOrder = map[string]int{
	SubStatusRegistrationOpen:  0,
	SubStatusStudentSelection:  1,
	SubStatusContentSubmission: 2,
	SubStatusContentRevision:   3,
	SubStatusPosting:           4,
	SubStatusPayoutSuccess:     5,
}

// SubStatusRank returns the phase order of a sub-status (-1 if unknown).
func SubStatusRank(s string) int {
	if r, ok := subStatusOrder[s]; ok {
		return r
	}
	return -1
}

// LaterSubStatus returns the later of two phases, so repeated milestone
// evaluation never moves a campaign backwards.
func LaterSubStatus(current, candidate string) string {
	if SubStatusRank(candidate) > SubStatusRank(current) {
		return candidate
	}
	return current
}
