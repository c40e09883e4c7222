package domain

const (
	RoleSponsor    = "SPONSOR"
	RoleInfluencer = "INFLUENCER"
	RoleAdmin      = "ADMIN"
)

// Campaign statuses.
const (
	CampaignDraft          = "DRAFT"
	CampaignAdminReview    = "ADMIN_REVIEW"
	CampaignPendingPayment = "PENDING_PAYMENT"
	CampaignCancelled      = "CANCELLED"
	CampaignActive         = "ACTIVE"
	CampaignCompleted      = "COMPLETED"
	CampaignPaid           = "PAID"
)

// Sub-statuses of an ACTIVE campaign, in phase order.
const (
	SubStatusRegistrationOpen  = "REGISTRATION_OPEN"
	SubStatusStudentSelection  = "STUDENT_SELECTION"
	SubStatusContentSubmission = "CONTENT_SUBMISSION"
	SubStatusContentRevision   = "CONTENT_REVISION"
	SubStatusPosting           = "POSTING"
	SubStatusPayoutSuccess     = "PAYOUT_SUCCESS"
)

// Participation (campaign application) statuses.
const (
	ApplicationPending   = "PENDING"
	ApplicationAccepted  = "ACCEPTED"
	ApplicationRejected  = "REJECTED"
	ApplicationCompleted = "COMPLETED"
	ApplicationPaid      = "PAID"
)

// Withdrawal statuses.
const (
	WithdrawalPending   = "PENDING"
	WithdrawalApproved  = "APPROVED"
	WithdrawalRejected  = "REJECTED"
	WithdrawalCompleted = "COMPLETED"
)

// Payment (gateway) statuses.
const (
	PaymentPending   = "PENDING"
	PaymentSettled   = "SETTLED"
	PaymentExpired   = "EXPIRED"
	PaymentCancelled = "CANCELLED"
	PaymentFailed    = "FAILED"
)

// Ledger entry directions.
const (
	DirectionCredit = "CREDIT"
	DirectionDebit  = "DEBIT"
)

// Ledger entry categories.
const (
	CategoryCampaignPayment = "CAMPAIGN_PAYMENT"
	CategoryWithdrawal      = "WITHDRAWAL"
	CategoryRefund          = "REFUND"
	CategoryBonus           = "BONUS"
	CategoryPenalty         = "PENALTY"
	CategoryAdjustment      = "ADJUSTMENT"
)

const CancelReasonPaymentDeadline = "payment deadline exceeded"
