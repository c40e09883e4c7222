package domain

// Reference kinds a ledger entry may point at.
const (
	RefParticipation = "PARTICIPATION"
	RefWithdrawal    = "WITHDRAWAL"
	RefCampaign      = "CAMPAIGN"
	RefManual        = "MANUAL"
)

// Reference links a ledger entry to the business object that caused it.
type Reference struct {
	Type string
	ID   uint
}

func ParticipationRef(id uint) Reference { return Reference{Type: RefParticipation, ID: id} }
func WithdrawalRef(id uint) Reference    { return Reference{Type: RefWithdrawal, ID: id} }
func CampaignRef(id uint) Reference      { return Reference{Type: RefCampaign, ID: id} }
func ManualRef() Reference               { return Reference{Type: RefManual} }

// referenceKinds maps each ledger category to the reference kinds it may carry.
var referenceKinds = map[string][]string{
	CategoryCampaignPayment: {RefParticipation},
	CategoryWithdrawal:      {RefWithdrawal},
	CategoryRefund:          {RefWithdrawal, RefCampaign},
	CategoryBonus:           {RefCampaign, RefManual},
	CategoryPenalty:         {RefCampaign, RefManual},
	CategoryAdjustment:      {RefManual},
}

// ValidReference reports whether a reference of the given kind may explain an
// entry of the given category.
func ValidReference(category string, ref Reference) bool {
	kinds, ok := referenceKinds[category]
	if !ok {
		return false
	}
	for _, k := range kinds {
		if ref.Type == k {
			return true
		}
	}
	return false
}
