package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/ledger"
	"brandloop/internal/models"
	"brandloop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DistributionService pays influencers from a campaign's funded budget.
// Every entry point funnels into payParticipant; after each successful
// payout the campaign is re-checked for settlement and the leftover budget
// refunded to the sponsor.
type DistributionService struct {
	db           *gorm.DB
	ledger       *ledger.Ledger
	campaignRepo *repository.CampaignRepository
	cuRepo       *repository.CampaignUserRepository
	txRepo       *repository.TransactionRepository
	paymentRepo  *repository.PaymentRepository
	notifSvc     *NotificationService

	// pay and find default to payParticipant and the repository lookup;
	// tests substitute them to exercise batch semantics without a database.
	pay  func(cu *models.CampaignUser, amount decimal.Decimal, description string) (*refundOutcome, error)
	find func(participationID uint) (*models.CampaignUser, error)
}

func NewDistributionService(
	db *gorm.DB,
	lg *ledger.Ledger,
	campaignRepo *repository.CampaignRepository,
	cuRepo *repository.CampaignUserRepository,
	txRepo *repository.TransactionRepository,
	paymentRepo *repository.PaymentRepository,
	notifSvc *NotificationService,
) *DistributionService {
	s := &DistributionService{
		db:           db,
		ledger:       lg,
		campaignRepo: campaignRepo,
		cuRepo:       cuRepo,
		txRepo:       txRepo,
		paymentRepo:  paymentRepo,
		notifSvc:     notifSvc,
	}
	s.pay = s.payParticipant
	s.find = cuRepo.GetByID
	return s
}

// PayoutItem is a single row in a custom payout request.
type PayoutItem struct {
	ParticipationID uint            `json:"participation_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
}

// PayoutResult reports one participant's outcome in a batch.
type PayoutResult struct {
	ParticipationID uint            `json:"participation_id"`
	UserID          uint            `json:"user_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Paid            bool            `json:"paid"`
	Error           string          `json:"error,omitempty"`
}

// BatchResult summarizes a pay-all or pay-custom run.
type BatchResult struct {
	PaidCount   int             `json:"paid_count"`
	FailedCount int             `json:"failed_count"`
	Items       []PayoutResult  `json:"items"`
	Refund      decimal.Decimal `json:"refund"`
}

// refundOutcome carries post-commit notification data out of a payout tx.
type refundOutcome struct {
	sponsorID  uint
	campaignID uint
	amount     decimal.Decimal
}

// PayOne pays a single participation the given amount. A participation that
// is already paid is rejected, so a retried request cannot credit twice.
func (s *DistributionService) PayOne(participationID uint, amount decimal.Decimal, description string) (*PayoutResult, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	cu, err := s.find(participationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("participation %d: %w", participationID, domain.ErrNotFound)
		}
		return nil, err
	}
	if cu.ApplicationStatus == domain.ApplicationPaid {
		return nil, fmt.Errorf("%w: participation %d already paid", domain.ErrInvalidTransition, cu.ID)
	}
	if _, err := s.pay(cu, amount, description); err != nil {
		return nil, err
	}
	return &PayoutResult{ParticipationID: cu.ID, UserID: cu.UserID, Amount: amount, Paid: true}, nil
}

// PayAllAccepted pays every accepted participation with an approved
// deliverable the campaign's price per post. One participant's failure is
// reported in its result row and does not abort the batch.
func (s *DistributionService) PayAllAccepted(campaignID uint) (*BatchResult, error) {
	cam, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("campaign %d: %w", campaignID, domain.ErrNotFound)
		}
		return nil, err
	}
	if !cam.PricePerPost.IsPositive() {
		return nil, domain.ErrNoPriceConfigured
	}
	payable, err := s.cuRepo.ListPayable(campaignID)
	if err != nil {
		return nil, err
	}
	res := &BatchResult{Refund: decimal.Zero}
	for i := range payable {
		cu := payable[i]
		item := PayoutResult{ParticipationID: cu.ID, UserID: cu.UserID, Amount: cam.PricePerPost}
		refund, err := s.pay(&cu, cam.PricePerPost, fmt.Sprintf("Payout for campaign %q", cam.Title))
		if err != nil {
			item.Error = err.Error()
			res.FailedCount++
			log.Printf("[Distribution] pay-all item failed: campaign %d participation %d: %v", campaignID, cu.ID, err)
		} else {
			item.Paid = true
			res.PaidCount++
		}
		if refund != nil {
			res.Refund = res.Refund.Add(refund.amount)
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

// PayCustom pays an explicit list of participations. Every amount is
// validated before any item is processed; item failures are then isolated
// like in PayAllAccepted.
func (s *DistributionService) PayCustom(items []PayoutItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty payout list", domain.ErrInvalidAmount)
	}
	for _, it := range items {
		if !it.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: participation %d", domain.ErrInvalidAmount, it.ParticipationID)
		}
	}
	res := &BatchResult{Refund: decimal.Zero}
	for _, it := range items {
		item := PayoutResult{ParticipationID: it.ParticipationID, Amount: it.Amount}
		cu, err := s.find(it.ParticipationID)
		if err != nil {
			item.Error = "participation not found"
			res.FailedCount++
			res.Items = append(res.Items, item)
			continue
		}
		item.UserID = cu.UserID
		refund, err := s.pay(cu, it.Amount, it.Description)
		if err != nil {
			item.Error = err.Error()
			res.FailedCount++
			log.Printf("[Distribution] pay-custom item failed: participation %d: %v", cu.ID, err)
		} else {
			item.Paid = true
			res.PaidCount++
		}
		if refund != nil {
			res.Refund = res.Refund.Add(refund.amount)
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

// payParticipant is the single-participant primitive: one transaction
// credits the influencer, marks the participation paid, and re-checks the
// campaign for settlement. Notifications go out only after commit. The
// returned refund is non-nil when this payout settled the campaign.
func (s *DistributionService) payParticipant(cu *models.CampaignUser, amount decimal.Decimal, description string) (*refundOutcome, error) {
	var refund *refundOutcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ledger.Credit(tx, cu.UserID, amount, domain.CategoryCampaignPayment, domain.ParticipationRef(cu.ID), description); err != nil {
			return err
		}
		if err := s.cuRepo.MarkPaid(tx, cu.ID, time.Now().UTC()); err != nil {
			return err
		}
		var err error
		refund, err = s.settle(tx, cu.CampaignID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifSvc.NotifyPayout(cu.UserID, cu.CampaignID, amount)
	if refund != nil {
		s.notifSvc.NotifyRefund(refund.sponsorID, refund.campaignID, refund.amount)
	}
	return refund, nil
}

// settle checks whether every payable participation is now paid and, if so,
// marks the campaign PAID and refunds the leftover budget to the sponsor.
// The refund is derived as funded − distributed − already refunded, so
// running settle again with nothing changed refunds nothing.
func (s *DistributionService) settle(tx *gorm.DB, campaignID uint) (*refundOutcome, error) {
	accepted, err := s.cuRepo.CountAcceptedApproved(tx, campaignID)
	if err != nil {
		return nil, err
	}
	if accepted == 0 {
		return nil, nil
	}
	paid, err := s.cuRepo.CountPaid(tx, campaignID)
	if err != nil {
		return nil, err
	}
	if paid < accepted {
		return nil, nil
	}

	cam, err := s.campaignRepo.GetByIDForUpdate(tx, campaignID)
	if err != nil {
		return nil, err
	}
	if cam.Status != domain.CampaignPaid {
		cam.Status = domain.CampaignPaid
		cam.SubStatus = domain.SubStatusPayoutSuccess
		if err := tx.Save(cam).Error; err != nil {
			return nil, err
		}
	}

	funded, err := s.paymentRepo.SumSettledByCampaign(tx, campaignID)
	if err != nil {
		return nil, err
	}
	distributed, err := s.txRepo.SumDistributed(tx, campaignID)
	if err != nil {
		return nil, err
	}
	refunded, err := s.txRepo.SumRefunded(tx, campaignID)
	if err != nil {
		return nil, err
	}
	remaining := RemainingBudget(funded, distributed, refunded)
	if !remaining.IsPositive() {
		return nil, nil
	}
	if _, err := s.ledger.Credit(tx, cam.SponsorID, remaining, domain.CategoryRefund, domain.CampaignRef(campaignID),
		fmt.Sprintf("Leftover budget for campaign %q", cam.Title)); err != nil {
		return nil, err
	}
	log.Printf("[Distribution] campaign %d settled, refunded %s to sponsor %d", campaignID, remaining.String(), cam.SponsorID)
	return &refundOutcome{sponsorID: cam.SponsorID, campaignID: campaignID, amount: remaining}, nil
}

// RemainingBudget derives the refundable leftover from ledger aggregates.
func RemainingBudget(funded, distributed, refunded decimal.Decimal) decimal.Decimal {
	return funded.Sub(distributed).Sub(refunded)
}
