package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/models"
	"brandloop/internal/repository"

	"gorm.io/gorm"
)

// LifecycleService owns campaign status. Nothing else writes it, except the
// distribution engine writing the terminal PAID status when a campaign
// settles.
type LifecycleService struct {
	db           *gorm.DB
	campaignRepo *repository.CampaignRepository
	timers       *DeadlineTimers
	notifSvc     *NotificationService
	deadline     time.Duration
}

func NewLifecycleService(db *gorm.DB, campaignRepo *repository.CampaignRepository, timers *DeadlineTimers, notifSvc *NotificationService, deadline time.Duration) *LifecycleService {
	return &LifecycleService{
		db:           db,
		campaignRepo: campaignRepo,
		timers:       timers,
		notifSvc:     notifSvc,
		deadline:     deadline,
	}
}

// transition moves the campaign to a new status inside one transaction, with
// the row locked so the deadline timer, the payment webhook, and manual
// cancellation serialize on the same row. mutate runs after the guard and may
// adjust additional fields.
func (s *LifecycleService) transition(campaignID uint, to string, mutate func(*models.Campaign)) (*models.Campaign, error) {
	var cam *models.Campaign
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cam, err = s.campaignRepo.GetByIDForUpdate(tx, campaignID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if !domain.CanTransitionCampaign(cam.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, cam.Status, to)
		}
		cam.Status = to
		if mutate != nil {
			mutate(cam)
		}
		return tx.Save(cam).Error
	})
	if err != nil {
		return nil, err
	}
	return cam, nil
}

// Submit moves a sponsor's draft into admin review.
func (s *LifecycleService) Submit(sponsorID, campaignID uint) (*models.Campaign, error) {
	cam, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if cam.SponsorID != sponsorID {
		return nil, domain.ErrForbidden
	}
	return s.transition(campaignID, domain.CampaignAdminReview, nil)
}

// Approve moves ADMIN_REVIEW -> PENDING_PAYMENT, persists the payment
// deadline on the row, and arms the auto-cancel timer.
func (s *LifecycleService) Approve(campaignID uint) (*models.Campaign, error) {
	dueAt := time.Now().UTC().Add(s.deadline)
	cam, err := s.transition(campaignID, domain.CampaignPendingPayment, func(c *models.Campaign) {
		c.PaymentDueAt = &dueAt
	})
	if err != nil {
		return nil, err
	}
	s.scheduleCancel(cam.ID, s.deadline)
	s.notifSvc.NotifyCampaignApproved(cam.SponsorID, cam.ID, int(s.deadline.Minutes()))
	return cam, nil
}

// Reject moves ADMIN_REVIEW -> CANCELLED with the operator's reason.
func (s *LifecycleService) Reject(campaignID uint, reason string) (*models.Campaign, error) {
	cam, err := s.transition(campaignID, domain.CampaignCancelled, func(c *models.Campaign) {
		c.CancellationReason = reason
	})
	if err != nil {
		return nil, err
	}
	s.notifSvc.NotifyCampaignRejected(cam.SponsorID, cam.ID, reason)
	return cam, nil
}

// Cancel is the manual PENDING_PAYMENT -> CANCELLED path. Disarms the timer.
func (s *LifecycleService) Cancel(campaignID uint, reason string) (*models.Campaign, error) {
	cam, err := s.transition(campaignID, domain.CampaignCancelled, func(c *models.Campaign) {
		c.CancellationReason = reason
		c.PaymentDueAt = nil
	})
	if err != nil {
		return nil, err
	}
	s.timers.Cancel(campaignID)
	s.notifSvc.NotifyCampaignCancelled(cam.SponsorID, cam.ID, reason)
	return cam, nil
}

// MarkPaid is called by the payment service once the gateway confirms
// settlement. PENDING_PAYMENT -> ACTIVE, registration opens, timer disarmed.
// The transition guard makes a late webhook against a cancelled campaign a
// no-op error instead of a resurrection.
func (s *LifecycleService) MarkPaid(campaignID uint) (*models.Campaign, error) {
	cam, err := s.transition(campaignID, domain.CampaignActive, func(c *models.Campaign) {
		c.SubStatus = domain.SubStatusRegistrationOpen
		c.PaymentDueAt = nil
	})
	if err != nil {
		return nil, err
	}
	s.timers.Cancel(campaignID)
	s.notifSvc.NotifyCampaignActive(cam.SponsorID, cam.ID)
	return cam, nil
}

// Complete moves ACTIVE -> COMPLETED (campaign period over, payouts pending).
func (s *LifecycleService) Complete(campaignID uint) (*models.Campaign, error) {
	return s.transition(campaignID, domain.CampaignCompleted, nil)
}

func (s *LifecycleService) scheduleCancel(campaignID uint, in time.Duration) {
	s.timers.Schedule(campaignID, in, func() {
		s.fireDeadline(campaignID)
	})
}

// fireDeadline runs when the payment deadline elapses. It re-reads the
// campaign under lock and cancels only if the status is still exactly
// PENDING_PAYMENT, so a payment confirmed a moment earlier wins the race.
func (s *LifecycleService) fireDeadline(campaignID uint) {
	var cam *models.Campaign
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cam, err = s.campaignRepo.GetByIDForUpdate(tx, campaignID)
		if err != nil {
			return err
		}
		if cam.Status != domain.CampaignPendingPayment {
			cam = nil
			return nil
		}
		cam.Status = domain.CampaignCancelled
		cam.CancellationReason = domain.CancelReasonPaymentDeadline
		cam.PaymentDueAt = nil
		return tx.Save(cam).Error
	})
	if err != nil {
		log.Printf("[Lifecycle] deadline fire failed for campaign %d: %v", campaignID, err)
		return
	}
	if cam == nil {
		return // paid or cancelled before the timer fired
	}
	log.Printf("[Lifecycle] campaign %d auto-cancelled: %s", campaignID, domain.CancelReasonPaymentDeadline)
	s.notifSvc.NotifyCampaignCancelled(cam.SponsorID, cam.ID, domain.CancelReasonPaymentDeadline)
}

// RecoverDeadlines re-arms timers for campaigns still waiting for payment.
// Called once on startup; overdue campaigns are cancelled immediately.
func (s *LifecycleService) RecoverDeadlines() {
	list, err := s.campaignRepo.ListPendingPayment()
	if err != nil {
		log.Printf("[Lifecycle] deadline recovery scan failed: %v", err)
		return
	}
	now := time.Now().UTC()
	for _, cam := range list {
		if cam.PaymentDueAt == nil {
			continue
		}
		if remaining := cam.PaymentDueAt.Sub(now); remaining > 0 {
			s.scheduleCancel(cam.ID, remaining)
		} else {
			s.fireDeadline(cam.ID)
		}
	}
	if len(list) > 0 {
		log.Printf("[Lifecycle] recovered %d pending payment deadline(s)", len(list))
	}
}

// SubStatusForSchedule derives the phase an active campaign should be in
// from its calendar milestones. Nil milestones stop the progression at the
// preceding phase; CONTENT_REVISION and PAYOUT_SUCCESS are never
// calendar-driven (revision is an operator call, payout success comes from
// the distribution engine).
func SubStatusForSchedule(cam *models.Campaign, now time.Time) string {
	phase := domain.SubStatusRegistrationOpen
	if cam.RegistrationDeadline == nil || now.Before(*cam.RegistrationDeadline) {
		return phase
	}
	phase = domain.SubStatusStudentSelection
	if cam.StartDate == nil || now.Before(*cam.StartDate) {
		return phase
	}
	phase = domain.SubStatusContentSubmission
	if cam.SubmissionDeadline == nil || now.Before(*cam.SubmissionDeadline) {
		return phase
	}
	return domain.SubStatusPosting
}

// EvaluateSchedule advances the campaign's sub-status to match the calendar.
// Applying it twice at the same instant is a no-op: the phase only ever
// moves forward and an equal phase is not rewritten.
func (s *LifecycleService) EvaluateSchedule(cam *models.Campaign, now time.Time) error {
	if cam.Status != domain.CampaignActive {
		return nil
	}
	next := domain.LaterSubStatus(cam.SubStatus, SubStatusForSchedule(cam, now))
	if next == cam.SubStatus {
		return nil
	}
	if err := s.campaignRepo.UpdateSubStatus(cam.ID, next, now); err != nil {
		return err
	}
	log.Printf("[Lifecycle] campaign %d sub-status %s -> %s", cam.ID, cam.SubStatus, next)
	cam.SubStatus = next
	return nil
}

// EvaluateAll sweeps every active campaign's milestones once.
func (s *LifecycleService) EvaluateAll() {
	list, err := s.campaignRepo.ListActive()
	if err != nil {
		log.Printf("[Lifecycle] schedule sweep failed: %v", err)
		return
	}
	now := time.Now().UTC()
	for i := range list {
		if err := s.EvaluateSchedule(&list[i], now); err != nil {
			log.Printf("[Lifecycle] schedule evaluation failed for campaign %d: %v", list[i].ID, err)
		}
	}
}

// StartScheduleSweeper runs EvaluateAll on an interval until stop is closed.
func (s *LifecycleService) StartScheduleSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.EvaluateAll()
			case <-stop:
				return
			}
		}
	}()
}
