package service

import (
	"errors"
	"fmt"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/ledger"
	"brandloop/internal/models"
	"brandloop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithdrawalService reserves funds at request time: the debit happens when
// the request is created, not when it completes, so a pending withdrawal can
// never be double-spent. Rejection and owner cancellation credit the exact
// amount back.
type WithdrawalService struct {
	db       *gorm.DB
	ledger   *ledger.Ledger
	repo     *repository.WithdrawalRepository
	notifSvc *NotificationService
}

func NewWithdrawalService(db *gorm.DB, lg *ledger.Ledger, repo *repository.WithdrawalRepository, notifSvc *NotificationService) *WithdrawalService {
	return &WithdrawalService{db: db, ledger: lg, repo: repo, notifSvc: notifSvc}
}

// Request debits the owner's balance and creates the PENDING withdrawal in
// one transaction. Returns the withdrawal and the balance after the debit.
func (s *WithdrawalService) Request(userID uint, amount decimal.Decimal, bankName, accountNumber, holderName string) (*models.Withdrawal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return nil, decimal.Zero, domain.ErrInvalidAmount
	}
	w := &models.Withdrawal{
		UserID:            userID,
		Amount:            amount,
		BankName:          bankName,
		AccountNumber:     accountNumber,
		AccountHolderName: holderName,
		Status:            domain.WithdrawalPending,
	}
	var newBalance decimal.Decimal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, w); err != nil {
			return err
		}
		entry, err := s.ledger.Debit(tx, userID, amount, domain.CategoryWithdrawal, domain.WithdrawalRef(w.ID),
			fmt.Sprintf("Withdrawal to %s %s", bankName, accountNumber))
		if err != nil {
			return err
		}
		newBalance = entry.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	s.notifSvc.NotifyWithdrawalRequested(userID, w.ID, amount)
	return w, newBalance, nil
}

// Approve is a pure status transition with no balance effect.
func (s *WithdrawalService) Approve(reviewerID, withdrawalID uint) (*models.Withdrawal, error) {
	var w *models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		w, err = s.getForUpdate(tx, withdrawalID)
		if err != nil {
			return err
		}
		if !domain.CanTransitionWithdrawal(w.Status, domain.WithdrawalApproved) {
			return fmt.Errorf("%w: only pending withdrawals can be approved", domain.ErrInvalidTransition)
		}
		w.Status = domain.WithdrawalApproved
		w.ReviewedBy = &reviewerID
		return s.repo.Update(tx, w)
	})
	if err != nil {
		return nil, err
	}
	s.notifSvc.NotifyWithdrawalApproved(w.UserID, w.ID)
	return w, nil
}

// compensation is the ledger credit that undoes a withdrawal's reservation:
// the exact requested amount, as a refund against the same withdrawal.
func compensation(w *models.Withdrawal) (decimal.Decimal, string, domain.Reference) {
	return w.Amount, domain.CategoryRefund, domain.WithdrawalRef(w.ID)
}

// Reject credits the reserved amount back and marks the row REJECTED, in one
// transaction. Only legal from PENDING.
func (s *WithdrawalService) Reject(reviewerID, withdrawalID uint, reason string) (*models.Withdrawal, error) {
	var w *models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		w, err = s.getForUpdate(tx, withdrawalID)
		if err != nil {
			return err
		}
		if w.Status != domain.WithdrawalPending {
			return fmt.Errorf("%w: only pending withdrawals can be rejected", domain.ErrInvalidTransition)
		}
		amount, category, ref := compensation(w)
		if _, err := s.ledger.Credit(tx, w.UserID, amount, category, ref,
			"Withdrawal rejected: "+reason); err != nil {
			return err
		}
		w.Status = domain.WithdrawalRejected
		w.ReviewedBy = &reviewerID
		w.RejectionReason = reason
		return s.repo.Update(tx, w)
	})
	if err != nil {
		return nil, err
	}
	s.notifSvc.NotifyWithdrawalRejected(w.UserID, w.ID, reason)
	return w, nil
}

// Complete marks the withdrawal transferred. Requires proof of transfer and
// is legal from PENDING or APPROVED; the money already left the ledger at
// request time, so there is no balance effect.
func (s *WithdrawalService) Complete(reviewerID, withdrawalID uint, proofURL string) (*models.Withdrawal, error) {
	if proofURL == "" {
		return nil, domain.ErrMissingProof
	}
	var w *models.Withdrawal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		w, err = s.getForUpdate(tx, withdrawalID)
		if err != nil {
			return err
		}
		if !domain.CanTransitionWithdrawal(w.Status, domain.WithdrawalCompleted) {
			return fmt.Errorf("%w: only pending or approved withdrawals can be completed", domain.ErrInvalidTransition)
		}
		now := time.Now().UTC()
		w.Status = domain.WithdrawalCompleted
		w.ReviewedBy = &reviewerID
		w.TransferProof = proofURL
		w.CompletedAt = &now
		return s.repo.Update(tx, w)
	})
	if err != nil {
		return nil, err
	}
	s.notifSvc.NotifyWithdrawalCompleted(w.UserID, w.ID, proofURL)
	return w, nil
}

// Cancel lets the owner withdraw a PENDING request. The reserved amount is
// credited back exactly like a rejection before the row is deleted.
func (s *WithdrawalService) Cancel(ownerID, withdrawalID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		w, err := s.getForUpdate(tx, withdrawalID)
		if err != nil {
			return err
		}
		if w.UserID != ownerID {
			return domain.ErrForbidden
		}
		if w.Status != domain.WithdrawalPending {
			return fmt.Errorf("%w: only pending withdrawals can be cancelled", domain.ErrInvalidTransition)
		}
		amount, category, ref := compensation(w)
		if _, err := s.ledger.Credit(tx, w.UserID, amount, category, ref,
			"Withdrawal cancelled by owner"); err != nil {
			return err
		}
		return s.repo.Delete(tx, w)
	})
}

func (s *WithdrawalService) getForUpdate(tx *gorm.DB, id uint) (*models.Withdrawal, error) {
	w, err := s.repo.GetByIDForUpdate(tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("withdrawal %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return w, nil
}
