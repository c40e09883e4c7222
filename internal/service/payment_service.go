package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/models"
	"brandloop/internal/repository"
	"brandloop/pkg/gateway"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlatformFeeRate is added on top of the campaign budget when the sponsor
// funds it. Whatever part of the funded amount is not distributed to
// participants, fee included, comes back to the sponsor when the campaign
// settles.
var PlatformFeeRate = decimal.NewFromFloat(0.10)

// PaymentService handles sponsor funding: creating the hosted checkout and
// reconciling the Payment record from gateway callbacks and browser returns.
// It never moves ledger money itself; settlement only unlocks the campaign
// via the lifecycle service.
type PaymentService struct {
	paymentRepo  *repository.PaymentRepository
	campaignRepo *repository.CampaignRepository
	userRepo     *repository.UserRepository
	lifecycle    *LifecycleService
	gw           *gateway.Client
	frontendURL  string
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	campaignRepo *repository.CampaignRepository,
	userRepo *repository.UserRepository,
	lifecycle *LifecycleService,
	gw *gateway.Client,
	frontendURL string,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		lifecycle:    lifecycle,
		gw:           gw,
		frontendURL:  frontendURL,
	}
}

// FundingAmount is the campaign budget plus the platform fee.
func FundingAmount(pricePerPost decimal.Decimal, influencerCount int) decimal.Decimal {
	budget := pricePerPost.Mul(decimal.NewFromInt(int64(influencerCount)))
	return budget.Add(budget.Mul(PlatformFeeRate)).Round(2)
}

// InitiateFunding creates the PENDING Payment record and a hosted checkout
// session, returning the URL to redirect the sponsor to.
func (s *PaymentService) InitiateFunding(ctx context.Context, sponsorID, campaignID uint) (*models.Payment, error) {
	cam, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("campaign %d: %w", campaignID, domain.ErrNotFound)
		}
		return nil, err
	}
	if cam.SponsorID != sponsorID {
		return nil, domain.ErrForbidden
	}
	if cam.Status != domain.CampaignPendingPayment {
		return nil, fmt.Errorf("%w: campaign is %s, not awaiting payment", domain.ErrInvalidTransition, cam.Status)
	}
	if !cam.PricePerPost.IsPositive() || cam.InfluencerCount <= 0 {
		return nil, domain.ErrNoPriceConfigured
	}
	sponsor, err := s.userRepo.GetByID(sponsorID)
	if err != nil {
		return nil, err
	}

	amount := FundingAmount(cam.PricePerPost, cam.InfluencerCount)
	orderID := fmt.Sprintf("fund-%s", uuid.New().String())
	checkout, err := s.gw.CreateCheckout(ctx, gateway.CheckoutRequest{
		OrderID:       orderID,
		GrossAmount:   amount.StringFixed(2),
		CustomerName:  sponsor.FullName,
		CustomerEmail: sponsor.Email,
		FinishURL:     s.frontendURL + "/payments/finish",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout: %v", domain.ErrUpstreamGateway, err)
	}

	p := &models.Payment{
		OrderID:     orderID,
		CampaignID:  campaignID,
		SponsorID:   sponsorID,
		Amount:      amount,
		Status:      domain.PaymentPending,
		RedirectURL: checkout.RedirectURL,
	}
	if err := s.paymentRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyGatewayStatus reconciles one Payment against a gateway-reported
// transaction status. Safe to call from both the webhook and the browser
// return: a payment already in a terminal state is left untouched.
func (s *PaymentService) ApplyGatewayStatus(orderID, gatewayStatus, rawPayload string) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %s: %w", orderID, domain.ErrNotFound)
		}
		return nil, err
	}
	if p.Status != domain.PaymentPending {
		return p, nil
	}

	newStatus := mapGatewayStatus(gatewayStatus)
	if newStatus == domain.PaymentPending {
		return p, nil
	}
	if rawPayload != "" {
		p.RawPayload = rawPayload
	}
	p.Status = newStatus
	if newStatus == domain.PaymentSettled {
		now := time.Now().UTC()
		p.SettledAt = &now
	}
	if err := s.paymentRepo.Update(p); err != nil {
		return nil, err
	}

	if newStatus == domain.PaymentSettled {
		if _, err := s.lifecycle.MarkPaid(p.CampaignID); err != nil {
			// The campaign may already be cancelled (deadline fired first)
			// or already active (duplicate callback). The payment itself
			// stays settled either way.
			log.Printf("[Payment] settled order %s but campaign %d transition failed: %v", orderID, p.CampaignID, err)
		}
	}
	return p, nil
}

// Reconcile re-queries the gateway for the order's live status and applies
// it, for the browser-return flow.
func (s *PaymentService) Reconcile(ctx context.Context, orderID string) (*models.Payment, error) {
	st, err := s.gw.GetStatus(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction status: %v", domain.ErrUpstreamGateway, err)
	}
	return s.ApplyGatewayStatus(orderID, st.TransactionStatus, st.RawBody)
}

// FinishRedirectURL builds the frontend URL the browser-return endpoint
// redirects to, carrying the order id and a coarse outcome.
func (s *PaymentService) FinishRedirectURL(p *models.Payment) string {
	outcome := "pending"
	switch p.Status {
	case domain.PaymentSettled:
		outcome = "success"
	case domain.PaymentExpired, domain.PaymentCancelled, domain.PaymentFailed:
		outcome = "failure"
	}
	return fmt.Sprintf("%s/payments/finish?order_id=%s&status=%s", s.frontendURL, p.OrderID, outcome)
}

func mapGatewayStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case gateway.StatusSettlement, gateway.StatusCapture:
		return domain.PaymentSettled
	case gateway.StatusExpire:
		return domain.PaymentExpired
	case gateway.StatusCancel:
		return domain.PaymentCancelled
	case gateway.StatusDeny:
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}
