package service

import (
	"encoding/json"
	"log"

	"brandloop/internal/models"
	"brandloop/internal/repository"
	"brandloop/internal/ws"

	"github.com/shopspring/decimal"
)

// NotificationService is the dispatcher the money-movement components call
// after a committed transition. Delivery is fire-and-forget: a failure here
// is logged and never propagated to the financial caller.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	hub      *ws.Hub
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, hub *ws.Hub) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, hub: hub}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		log.Printf("[Notify] save failed for user %d type %s: %v", userID, notifType, err)
	}
	if s.hub != nil {
		s.hub.SendToUser(userID, map[string]interface{}{
			"type":  notifType,
			"title": title,
			"body":  body,
			"data":  data,
		})
	}
}

// NotifyAdmins fans one event out to every operator account.
func (s *NotificationService) NotifyAdmins(notifType, title, body string, data map[string]interface{}) {
	admins, err := s.userRepo.ListAdmins()
	if err != nil {
		log.Printf("[Notify] list admins failed: %v", err)
		return
	}
	for _, a := range admins {
		s.Notify(a.ID, notifType, title, body, data)
	}
}

func (s *NotificationService) NotifyCampaignApproved(sponsorID, campaignID uint, dueMinutes int) {
	s.Notify(sponsorID, "CAMPAIGN_APPROVED", "Campaign approved",
		"Your campaign was approved. Complete the payment to activate it.",
		map[string]interface{}{"campaign_id": campaignID, "pay_within_minutes": dueMinutes})
}

func (s *NotificationService) NotifyCampaignRejected(sponsorID, campaignID uint, reason string) {
	s.Notify(sponsorID, "CAMPAIGN_REJECTED", "Campaign rejected", reason,
		map[string]interface{}{"campaign_id": campaignID})
}

func (s *NotificationService) NotifyCampaignCancelled(sponsorID, campaignID uint, reason string) {
	s.Notify(sponsorID, "CAMPAIGN_CANCELLED", "Campaign cancelled", reason,
		map[string]interface{}{"campaign_id": campaignID})
}

func (s *NotificationService) NotifyCampaignActive(sponsorID, campaignID uint) {
	s.Notify(sponsorID, "CAMPAIGN_ACTIVE", "Campaign active",
		"Payment received. Your campaign is now open for registration.",
		map[string]interface{}{"campaign_id": campaignID})
}

func (s *NotificationService) NotifyPayout(userID, campaignID uint, amount decimal.Decimal) {
	s.Notify(userID, "CAMPAIGN_PAYOUT", "Payment received",
		"You have been paid for your campaign post.",
		map[string]interface{}{"campaign_id": campaignID, "amount": amount.String()})
}

func (s *NotificationService) NotifyRefund(sponsorID, campaignID uint, amount decimal.Decimal) {
	s.Notify(sponsorID, "CAMPAIGN_REFUND", "Budget refund",
		"Unused campaign budget was returned to your balance.",
		map[string]interface{}{"campaign_id": campaignID, "amount": amount.String()})
}

func (s *NotificationService) NotifyWithdrawalRequested(userID, withdrawalID uint, amount decimal.Decimal) {
	s.Notify(userID, "WITHDRAWAL_REQUESTED", "Withdrawal requested",
		"Your withdrawal request was received and the funds were reserved.",
		map[string]interface{}{"withdrawal_id": withdrawalID, "amount": amount.String()})
	s.NotifyAdmins("WITHDRAWAL_PENDING", "New withdrawal request",
		"A withdrawal is waiting for review.",
		map[string]interface{}{"withdrawal_id": withdrawalID, "amount": amount.String()})
}

func (s *NotificationService) NotifyWithdrawalApproved(userID, withdrawalID uint) {
	s.Notify(userID, "WITHDRAWAL_APPROVED", "Withdrawal approved",
		"Your withdrawal was approved and will be transferred shortly.",
		map[string]interface{}{"withdrawal_id": withdrawalID})
}

func (s *NotificationService) NotifyWithdrawalRejected(userID, withdrawalID uint, reason string) {
	s.Notify(userID, "WITHDRAWAL_REJECTED", "Withdrawal rejected",
		"Your withdrawal was rejected and the amount was returned: "+reason,
		map[string]interface{}{"withdrawal_id": withdrawalID})
}

func (s *NotificationService) NotifyWithdrawalCompleted(userID, withdrawalID uint, proofURL string) {
	s.Notify(userID, "WITHDRAWAL_COMPLETED", "Withdrawal completed",
		"Your withdrawal was transferred.",
		map[string]interface{}{"withdrawal_id": withdrawalID, "transfer_proof": proofURL})
}
