package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/middleware"
	"brandloop/internal/models"
	"brandloop/internal/repository"
	"brandloop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaignRepo *repository.CampaignRepository
	cuRepo       *repository.CampaignUserRepository
	lifecycle    *service.LifecycleService
}

func NewCampaignHandler(campaignRepo *repository.CampaignRepository, cuRepo *repository.CampaignUserRepository, lifecycle *service.LifecycleService) *CampaignHandler {
	return &CampaignHandler{campaignRepo: campaignRepo, cuRepo: cuRepo, lifecycle: lifecycle}
}

// Create makes a DRAFT campaign for the sponsor.
func (h *CampaignHandler) Create(c *gin.Context) {
	sponsorID := middleware.GetUserID(c)
	var req struct {
		Title                string          `json:"title" binding:"required"`
		Description          string          `json:"description"`
		PricePerPost         decimal.Decimal `json:"price_per_post" binding:"required"`
		InfluencerCount      int             `json:"influencer_count" binding:"required,min=1"`
		RegistrationDeadline *time.Time      `json:"registration_deadline"`
		SubmissionDeadline   *time.Time      `json:"submission_deadline"`
		StartDate            *time.Time      `json:"start_date"`
		EndDate              *time.Time      `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.PricePerPost.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_post must be greater than zero"})
		return
	}
	cam := &models.Campaign{
		SponsorID:            sponsorID,
		Title:                req.Title,
		Description:          req.Description,
		PricePerPost:         req.PricePerPost,
		InfluencerCount:      req.InfluencerCount,
		Status:               domain.CampaignDraft,
		RegistrationDeadline: req.RegistrationDeadline,
		SubmissionDeadline:   req.SubmissionDeadline,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
	}
	if err := h.campaignRepo.Create(cam); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campaign": cam})
}

func (h *CampaignHandler) Get(c *gin.Context) {
	id := paramID(c, "id")
	cam, err := h.campaignRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, domain.ErrNotFound)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": cam})
}

// List returns campaigns in a given status, for the operator review queue.
func (h *CampaignHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", domain.CampaignAdminReview)
	limit, offset := pagination(c)
	list, err := h.campaignRepo.ListByStatus(status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": list})
}

// ListMine returns the sponsor's own campaigns.
func (h *CampaignHandler) ListMine(c *gin.Context) {
	sponsorID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.campaignRepo.ListBySponsorID(sponsorID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": list})
}

// Submit moves the sponsor's draft to admin review.
func (h *CampaignHandler) Submit(c *gin.Context) {
	cam, err := h.lifecycle.Submit(middleware.GetUserID(c), paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": cam})
}

// Approve is the operator sign-off; the sponsor then has until the payment
// deadline to fund it.
func (h *CampaignHandler) Approve(c *gin.Context) {
	cam, err := h.lifecycle.Approve(paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": cam})
}

func (h *CampaignHandler) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cam, err := h.lifecycle.Reject(paramID(c, "id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": cam})
}

func (h *CampaignHandler) Cancel(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cam, err := h.lifecycle.Cancel(paramID(c, "id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": cam})
}

func (h *CampaignHandler) Complete(c *gin.Context) {
	cam, err := h.lifecycle.Complete(paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": cam})
}

// Apply registers the influencer for an open campaign.
func (h *CampaignHandler) Apply(c *gin.Context) {
	userID := middleware.GetUserID(c)
	campaignID := paramID(c, "id")
	cam, err := h.campaignRepo.GetByID(campaignID)
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if cam.Status != domain.CampaignActive || cam.SubStatus != domain.SubStatusRegistrationOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "campaign is not open for registration"})
		return
	}
	cu := &models.CampaignUser{
		CampaignID:        campaignID,
		UserID:            userID,
		ApplicationStatus: domain.ApplicationPending,
	}
	if err := h.cuRepo.Create(cu); err != nil {
		// the unique (campaign, user) index rejects double applications
		c.JSON(http.StatusConflict, gin.H{"error": "already applied to this campaign"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participation": cu})
}

// ListParticipants returns all participations for a campaign.
func (h *CampaignHandler) ListParticipants(c *gin.Context) {
	list, err := h.cuRepo.ListByCampaignID(paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": list})
}

// ReviewParticipant accepts or rejects an application (sponsor of the
// campaign or operator).
func (h *CampaignHandler) ReviewParticipant(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cu, err := h.cuRepo.GetByID(paramID(c, "participation_id"))
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if role := middleware.GetRole(c); role != domain.RoleAdmin && cu.Campaign.SponsorID != middleware.GetUserID(c) {
		respondError(c, domain.ErrForbidden)
		return
	}
	if cu.ApplicationStatus != domain.ApplicationPending {
		c.JSON(http.StatusConflict, gin.H{"error": "only pending applications can be reviewed"})
		return
	}
	cu.ApplicationStatus = req.Status
	if err := h.cuRepo.Update(cu); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participation": cu})
}

// SubmitContent records the participant's deliverable URL. Re-submitting
// replaces the URL and clears any earlier approval.
func (h *CampaignHandler) SubmitContent(c *gin.Context) {
	var req struct {
		ContentURL string `json:"content_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cu, err := h.cuRepo.GetByID(paramID(c, "participation_id"))
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if cu.UserID != middleware.GetUserID(c) {
		respondError(c, domain.ErrForbidden)
		return
	}
	if cu.ApplicationStatus != domain.ApplicationAccepted {
		c.JSON(http.StatusConflict, gin.H{"error": "only accepted participants can submit content"})
		return
	}
	cu.ContentURL = req.ContentURL
	cu.ContentApproved = false
	if err := h.cuRepo.Update(cu); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participation": cu})
}

// ApproveContent marks the participant's deliverable approved, making the
// participation payable.
func (h *CampaignHandler) ApproveContent(c *gin.Context) {
	cu, err := h.cuRepo.GetByID(paramID(c, "participation_id"))
	if err != nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if cu.ApplicationStatus != domain.ApplicationAccepted {
		c.JSON(http.StatusConflict, gin.H{"error": "only accepted participants can have content approved"})
		return
	}
	cu.ContentApproved = true
	if err := h.cuRepo.Update(cu); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participation": cu})
}

func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id)
}
