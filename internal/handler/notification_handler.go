package handler

import (
	"net/http"

	"brandloop/internal/middleware"
	"brandloop/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo *repository.NotificationRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.repo.ListByUserID(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := h.repo.CountUnread(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.repo.MarkRead(paramID(c, "id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.repo.MarkAllRead(middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
