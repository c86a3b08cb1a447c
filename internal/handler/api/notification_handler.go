package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// NotificationHandler handles broadcast endpoints
type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUC domain.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

// BroadcastRequest represents the admin broadcast payload
type BroadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type,omitempty"`
}

// Broadcast persists an admin notification
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	notification, err := h.notificationUC.Broadcast(req.Title, req.Message, req.Type)
	if err != nil {
		respondError(c, err, "notification")
		return
	}

	xresponse.Created(c, "Notification created", notification)
}

// ListNotifications returns the paginated notification feed
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifications, total, err := h.notificationUC.ListNotifications(page, limit)
	if err != nil {
		respondError(c, err, "notification")
		return
	}

	page, limit, _ = utils.NormalizePagination(page, limit)
	xresponse.Paginated(c, "Notifications retrieved", notifications, page, limit, total)
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationUC.MarkRead(c.Param("id")); err != nil {
		respondError(c, err, "notification")
		return
	}
	xresponse.Success(c, "Notification marked read", nil)
}
