package handler

import (
	"errors"
	"net/http"
	"time"

	"services/notification-service/internal/model"
	"services/notification-service/internal/service"
	"services/notification-service/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listLimit caps the feed at the ten most recent notifications; the
// client polls rather than paginates.
const listLimit = 10

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
	defaultRedirect     string
	logger              *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService, defaultRedirect string, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		defaultRedirect:     defaultRedirect,
		logger:              logger,
	}
}

// List handles retrieving the caller's most recent notifications
// GET /notifications/list
func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := c.Get("userID")

	notifications, err := h.notificationService.ListRecent(c.Request.Context(), userID.(int), listLimit)
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	unread, err := h.notificationService.CountUnread(c.Request.Context(), userID.(int))
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notification count"})
		return
	}

	now := time.Now().UTC()
	items := make([]model.NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		link := n.Link
		if link == "" {
			link = "#"
		}
		items = append(items, model.NotificationItem{
			ID:           n.ID,
			Kind:         n.Kind,
			Title:        n.Title,
			Message:      n.Message,
			Link:         link,
			IsRead:       n.IsRead,
			CreatedAt:    utils.FormatDateTime(n.CreatedAt),
			RelativeTime: utils.RelativeTime(n.CreatedAt, now),
		})
	}

	c.JSON(http.StatusOK, model.NotificationListResponse{
		Notifications: items,
		TotalUnread:   unread,
	})
}

// Count handles retrieving the caller's unread notification count
// GET /notifications/count
func (h *NotificationHandler) Count(c *gin.Context) {
	userID, _ := c.Get("userID")

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID.(int))
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notification count"})
		return
	}

	c.JSON(http.StatusOK, model.NotificationCountResponse{TotalUnread: count})
}

// MarkRead handles marking a single notification as read
// POST /notifications/:id/mark-read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _ := c.Get("userID")
	id := c.Param("id")

	if _, err := h.notificationService.MarkRead(c.Request.Context(), id, userID.(int)); err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.Error("Failed to mark notification as read", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID.(int))
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notification count"})
		return
	}

	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, TotalUnread: count})
}

// MarkAllRead handles marking every notification of the caller as read
// POST /notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	if _, err := h.notificationService.MarkAllRead(c.Request.Context(), userID.(int)); err != nil {
		h.logger.Error("Failed to mark all notifications as read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, TotalUnread: 0})
}

// View handles opening a notification: marks it read, then redirects to
// its target, or to the default landing page when it has none
// GET /notifications/:id/view
func (h *NotificationHandler) View(c *gin.Context) {
	userID, _ := c.Get("userID")
	id := c.Param("id")

	notification, err := h.notificationService.MarkRead(c.Request.Context(), id, userID.(int))
	if err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.Error("Failed to view notification", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	link := notification.Link
	if link == "" {
		link = h.defaultRedirect
	}

	c.Redirect(http.StatusFound, link)
}

// Create handles notification creation for the platform's other services
// POST /service/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var create model.NotificationCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	notification, err := h.notificationService.Create(c.Request.Context(), &create)
	if err != nil {
		if errors.Is(err, model.ErrInvalidNotification) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}
