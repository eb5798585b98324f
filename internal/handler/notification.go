package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechat/internal/repository"
)

type NotificationHandler interface {
	List(c *gin.Context)
	MarkRead(c *gin.Context)
	UnreadCount(c *gin.Context)
}

type notificationHandler struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func NewNotificationHandler(notifications repository.NotificationRepository, logger *zap.Logger) NotificationHandler {
	return &notificationHandler{notifications: notifications, logger: logger}
}

// parentUsername extracts the authenticated parent from the request context,
// or writes the error response and returns "" when the caller is not a parent.
func (h *notificationHandler) parentUsername(c *gin.Context) string {
	role := c.GetString("role")
	if role != "parent" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Parent account required"})
		return ""
	}
	return c.GetString("username")
}

// List handles GET /api/parent/notifications.
func (h *notificationHandler) List(c *gin.Context) {
	parent := h.parentUsername(c)
	if parent == "" {
		return
	}

	notifications, err := h.notifications.GetForParent(c.Request.Context(), parent)
	if err != nil {
		h.logger.Error("Failed to get notifications", zap.String("parent", parent), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead handles PUT /api/parent/notifications/:id/read.
func (h *notificationHandler) MarkRead(c *gin.Context) {
	parent := h.parentUsername(c)
	if parent == "" {
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid notification ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	err = h.notifications.MarkRead(c.Request.Context(), parent, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.Error("Failed to mark notification read", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// UnreadCount handles GET /api/parent/notifications/unread_count.
func (h *notificationHandler) UnreadCount(c *gin.Context) {
	parent := h.parentUsername(c)
	if parent == "" {
		return
	}

	count, err := h.notifications.CountUnread(c.Request.Context(), parent)
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.String("parent", parent), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
