package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/services"
)

// GetNotifications handles GET /api/notifications - Most recent first
func GetNotifications(c *gin.Context) {
	onlyUnread := c.Query("unread") == "true"

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	notifications, err := services.ListNotifications(database.DB, onlyUnread, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

// GetUnreadNotificationCount handles GET /api/notifications/unread-count -
// Badge counter
func GetUnreadNotificationCount(c *gin.Context) {
	count, err := services.UnreadCount(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	notificationID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if err := services.MarkNotificationRead(database.DB, notificationID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
