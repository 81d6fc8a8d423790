package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/myrelief/backend/services"
)

var (
	notifyHub *services.NotifyHub
	upgrader  = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow all origins for now
		},
	}
)

// SetNotifyHub sets the notification hub for the handlers
func SetNotifyHub(hub *services.NotifyHub) {
	notifyHub = hub
}

// HandleNotificationWebSocket handles WebSocket connections for live
// notification badges
// GET /ws/notifications
func HandleNotificationWebSocket(c *gin.Context) {
	if notifyHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notification hub not initialized"})
		return
	}

	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	client := services.NewNotifyClient(notifyHub, conn, user.ID, c.ClientIP())

	notifyHub.Register(client)

	// Start goroutines for reading and writing
	go client.WritePump()
	go client.ReadPump()
}

// GetNotifyHubStats returns notification hub statistics
// GET /api/admin/notifications/hub-stats
func GetNotifyHubStats(c *gin.Context) {
	if notifyHub == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	stats := notifyHub.Stats()
	c.JSON(http.StatusOK, gin.H{
		"enabled": true,
		"clients": stats.Clients,
	})
}
