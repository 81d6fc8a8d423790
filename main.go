package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/handlers"
	"github.com/myrelief/backend/natsserver"
	"github.com/myrelief/backend/services"
	"github.com/myrelief/backend/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	defer database.Close()

	// Make sure the default admin exists
	handlers.SeedAdminUser()

	// Start embedded NATS server backing the notification hub
	natsServer, err := natsserver.New(natsserver.Config{
		Port:       4233,
		MaxPayload: 1024 * 1024,
	})
	if err != nil {
		log.Fatalf("❌ Failed to start NATS server: %v", err)
	}
	defer natsServer.Shutdown()

	// Initialize notification hub for WebSocket badge updates
	hub, err := services.NewNotifyHub(natsServer.Conn())
	if err != nil {
		log.Fatalf("❌ Failed to start notification hub: %v", err)
	}
	go hub.Run()
	services.SetPublisher(hub)
	handlers.SetNotifyHub(hub)
	log.Println("🔔 Notification hub initialized")

	// Identity-proof storage (optional; disabled without SUPABASE_URL)
	if client := storage.NewFromEnv(); client != nil {
		handlers.SetStorageClient(client)
		log.Println("📁 Identity-proof storage configured")
	} else {
		log.Println("📁 Identity-proof storage disabled (SUPABASE_URL not set)")
	}

	// Setup Gin router
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(config))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// WebSocket route for live notifications (outside /api group)
	router.GET("/ws/notifications", handlers.AuthMiddleware(), handlers.HandleNotificationWebSocket)

	// API Routes
	api := router.Group("/api")
	{
		// Public auth
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		// Authenticated routes
		authed := api.Group("")
		authed.Use(handlers.AuthMiddleware())
		{
			authed.GET("/auth/me", handlers.Me)
			authed.GET("/profile", handlers.Me)
			authed.PUT("/profile", handlers.UpdateProfile)

			// Inventory is readable by any signed-in user
			authed.GET("/inventory", handlers.GetInventory)

			// Relief requests
			authed.POST("/requests", handlers.SubmitReliefRequest)
			authed.GET("/requests/mine", handlers.GetMyReliefRequests)

			// Notifications
			authed.GET("/notifications", handlers.GetNotifications)
			authed.GET("/notifications/unread-count", handlers.GetUnreadNotificationCount)
			authed.PATCH("/notifications/:id/read", handlers.MarkNotificationRead)

			// Admin routes
			admin := authed.Group("/admin")
			admin.Use(handlers.RequireAdmin())
			{
				// Inventory management
				admin.POST("/inventory", handlers.UpsertInventoryItem)
				admin.POST("/inventory/:id/restock", handlers.RestockInventoryItem)
				admin.DELETE("/inventory/:id", handlers.DeleteInventoryItem)

				// Relief request review
				admin.GET("/requests", handlers.GetReliefRequests)
				admin.PATCH("/requests/:id/approve", handlers.ApproveReliefRequest)
				admin.PATCH("/requests/:id/deny", handlers.DenyReliefRequest)
				admin.PATCH("/requests/:id/given", handlers.MarkReliefGiven)

				// Distribution ledger
				admin.POST("/distributions", handlers.RecordDistribution)
				admin.GET("/distributions", handlers.GetDistributions)

				// Families
				admin.GET("/families", handlers.GetFamilies)
				admin.DELETE("/families/:id", handlers.DeleteFamily)

				// Analytics & hub stats
				admin.GET("/analytics", handlers.GetAnalytics)
				admin.GET("/notifications/hub-stats", handlers.GetNotifyHubStats)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
