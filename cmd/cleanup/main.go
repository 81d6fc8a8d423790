package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
)

const (
	readNotificationRetention = 30 * 24 * time.Hour
	deniedRequestRetention    = 90 * 24 * time.Hour
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("Start cleanup...")

	now := time.Now()

	// Purge read notifications past retention
	res := database.DB.
		Where("is_read = ? AND created_at < ?", true, now.Add(-readNotificationRetention)).
		Delete(&models.Notification{})
	if res.Error != nil {
		log.Fatalf("Failed to delete read notifications: %v", res.Error)
	}
	fmt.Printf("✅ Deleted %d read notifications\n", res.RowsAffected)

	// Purge old denied requests. Approved requests and the distribution
	// ledger are never purged.
	res = database.DB.
		Where("status = ? AND reviewed_date < ?", models.RequestDenied, now.Add(-deniedRequestRetention)).
		Delete(&models.ReliefRequest{})
	if res.Error != nil {
		log.Fatalf("Failed to delete denied requests: %v", res.Error)
	}
	fmt.Printf("✅ Deleted %d old denied requests\n", res.RowsAffected)
}
