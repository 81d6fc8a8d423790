package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a throwaway sqlite database. A file in t.TempDir() rather
// than :memory: so concurrent transactions behave like a real database;
// _txlock=immediate serializes writers the way row locks do on Postgres, and
// _foreign_keys=on enforces the same constraints Postgres would.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "relief.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	admin := models.User{
		Username:     "admin",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
		FirstName:    "System",
		LastName:     "Administrator",
		Contact:      "00000000000",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return &admin
}

func newFamilyHead(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         models.RoleFamilyHead,
		FirstName:    "Test",
		LastName:     "Family",
		Address:      "Purok 1",
		City:         "Tacloban",
		Barangay:     "San Isidro",
		Contact:      "09171234567",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create family head %s: %v", username, err)
	}
	return &user
}

func newItem(t *testing.T, db *gorm.DB, name string, category models.ItemCategory, quantity int) *models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{Name: name, Category: category, Quantity: quantity}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create item %s: %v", name, err)
	}
	return &item
}

func itemQuantity(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()
	var item models.InventoryItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		t.Fatalf("failed to reload item %d: %v", itemID, err)
	}
	return item.Quantity
}

func countNotifications(t *testing.T, db *gorm.DB, notificationType models.NotificationType) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("type = ?", notificationType).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
