package services

import (
	"errors"
	"fmt"

	"github.com/myrelief/backend/models"
	"gorm.io/gorm"
)

// Publisher pushes committed notifications to the live hub
type Publisher interface {
	PublishNotification(n *models.Notification)
}

var publisher Publisher

// SetPublisher wires the live notification hub. Optional; without it the
// notification rows are still written.
func SetPublisher(p Publisher) {
	publisher = p
}

// Broadcast pushes an already-committed notification to the hub, if one is wired
func Broadcast(n *models.Notification) {
	if publisher != nil && n != nil {
		publisher.PublishNotification(n)
	}
}

// NotifyNewUser records a new_user notification for a fresh registration
func NotifyNewUser(db *gorm.DB, user *models.User) (*models.Notification, error) {
	userID := user.ID
	n := models.Notification{
		Type:          models.NotificationNewUser,
		Title:         "New family registered",
		Message:       fmt.Sprintf("%s %s (%s) registered from Brgy. %s, %s", user.FirstName, user.LastName, user.Username, user.Barangay, user.City),
		RelatedUserID: &userID,
	}
	if err := db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// notifyLowStock creates a low_stock notification when the quantity sits in
// (0, LowStockThreshold], unless an unread alert already carries this item's
// ID. Returns nil when nothing was created.
func notifyLowStock(db *gorm.DB, item *models.InventoryItem) (*models.Notification, error) {
	if item.Quantity <= 0 || item.Quantity > LowStockThreshold {
		return nil, nil
	}

	var unread int64
	if err := db.Model(&models.Notification{}).
		Where("type = ? AND related_item_id = ? AND is_read = ?", models.NotificationLowStock, item.ID, false).
		Count(&unread).Error; err != nil {
		return nil, err
	}
	if unread > 0 {
		return nil, nil
	}

	itemID := item.ID
	n := models.Notification{
		Type:          models.NotificationLowStock,
		Title:         "Low stock alert",
		Message:       fmt.Sprintf("%s (%s) is down to %d units", item.Name, item.Category, item.Quantity),
		RelatedItemID: &itemID,
	}
	if err := db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// notifyDistribution records a distribution notification referencing the household
func notifyDistribution(db *gorm.DB, user *models.User, item *models.InventoryItem, quantity int) (*models.Notification, error) {
	userID := user.ID
	itemID := item.ID
	n := models.Notification{
		Type:          models.NotificationDistribution,
		Title:         "Relief distributed",
		Message:       fmt.Sprintf("%d x %s distributed to %s", quantity, item.Name, user.Username),
		RelatedUserID: &userID,
		RelatedItemID: &itemID,
	}
	if err := db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkNotificationRead sets is_read. Idempotent: re-marking a read
// notification succeeds without effect.
func MarkNotificationRead(db *gorm.DB, notificationID uint) error {
	var n models.Notification
	if err := db.First(&n, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.IsRead {
		return nil
	}
	return db.Model(&n).Update("is_read", true).Error
}

// ListNotifications returns notifications newest first
func ListNotifications(db *gorm.DB, onlyUnread bool, limit int) ([]models.Notification, error) {
	query := db.Model(&models.Notification{}).Order("created_at DESC, id DESC")
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the badge count
func UnreadCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
