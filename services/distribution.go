package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/myrelief/backend/models"
	"gorm.io/gorm"
)

// RecordDistribution hands goods to a household: inside one transaction it
// decrements the item's stock, appends the distribution row and creates the
// distribution (and, when stock falls low, low_stock) notifications. A failure
// at any step rolls everything back. Live broadcasts happen after commit.
func RecordDistribution(db *gorm.DB, userID, itemID uint, quantity int, admin *models.User, notes string) (*models.ReliefDistribution, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var distribution models.ReliefDistribution
	var committed []*models.Notification

	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if err := decrementItem(tx, item.ID, quantity); err != nil {
			return err
		}

		adminID := admin.ID
		distribution = models.ReliefDistribution{
			UserID:              user.ID,
			ItemID:              item.ID,
			QuantityDistributed: quantity,
			DistributedByID:     &adminID,
			DistributionDate:    time.Now(),
		}
		if notes != "" {
			distribution.Notes = &notes
		}
		if err := tx.Create(&distribution).Error; err != nil {
			return err
		}

		n, err := notifyDistribution(tx, &user, &item, quantity)
		if err != nil {
			return err
		}
		committed = append(committed, n)

		// Re-read the decremented quantity for the low-stock check
		if err := tx.First(&item, "id = ?", item.ID).Error; err != nil {
			return err
		}
		low, err := notifyLowStock(tx, &item)
		if err != nil {
			return err
		}
		if low != nil {
			committed = append(committed, low)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range committed {
		Broadcast(n)
	}
	return &distribution, nil
}
