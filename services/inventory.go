package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/myrelief/backend/models"
	"gorm.io/gorm"
)

// LowStockThreshold - quantities in (0, LowStockThreshold] raise a low_stock alert
const LowStockThreshold = 10

// UpsertItem creates an item or, when (name, category) already exists, overwrites
// its stored quantity with the given value. Returns the item and whether it was
// newly created.
func UpsertItem(db *gorm.DB, name string, category models.ItemCategory, quantity int) (*models.InventoryItem, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if !category.Valid() {
		return nil, false, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	if quantity < 0 {
		return nil, false, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}

	var item models.InventoryItem
	err := db.Where("name = ? AND category = ?", name, category).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.InventoryItem{Name: name, Category: category, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, false, err
		}
		if n, err := notifyLowStock(db, &item); err != nil {
			return nil, false, err
		} else if n != nil {
			Broadcast(n)
		}
		return &item, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	item.Quantity = quantity
	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, false, err
	}
	if n, err := notifyLowStock(db, &item); err != nil {
		return nil, false, err
	} else if n != nil {
		Broadcast(n)
	}
	return &item, false, nil
}

// RestockItem adds amount to the item's quantity
func RestockItem(db *gorm.DB, itemID uint, amount int) (*models.InventoryItem, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: restock amount must be positive", ErrValidation)
	}

	var item models.InventoryItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if err := db.Model(&item).
		Update("quantity", gorm.Expr("quantity + ?", amount)).Error; err != nil {
		return nil, err
	}
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}

	if n, err := notifyLowStock(db, &item); err != nil {
		return nil, err
	} else if n != nil {
		Broadcast(n)
	}
	return &item, nil
}

// decrementItem atomically reduces the item's quantity inside the caller's
// transaction. The conditional UPDATE is what prevents two concurrent
// distributions from jointly overdrawing stock: the quantity check and the
// write are a single statement.
func decrementItem(tx *gorm.DB, itemID uint, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: decrement amount must be positive", ErrValidation)
	}

	res := tx.Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", itemID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrItemNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// DeleteItem removes an item. Items with distribution history are kept so the
// ledger stays reconstructible; deletion is blocked with ErrItemInUse.
func DeleteItem(db *gorm.DB, itemID uint) error {
	var item models.InventoryItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	var distributions int64
	if err := db.Model(&models.ReliefDistribution{}).Where("item_id = ?", itemID).Count(&distributions).Error; err != nil {
		return err
	}
	if distributions > 0 {
		return ErrItemInUse
	}

	return db.Delete(&item).Error
}
