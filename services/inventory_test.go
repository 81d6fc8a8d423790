package services

import (
	"errors"
	"testing"

	"github.com/myrelief/backend/models"
)

func TestUpsertItemCreatesAndOverwrites(t *testing.T) {
	db := openTestDB(t)

	item, created, err := UpsertItem(db, "Rice", models.CategoryFood, 50)
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if !created {
		t.Error("expected first upsert to create the item")
	}
	if item.Quantity != 50 {
		t.Errorf("quantity = %d, want 50", item.Quantity)
	}

	// Re-adding the same (name, category) overwrites the quantity
	same, created, err := UpsertItem(db, "Rice", models.CategoryFood, 20)
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if created {
		t.Error("expected second upsert to update, not create")
	}
	if same.ID != item.ID {
		t.Errorf("expected same row, got id %d and %d", item.ID, same.ID)
	}
	if q := itemQuantity(t, db, item.ID); q != 20 {
		t.Errorf("quantity after overwrite = %d, want 20", q)
	}

	// Same name under another category is a distinct item
	other, created, err := UpsertItem(db, "Rice", models.CategoryOthers, 5)
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if !created || other.ID == item.ID {
		t.Error("expected a new item for a different category")
	}
}

func TestUpsertItemValidation(t *testing.T) {
	db := openTestDB(t)

	cases := []struct {
		name     string
		itemName string
		category models.ItemCategory
		quantity int
	}{
		{"empty name", "  ", models.CategoryFood, 10},
		{"unknown category", "Rice", "Weapons", 10},
		{"negative quantity", "Rice", models.CategoryFood, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := UpsertItem(db, tc.itemName, tc.category, tc.quantity)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRestockItemIsAdditive(t *testing.T) {
	db := openTestDB(t)
	item := newItem(t, db, "Soap", models.CategoryHygiene, 15)

	restocked, err := RestockItem(db, item.ID, 7)
	if err != nil {
		t.Fatalf("RestockItem failed: %v", err)
	}
	if restocked.Quantity != 22 {
		t.Errorf("quantity = %d, want 22", restocked.Quantity)
	}

	if _, err := RestockItem(db, item.ID, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("restock of 0: err = %v, want ErrValidation", err)
	}
	if _, err := RestockItem(db, item.ID, -5); !errors.Is(err, ErrValidation) {
		t.Errorf("negative restock: err = %v, want ErrValidation", err)
	}
	if _, err := RestockItem(db, 9999, 5); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing item: err = %v, want ErrItemNotFound", err)
	}
}

func TestLowStockNotificationDeduplicated(t *testing.T) {
	db := openTestDB(t)

	// Entering (0, 10] raises exactly one alert
	if _, _, err := UpsertItem(db, "Paracetamol", models.CategoryMedicine, 8); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if got := countNotifications(t, db, models.NotificationLowStock); got != 1 {
		t.Fatalf("low_stock notifications = %d, want 1", got)
	}

	// Further writes inside the range stay silent while the alert is unread
	if _, _, err := UpsertItem(db, "Paracetamol", models.CategoryMedicine, 5); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if got := countNotifications(t, db, models.NotificationLowStock); got != 1 {
		t.Errorf("low_stock notifications = %d, want still 1", got)
	}

	// Once the alert is read, the next low-stock write raises a fresh one
	var n models.Notification
	if err := db.Where("type = ?", models.NotificationLowStock).First(&n).Error; err != nil {
		t.Fatalf("failed to load notification: %v", err)
	}
	if err := MarkNotificationRead(db, n.ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if _, _, err := UpsertItem(db, "Paracetamol", models.CategoryMedicine, 3); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if got := countNotifications(t, db, models.NotificationLowStock); got != 2 {
		t.Errorf("low_stock notifications = %d, want 2", got)
	}

	// A different item gets its own alert regardless
	if _, _, err := UpsertItem(db, "Tarpaulins", models.CategoryShelter, 4); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if got := countNotifications(t, db, models.NotificationLowStock); got != 3 {
		t.Errorf("low_stock notifications = %d, want 3", got)
	}
}

func TestLowStockNotRaisedOutsideRange(t *testing.T) {
	db := openTestDB(t)

	if _, _, err := UpsertItem(db, "Rice", models.CategoryFood, 0); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if _, _, err := UpsertItem(db, "Blankets", models.CategoryClothing, 11); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if got := countNotifications(t, db, models.NotificationLowStock); got != 0 {
		t.Errorf("low_stock notifications = %d, want 0 for quantities 0 and 11", got)
	}
}

// TestDeleteItemAfterLowStockAlert deletes an item that raised a low_stock
// alert but has no distribution history. The alert survives with its item
// reference cleared.
func TestDeleteItemAfterLowStockAlert(t *testing.T) {
	db := openTestDB(t)

	item, _, err := UpsertItem(db, "Paracetamol", models.CategoryMedicine, 4)
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if got := countNotifications(t, db, models.NotificationLowStock); got != 1 {
		t.Fatalf("low_stock notifications = %d, want 1", got)
	}

	if err := DeleteItem(db, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	var n models.Notification
	if err := db.Where("type = ?", models.NotificationLowStock).First(&n).Error; err != nil {
		t.Fatalf("low_stock notification should survive the deletion: %v", err)
	}
	if n.RelatedItemID != nil {
		t.Errorf("relatedItemId = %v, want cleared", *n.RelatedItemID)
	}
}

func TestDeleteItemBlockedByDistributionHistory(t *testing.T) {
	db := openTestDB(t)
	admin := newAdmin(t, db)
	user := newFamilyHead(t, db, "delacruz_fam")
	item := newItem(t, db, "Rice", models.CategoryFood, 30)

	if _, err := RecordDistribution(db, user.ID, item.ID, 2, admin, ""); err != nil {
		t.Fatalf("RecordDistribution failed: %v", err)
	}

	if err := DeleteItem(db, item.ID); !errors.Is(err, ErrItemInUse) {
		t.Errorf("delete with history: err = %v, want ErrItemInUse", err)
	}

	fresh := newItem(t, db, "Soap", models.CategoryHygiene, 50)
	if err := DeleteItem(db, fresh.ID); err != nil {
		t.Errorf("delete without history failed: %v", err)
	}
	if err := DeleteItem(db, 9999); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing item: err = %v, want ErrItemNotFound", err)
	}
}
