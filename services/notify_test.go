package services

import (
	"errors"
	"testing"

	"github.com/myrelief/backend/models"
)

func TestNotifyNewUserReferencesUser(t *testing.T) {
	db := openTestDB(t)
	user := newFamilyHead(t, db, "delacruz_fam")

	n, err := NotifyNewUser(db, user)
	if err != nil {
		t.Fatalf("NotifyNewUser failed: %v", err)
	}
	if n.Type != models.NotificationNewUser {
		t.Errorf("type = %s, want new_user", n.Type)
	}
	if n.RelatedUserID == nil || *n.RelatedUserID != user.ID {
		t.Error("expected the notification to reference the user")
	}
	if n.IsRead {
		t.Error("new notifications start unread")
	}
}

func TestMarkNotificationReadIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := newFamilyHead(t, db, "delacruz_fam")

	n, err := NotifyNewUser(db, user)
	if err != nil {
		t.Fatalf("NotifyNewUser failed: %v", err)
	}

	if err := MarkNotificationRead(db, n.ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if err := MarkNotificationRead(db, n.ID); err != nil {
		t.Errorf("second MarkNotificationRead should succeed, got %v", err)
	}

	count, err := UnreadCount(db)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("unread count = %d, want 0", count)
	}

	if err := MarkNotificationRead(db, 9999); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("missing notification: err = %v, want ErrNotificationNotFound", err)
	}
}

func TestListNotificationsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	first := newFamilyHead(t, db, "delacruz_fam")
	second := newFamilyHead(t, db, "reyes_fam")
	third := newFamilyHead(t, db, "santos_fam")

	for _, u := range []*models.User{first, second, third} {
		if _, err := NotifyNewUser(db, u); err != nil {
			t.Fatalf("NotifyNewUser failed: %v", err)
		}
	}

	notifications, err := ListNotifications(db, false, 0)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 3 {
		t.Fatalf("len = %d, want 3", len(notifications))
	}
	if *notifications[0].RelatedUserID != third.ID {
		t.Error("expected the most recent notification first")
	}

	// Unread filter drops read rows
	if err := MarkNotificationRead(db, notifications[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	unread, err := ListNotifications(db, true, 0)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(unread) != 2 {
		t.Errorf("unread len = %d, want 2", len(unread))
	}

	// Limit caps the page
	limited, err := ListNotifications(db, false, 1)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited len = %d, want 1", len(limited))
	}
}
