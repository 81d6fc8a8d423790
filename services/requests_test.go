package services

import (
	"errors"
	"testing"

	"github.com/myrelief/backend/models"
)

func TestSubmitRequestValidation(t *testing.T) {
	db := openTestDB(t)
	user := newFamilyHead(t, db, "delacruz_fam")

	if _, err := SubmitRequest(db, user, "", "need food"); !errors.Is(err, ErrValidation) {
		t.Errorf("empty relief type: err = %v, want ErrValidation", err)
	}
	if _, err := SubmitRequest(db, user, "Food", "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank notes: err = %v, want ErrValidation", err)
	}
}

func TestOnePendingRequestPerUser(t *testing.T) {
	db := openTestDB(t)
	admin := newAdmin(t, db)
	user := newFamilyHead(t, db, "delacruz_fam")

	first, err := SubmitRequest(db, user, "Food", "need food")
	if err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}
	if first.Status != models.RequestPending {
		t.Errorf("status = %s, want pending", first.Status)
	}

	if _, err := SubmitRequest(db, user, "Medicine", "need medicine"); !errors.Is(err, ErrDuplicatePendingRequest) {
		t.Errorf("second submit: err = %v, want ErrDuplicatePendingRequest", err)
	}

	// Another user is unaffected
	other := newFamilyHead(t, db, "reyes_fam")
	if _, err := SubmitRequest(db, other, "Food", "need food"); err != nil {
		t.Errorf("other user's submit failed: %v", err)
	}

	// Once reviewed, the user may submit again
	if _, err := DenyRequest(db, first.ID, admin, "incomplete details"); err != nil {
		t.Fatalf("DenyRequest failed: %v", err)
	}
	if _, err := SubmitRequest(db, user, "Medicine", "need medicine"); err != nil {
		t.Errorf("submit after denial failed: %v", err)
	}
}

func TestApproveOnlyFromPending(t *testing.T) {
	db := openTestDB(t)
	admin := newAdmin(t, db)
	user := newFamilyHead(t, db, "delacruz_fam")

	request, err := SubmitRequest(db, user, "Food", "need food")
	if err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}

	approved, err := ApproveRequest(db, request.ID, admin, false)
	if err != nil {
		t.Fatalf("ApproveRequest failed: %v", err)
	}
	if approved.Status != models.RequestApproved {
		t.Errorf("status = %s, want approved", approved.Status)
	}
	if approved.ReviewedByID == nil || *approved.ReviewedByID != admin.ID {
		t.Error("expected reviewer to be recorded")
	}
	if approved.ReviewedDate == nil {
		t.Error("expected reviewed date to be set")
	}
	if approved.ReliefGiven {
		t.Error("relief_given should be false")
	}

	// Re-approval and denial of a reviewed request are both illegal
	if _, err := ApproveRequest(db, request.ID, admin, true); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("re-approve: err = %v, want ErrInvalidStateTransition", err)
	}
	if _, err := DenyRequest(db, request.ID, admin, "no"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("deny after approve: err = %v, want ErrInvalidStateTransition", err)
	}

	if _, err := ApproveRequest(db, 9999, admin, false); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("missing request: err = %v, want ErrRequestNotFound", err)
	}
}

func TestDenyRecordsAdminNotes(t *testing.T) {
	db := openTestDB(t)
	admin := newAdmin(t, db)
	user := newFamilyHead(t, db, "delacruz_fam")

	request, err := SubmitRequest(db, user, "Shelter", "roof damaged by typhoon")
	if err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}

	denied, err := DenyRequest(db, request.ID, admin, "duplicate of earlier request")
	if err != nil {
		t.Fatalf("DenyRequest failed: %v", err)
	}
	if denied.Status != models.RequestDenied {
		t.Errorf("status = %s, want denied", denied.Status)
	}
	if denied.AdminNotes == nil || *denied.AdminNotes != "duplicate of earlier request" {
		t.Errorf("adminNotes = %v, want the denial reason", denied.AdminNotes)
	}

	if _, err := DenyRequest(db, request.ID, admin, "again"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("re-deny: err = %v, want ErrInvalidStateTransition", err)
	}
}

func TestMarkReliefGivenRequiresApproval(t *testing.T) {
	db := openTestDB(t)
	admin := newAdmin(t, db)
	user := newFamilyHead(t, db, "delacruz_fam")

	request, err := SubmitRequest(db, user, "Food", "need food")
	if err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}

	if _, err := MarkReliefGiven(db, request.ID, true); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("mark pending request: err = %v, want ErrInvalidStateTransition", err)
	}

	if _, err := ApproveRequest(db, request.ID, admin, false); err != nil {
		t.Fatalf("ApproveRequest failed: %v", err)
	}

	updated, err := MarkReliefGiven(db, request.ID, true)
	if err != nil {
		t.Fatalf("MarkReliefGiven failed: %v", err)
	}
	if !updated.ReliefGiven {
		t.Error("relief_given should be true")
	}

	// The flag can be flipped back
	updated, err = MarkReliefGiven(db, request.ID, false)
	if err != nil {
		t.Fatalf("MarkReliefGiven failed: %v", err)
	}
	if updated.ReliefGiven {
		t.Error("relief_given should be false again")
	}

	if _, err := MarkReliefGiven(db, 9999, true); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("missing request: err = %v, want ErrRequestNotFound", err)
	}
}
