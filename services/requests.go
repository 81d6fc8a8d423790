package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/myrelief/backend/models"
	"gorm.io/gorm"
)

// SubmitRequest creates a pending relief request for the user. A user may hold
// at most one pending request at a time.
func SubmitRequest(db *gorm.DB, user *models.User, reliefType, notes string) (*models.ReliefRequest, error) {
	reliefType = strings.TrimSpace(reliefType)
	notes = strings.TrimSpace(notes)
	if reliefType == "" {
		return nil, fmt.Errorf("%w: relief type is required", ErrValidation)
	}
	if notes == "" {
		return nil, fmt.Errorf("%w: notes are required", ErrValidation)
	}

	var pending int64
	if err := db.Model(&models.ReliefRequest{}).
		Where("user_id = ? AND status = ?", user.ID, models.RequestPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrDuplicatePendingRequest
	}

	request := models.ReliefRequest{
		UserID:      user.ID,
		ReliefType:  reliefType,
		Status:      models.RequestPending,
		Notes:       notes,
		RequestDate: time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ApproveRequest moves a pending request to approved, recording the reviewer
// and review time. The status guard is part of the UPDATE so a request cannot
// be reviewed twice.
func ApproveRequest(db *gorm.DB, requestID uint, admin *models.User, reliefGiven bool) (*models.ReliefRequest, error) {
	now := time.Now()
	res := db.Model(&models.ReliefRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestPending).
		Updates(map[string]interface{}{
			"status":         models.RequestApproved,
			"reviewed_by_id": admin.ID,
			"reviewed_date":  now,
			"relief_given":   reliefGiven,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, reviewFailure(db, requestID)
	}
	return getRequest(db, requestID)
}

// DenyRequest moves a pending request to denied with the admin's notes
func DenyRequest(db *gorm.DB, requestID uint, admin *models.User, adminNotes string) (*models.ReliefRequest, error) {
	now := time.Now()
	res := db.Model(&models.ReliefRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestPending).
		Updates(map[string]interface{}{
			"status":         models.RequestDenied,
			"reviewed_by_id": admin.ID,
			"reviewed_date":  now,
			"admin_notes":    strings.TrimSpace(adminNotes),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, reviewFailure(db, requestID)
	}
	return getRequest(db, requestID)
}

// MarkReliefGiven flips the relief_given flag on an approved request. It does
// not move inventory; that is the distribution recorder's job.
func MarkReliefGiven(db *gorm.DB, requestID uint, given bool) (*models.ReliefRequest, error) {
	res := db.Model(&models.ReliefRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestApproved).
		Update("relief_given", given)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, reviewFailure(db, requestID)
	}
	return getRequest(db, requestID)
}

// reviewFailure distinguishes a missing request from an illegal transition
// after a guarded UPDATE matched no rows
func reviewFailure(db *gorm.DB, requestID uint) error {
	var count int64
	if err := db.Model(&models.ReliefRequest{}).Where("id = ?", requestID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRequestNotFound
	}
	return ErrInvalidStateTransition
}

func getRequest(db *gorm.DB, requestID uint) (*models.ReliefRequest, error) {
	var request models.ReliefRequest
	if err := db.Preload("User").Preload("ReviewedBy").First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}
