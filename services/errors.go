// Package services holds the relief workflows: inventory mutation, the
// request lifecycle, distribution recording and notification fan-out.
// Every operation takes the acting identity explicitly so the workflows
// stay testable without the HTTP layer.
package services

import "errors"

// Business-rule sentinels, matched with errors.Is in the handlers
var (
	ErrValidation              = errors.New("validation failed")
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameTaken           = errors.New("username is already taken")
	ErrCannotDeleteAdmin       = errors.New("admin accounts cannot be deleted")
	ErrItemNotFound            = errors.New("inventory item not found")
	ErrItemInUse               = errors.New("inventory item has distribution history")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrRequestNotFound         = errors.New("relief request not found")
	ErrDuplicatePendingRequest = errors.New("a pending relief request already exists for this user")
	ErrInvalidStateTransition  = errors.New("relief request is not in a state that allows this action")
	ErrNotificationNotFound    = errors.New("notification not found")
)
