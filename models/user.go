package models

import (
	"time"
)

// Role enum
type Role string

const (
	RoleFamilyHead Role = "family_head"
	RoleAdmin      Role = "admin"
)

// User model - a registered family head or an administrator
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"column:role;default:family_head;index" json:"role"`

	FirstName  string  `gorm:"column:first_name" json:"firstName"`
	LastName   string  `gorm:"column:last_name" json:"lastName"`
	MiddleName *string `gorm:"column:middle_name" json:"middleName,omitempty"`

	Address  string `gorm:"column:address" json:"address"`
	City     string `gorm:"column:city" json:"city"`
	Barangay string `gorm:"column:barangay" json:"barangay"`
	Contact  string `gorm:"column:contact" json:"contact"` // digits only, 11 characters

	// Public URL of the uploaded identity proof, if the upload succeeded
	IDProofURL *string `gorm:"column:id_proof_url" json:"idProofUrl,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// Relations - deleting a user cascades to these
	Requests      []ReliefRequest      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"requests,omitempty"`
	Distributions []ReliefDistribution `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"distributions,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may perform admin actions
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
