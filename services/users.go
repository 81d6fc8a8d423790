package services

import (
	"errors"

	"github.com/myrelief/backend/models"
	"gorm.io/gorm"
)

// CreateUser inserts a new user. The unique index on username is the arbiter:
// a collision, including one lost to a concurrent registration, comes back as
// ErrUsernameTaken.
func CreateUser(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// DeleteFamily removes a family head together with their requests and
// distribution history, in one transaction. Notifications referencing the user
// survive with the reference cleared by the schema's SET NULL policy.
func DeleteFamily(db *gorm.DB, userID uint) error {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsAdmin() {
		return ErrCannotDeleteAdmin
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ReliefRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ReliefDistribution{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
