package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"github.com/myrelief/backend/services"
)

// GetFamilies handles GET /api/admin/families - Registered family heads
func GetFamilies(c *gin.Context) {
	query := database.DB.Model(&models.User{}).Where("role = ?", models.RoleFamilyHead)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR last_name LIKE ? OR first_name LIKE ?", like, like, like)
	}
	if barangay := c.Query("barangay"); barangay != "" {
		query = query.Where("barangay = ?", barangay)
	}

	var families []models.User
	if err := query.Order("created_at DESC").Find(&families).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch families"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"families": families, "count": len(families)})
}

// DeleteFamily handles DELETE /api/admin/families/:id - Removes the user and,
// in the same transaction, their requests and distribution history
func DeleteFamily(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := services.DeleteFamily(database.DB, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrCannotDeleteAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin accounts cannot be deleted here"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete family"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
