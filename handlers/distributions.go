package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"github.com/myrelief/backend/services"
)

// RecordDistribution handles POST /api/admin/distributions - Hand goods to a
// household, atomically decrementing stock
func RecordDistribution(c *gin.Context) {
	admin := CurrentUser(c)

	var req struct {
		UserID   uint   `json:"userId" binding:"required"`
		ItemID   uint   `json:"itemId" binding:"required"`
		Quantity int    `json:"quantity" binding:"required"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	distribution, err := services.RecordDistribution(database.DB, req.UserID, req.ItemID, req.Quantity, admin, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock for this distribution"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record distribution"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"distribution": distribution})
}

// GetDistributions handles GET /api/admin/distributions - Ledger listing with
// filters and pagination
func GetDistributions(c *gin.Context) {
	query := database.DB.Model(&models.ReliefDistribution{}).
		Preload("User").
		Preload("Item").
		Preload("DistributedBy")

	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if itemID := c.Query("itemId"); itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count distributions"})
		return
	}

	var distributions []models.ReliefDistribution
	if err := query.Order("distribution_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&distributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch distributions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distributions": distributions,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	})
}
