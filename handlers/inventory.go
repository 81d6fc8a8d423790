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

// GetInventory handles GET /api/inventory - List stock items with filters
func GetInventory(c *gin.Context) {
	query := database.DB.Model(&models.InventoryItem{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("lowStock") == "true" {
		query = query.Where("quantity > 0 AND quantity <= ?", services.LowStockThreshold)
	}

	var items []models.InventoryItem
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// UpsertInventoryItem handles POST /api/admin/inventory - Add an item or
// overwrite the quantity of an existing (name, category) pair
func UpsertInventoryItem(c *gin.Context) {
	var req struct {
		Name     string              `json:"name" binding:"required"`
		Category models.ItemCategory `json:"category" binding:"required"`
		Quantity *int                `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	item, created, err := services.UpsertItem(database.DB, req.Name, req.Category, *req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save inventory item"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"item": item, "created": created})
}

// RestockInventoryItem handles POST /api/admin/inventory/:id/restock -
// Additive quantity increase
func RestockInventoryItem(c *gin.Context) {
	itemID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var req struct {
		Amount int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	item, err := services.RestockItem(database.DB, itemID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteInventoryItem handles DELETE /api/admin/inventory/:id
func DeleteInventoryItem(c *gin.Context) {
	itemID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	if err := services.DeleteItem(database.DB, itemID); err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		case errors.Is(err, services.ErrItemInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Item has distribution history and cannot be deleted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseID parses a numeric path parameter
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
