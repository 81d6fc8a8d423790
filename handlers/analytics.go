package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"github.com/myrelief/backend/services"
)

// GetAnalytics handles GET /api/admin/analytics - Dashboard counters
func GetAnalytics(c *gin.Context) {
	var familyCount int64
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleFamilyHead).Count(&familyCount)

	var pendingRequests int64
	database.DB.Model(&models.ReliefRequest{}).Where("status = ?", models.RequestPending).Count(&pendingRequests)

	var approvedRequests int64
	database.DB.Model(&models.ReliefRequest{}).Where("status = ?", models.RequestApproved).Count(&approvedRequests)

	var distributionCount int64
	database.DB.Model(&models.ReliefDistribution{}).Count(&distributionCount)

	type categoryTotal struct {
		Category models.ItemCategory `json:"category"`
		Items    int64               `json:"items"`
		Quantity int64               `json:"quantity"`
	}
	var byCategory []categoryTotal
	if err := database.DB.Model(&models.InventoryItem{}).
		Select("category, COUNT(*) AS items, COALESCE(SUM(quantity), 0) AS quantity").
		Group("category").
		Order("category").
		Scan(&byCategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	var lowStock []models.InventoryItem
	if err := database.DB.
		Where("quantity > 0 AND quantity <= ?", services.LowStockThreshold).
		Order("quantity").
		Find(&lowStock).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"families":            familyCount,
		"pendingRequests":     pendingRequests,
		"approvedRequests":    approvedRequests,
		"distributions":       distributionCount,
		"inventoryByCategory": byCategory,
		"lowStockItems":       lowStock,
	})
}
