package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myrelief/backend/database"
	"github.com/myrelief/backend/models"
	"github.com/myrelief/backend/services"
)

// SubmitReliefRequest handles POST /api/requests - Family head asks for aid
func SubmitReliefRequest(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if user.Role != models.RoleFamilyHead {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only family heads can submit relief requests"})
		return
	}

	var req struct {
		ReliefType string `json:"reliefType" binding:"required"`
		Notes      string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	request, err := services.SubmitRequest(database.DB, user, req.ReliefType, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicatePendingRequest):
			c.JSON(http.StatusConflict, gin.H{"error": "You already have a pending relief request"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// GetMyReliefRequests handles GET /api/requests/mine
func GetMyReliefRequests(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var requests []models.ReliefRequest
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// GetReliefRequests handles GET /api/admin/requests - Review queue with filters
func GetReliefRequests(c *gin.Context) {
	query := database.DB.Model(&models.ReliefRequest{}).
		Preload("User").
		Preload("ReviewedBy")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if reliefType := c.Query("reliefType"); reliefType != "" {
		query = query.Where("relief_type = ?", reliefType)
	}

	var requests []models.ReliefRequest
	if err := query.Order("request_date DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// ApproveReliefRequest handles PATCH /api/admin/requests/:id/approve
func ApproveReliefRequest(c *gin.Context) {
	admin := CurrentUser(c)
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req struct {
		ReliefGiven bool `json:"reliefGiven"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	request, err := services.ApproveRequest(database.DB, requestID, admin, req.ReliefGiven)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// DenyReliefRequest handles PATCH /api/admin/requests/:id/deny
func DenyReliefRequest(c *gin.Context) {
	admin := CurrentUser(c)
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req struct {
		AdminNotes string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	request, err := services.DenyRequest(database.DB, requestID, admin, req.AdminNotes)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// MarkReliefGiven handles PATCH /api/admin/requests/:id/given - Flip the
// relief_given flag on an approved request
func MarkReliefGiven(c *gin.Context) {
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req struct {
		Given *bool `json:"given" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	request, err := services.MarkReliefGiven(database.DB, requestID, *req.Given)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// respondReviewError maps request-lifecycle errors to HTTP statuses
func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Relief request not found"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Relief request is not in a reviewable state"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
	}
}
