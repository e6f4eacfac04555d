package links

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
)

// CreateExpiringRequest represents the request to create an expiring link
type CreateExpiringRequest struct {
	OriginalURL string    `json:"original_url" binding:"required,url"`
	Title       string    `json:"title"`
	ExpiresAt   time.Time `json:"expires_at" binding:"required"`
	CampaignID  *uint     `json:"campaign_id"`
}

// UpdateExpiringRequest represents the request to update an expiring link
type UpdateExpiringRequest struct {
	OriginalURL string     `json:"original_url" binding:"omitempty,url"`
	Title       *string    `json:"title"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CampaignID  *uint      `json:"campaign_id"`
	IsActive    *bool      `json:"is_active"`
}

// CreateExpiring creates an expiring link
// @Summary Create an expiring link
// @Description Create a short link that stops resolving after its deadline
// @Tags expiring
// @Accept json
// @Produce json
// @Param request body CreateExpiringRequest true "Link details"
// @Success 201 {object} models.ExpiringLink
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /expiring [post]
func (h *Handler) CreateExpiring(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var req CreateExpiringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.ExpiresAt.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at must be in the future"})
		return
	}
	if !h.checkCampaign(c, req.CampaignID, ownerID) {
		return
	}

	link := models.ExpiringLink{
		OwnerID:     ownerID,
		CampaignID:  req.CampaignID,
		Slug:        h.generateSlug(&models.ExpiringLink{}),
		Title:       req.Title,
		OriginalURL: req.OriginalURL,
		IsActive:    true,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := h.db.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// ListExpiring returns all expiring links owned by the caller
// @Summary List expiring links
// @Tags expiring
// @Produce json
// @Success 200 {array} models.ExpiringLink
// @Security BearerAuth
// @Router /expiring [get]
func (h *Handler) ListExpiring(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var linksList []models.ExpiringLink
	if err := h.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&linksList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}
	c.JSON(http.StatusOK, linksList)
}

// GetExpiring returns one owned expiring link
// @Summary Get an expiring link
// @Tags expiring
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} models.ExpiringLink
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /expiring/{id} [get]
func (h *Handler) GetExpiring(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.ExpiringLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}
	c.JSON(http.StatusOK, link)
}

// UpdateExpiring updates an owned expiring link
// @Summary Update an expiring link
// @Tags expiring
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param request body UpdateExpiringRequest true "Updated link details"
// @Success 200 {object} models.ExpiringLink
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /expiring/{id} [put]
func (h *Handler) UpdateExpiring(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.ExpiringLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	var req UpdateExpiringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.OriginalURL != "" {
		link.OriginalURL = req.OriginalURL
	}
	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.ExpiresAt != nil {
		link.ExpiresAt = *req.ExpiresAt
	}
	if req.CampaignID != nil {
		if !h.checkCampaign(c, req.CampaignID, ownerID) {
			return
		}
		link.CampaignID = req.CampaignID
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := h.db.Save(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
		return
	}
	c.JSON(http.StatusOK, link)
}

// DeleteExpiring deletes an owned expiring link
// @Summary Delete an expiring link
// @Tags expiring
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} map[string]string "Link deleted"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /expiring/{id} [delete]
func (h *Handler) DeleteExpiring(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.ExpiringLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if err := h.db.Unscoped().Delete(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}
