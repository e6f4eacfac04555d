package links

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
)

// CreateProtectedRequest represents the request to create a protected
// link. The password is hashed immediately and never stored or logged
// in plaintext.
type CreateProtectedRequest struct {
	OriginalURL string `json:"original_url" binding:"required,url"`
	Title       string `json:"title"`
	Password    string `json:"password" binding:"required,min=4"`
	CampaignID  *uint  `json:"campaign_id"`
}

// UpdateProtectedRequest represents the request to update a protected link
type UpdateProtectedRequest struct {
	OriginalURL string  `json:"original_url" binding:"omitempty,url"`
	Title       *string `json:"title"`
	Password    string  `json:"password" binding:"omitempty,min=4"`
	CampaignID  *uint   `json:"campaign_id"`
	IsActive    *bool   `json:"is_active"`
}

// CreateProtected creates a password-protected link
// @Summary Create a protected link
// @Description Create a short link gated by a password
// @Tags protected
// @Accept json
// @Produce json
// @Param request body CreateProtectedRequest true "Link details"
// @Success 201 {object} models.ProtectedLink
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /protected [post]
func (h *Handler) CreateProtected(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var req CreateProtectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkCampaign(c, req.CampaignID, ownerID) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	link := models.ProtectedLink{
		OwnerID:      ownerID,
		CampaignID:   req.CampaignID,
		Slug:         h.generateSlug(&models.ProtectedLink{}),
		Title:        req.Title,
		OriginalURL:  req.OriginalURL,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := h.db.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// ListProtected returns all protected links owned by the caller
// @Summary List protected links
// @Tags protected
// @Produce json
// @Success 200 {array} models.ProtectedLink
// @Security BearerAuth
// @Router /protected [get]
func (h *Handler) ListProtected(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var linksList []models.ProtectedLink
	if err := h.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&linksList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}
	c.JSON(http.StatusOK, linksList)
}

// GetProtected returns one owned protected link
// @Summary Get a protected link
// @Tags protected
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} models.ProtectedLink
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /protected/{id} [get]
func (h *Handler) GetProtected(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.ProtectedLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}
	c.JSON(http.StatusOK, link)
}

// UpdateProtected updates an owned protected link. A new password
// replaces the stored hash.
// @Summary Update a protected link
// @Tags protected
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param request body UpdateProtectedRequest true "Updated link details"
// @Success 200 {object} models.ProtectedLink
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /protected/{id} [put]
func (h *Handler) UpdateProtected(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.ProtectedLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	var req UpdateProtectedRequest
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
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}
		link.PasswordHash = hash
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

// DeleteProtected deletes an owned protected link
// @Summary Delete a protected link
// @Tags protected
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} map[string]string "Link deleted"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /protected/{id} [delete]
func (h *Handler) DeleteProtected(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.ProtectedLink
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
