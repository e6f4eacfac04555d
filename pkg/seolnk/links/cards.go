package links

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
)

// CreateCardRequest represents the request to create a preview card
type CreateCardRequest struct {
	OriginalURL string `json:"original_url" binding:"required,url"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
	CampaignID  *uint  `json:"campaign_id"`
}

// UpdateCardRequest represents the request to update a preview card
type UpdateCardRequest struct {
	OriginalURL string  `json:"original_url" binding:"omitempty,url"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	ImageWidth  *int    `json:"image_width"`
	ImageHeight *int    `json:"image_height"`
	CampaignID  *uint   `json:"campaign_id"`
	IsActive    *bool   `json:"is_active"`
}

// CreateCard creates a preview card link
// @Summary Create a preview card
// @Description Create a short link with a custom social preview card
// @Tags cards
// @Accept json
// @Produce json
// @Param request body CreateCardRequest true "Card details"
// @Success 201 {object} models.PreviewCard
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /cards [post]
func (h *Handler) CreateCard(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkCampaign(c, req.CampaignID, ownerID) {
		return
	}

	card := models.PreviewCard{
		OwnerID:     ownerID,
		CampaignID:  req.CampaignID,
		Slug:        h.generateSlug(&models.PreviewCard{}),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ImageWidth:  req.ImageWidth,
		ImageHeight: req.ImageHeight,
		OriginalURL: req.OriginalURL,
		IsActive:    true,
	}
	if err := h.db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, card)
}

// ListCards returns all preview cards owned by the caller
// @Summary List preview cards
// @Tags cards
// @Produce json
// @Success 200 {array} models.PreviewCard
// @Security BearerAuth
// @Router /cards [get]
func (h *Handler) ListCards(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var cards []models.PreviewCard
	if err := h.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard returns one owned preview card
// @Summary Get a preview card
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} models.PreviewCard
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [get]
func (h *Handler) GetCard(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var card models.PreviewCard
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// UpdateCard updates an owned preview card
// @Summary Update a preview card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param request body UpdateCardRequest true "Updated card details"
// @Success 200 {object} models.PreviewCard
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [put]
func (h *Handler) UpdateCard(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var card models.PreviewCard
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.OriginalURL != "" {
		card.OriginalURL = req.OriginalURL
	}
	if req.Title != "" {
		card.Title = req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.ImageURL != "" {
		card.ImageURL = req.ImageURL
	}
	if req.ImageWidth != nil {
		card.ImageWidth = *req.ImageWidth
	}
	if req.ImageHeight != nil {
		card.ImageHeight = *req.ImageHeight
	}
	if req.CampaignID != nil {
		if !h.checkCampaign(c, req.CampaignID, ownerID) {
			return
		}
		card.CampaignID = req.CampaignID
	}
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	if err := h.db.Save(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// DeleteCard deletes an owned preview card
// @Summary Delete a preview card
// @Tags cards
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} map[string]string "Card deleted"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [delete]
func (h *Handler) DeleteCard(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var card models.PreviewCard
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	if err := h.db.Unscoped().Delete(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}
