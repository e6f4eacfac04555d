package links

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/alias"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
)

// CreateAliasRequest represents the request to create a custom alias
type CreateAliasRequest struct {
	Alias       string     `json:"alias" binding:"required"`
	OriginalURL string     `json:"original_url" binding:"required,url"`
	Title       string     `json:"title"`
	CampaignID  *uint      `json:"campaign_id"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsLocked    bool       `json:"is_locked"`
}

// UpdateAliasRequest represents the request to update a custom alias.
// click_count is deliberately absent: only the resolver writes it.
type UpdateAliasRequest struct {
	Alias       string     `json:"alias"`
	OriginalURL string     `json:"original_url" binding:"omitempty,url"`
	Title       *string    `json:"title"`
	CampaignID  *uint      `json:"campaign_id"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsActive    *bool      `json:"is_active"`
	IsLocked    *bool      `json:"is_locked"`
}

// AvailabilityResponse represents an alias availability check result
type AvailabilityResponse struct {
	Available   bool     `json:"available"`
	Alias       string   `json:"alias,omitempty"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Availability checks whether a candidate alias can be claimed
// @Summary Check alias availability
// @Description Normalize and validate a candidate alias and check it against existing aliases
// @Tags aliases
// @Produce json
// @Param alias query string true "Candidate alias"
// @Success 200 {object} AvailabilityResponse
// @Security BearerAuth
// @Router /alias/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	key := alias.Normalize(c.Query("alias"))

	if res := h.policy.Validate(key); !res.Valid {
		c.JSON(http.StatusOK, AvailabilityResponse{
			Error:       res.Error,
			Suggestions: res.Suggestions,
		})
		return
	}

	if h.aliasTaken(key) {
		c.JSON(http.StatusOK, AvailabilityResponse{
			Error:       "this alias is already taken",
			Suggestions: h.openSuggestions(key),
		})
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Available: true, Alias: key})
}

// CreateAlias creates a custom alias
// @Summary Create a custom alias
// @Description Create a branded short link after running the alias policy pipeline
// @Tags aliases
// @Accept json
// @Produce json
// @Param request body CreateAliasRequest true "Alias details"
// @Success 201 {object} models.CustomAlias
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]interface{} "Alias already taken"
// @Security BearerAuth
// @Router /aliases [post]
func (h *Handler) CreateAlias(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var req CreateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := alias.Normalize(req.Alias)
	if res := h.policy.Validate(key); !res.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error, "suggestions": res.Suggestions})
		return
	}
	if h.aliasTaken(key) {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "this alias is already taken",
			"suggestions": h.openSuggestions(key),
		})
		return
	}
	if !h.checkCampaign(c, req.CampaignID, ownerID) {
		return
	}

	link := models.CustomAlias{
		OwnerID:     ownerID,
		CampaignID:  req.CampaignID,
		Alias:       key,
		Title:       req.Title,
		OriginalURL: req.OriginalURL,
		IsActive:    true,
		IsLocked:    req.IsLocked,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := h.db.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alias"})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// ListAliases returns all aliases owned by the caller
// @Summary List custom aliases
// @Tags aliases
// @Produce json
// @Success 200 {array} models.CustomAlias
// @Security BearerAuth
// @Router /aliases [get]
func (h *Handler) ListAliases(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var aliases []models.CustomAlias
	if err := h.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&aliases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch aliases"})
		return
	}
	c.JSON(http.StatusOK, aliases)
}

// GetAlias returns one owned alias
// @Summary Get a custom alias
// @Tags aliases
// @Produce json
// @Param id path int true "Alias ID"
// @Success 200 {object} models.CustomAlias
// @Failure 404 {object} map[string]string "Alias not found"
// @Security BearerAuth
// @Router /aliases/{id} [get]
func (h *Handler) GetAlias(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.CustomAlias
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alias not found"})
		return
	}
	c.JSON(http.StatusOK, link)
}

// UpdateAlias updates an owned alias. Changing the alias itself is
// rejected while the record is locked.
// @Summary Update a custom alias
// @Tags aliases
// @Accept json
// @Produce json
// @Param id path int true "Alias ID"
// @Param request body UpdateAliasRequest true "Updated alias details"
// @Success 200 {object} models.CustomAlias
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Alias not found"
// @Security BearerAuth
// @Router /aliases/{id} [put]
func (h *Handler) UpdateAlias(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.CustomAlias
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alias not found"})
		return
	}

	var req UpdateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldKey := link.Alias
	if req.Alias != "" {
		key := alias.Normalize(req.Alias)
		if key != link.Alias {
			if link.IsLocked {
				c.JSON(http.StatusBadRequest, gin.H{"error": "this alias is locked and cannot be renamed"})
				return
			}
			if res := h.policy.Validate(key); !res.Valid {
				c.JSON(http.StatusBadRequest, gin.H{"error": res.Error, "suggestions": res.Suggestions})
				return
			}
			if h.aliasTaken(key) {
				c.JSON(http.StatusConflict, gin.H{
					"error":       "this alias is already taken",
					"suggestions": h.openSuggestions(key),
				})
				return
			}
			link.Alias = key
		}
	}

	if req.OriginalURL != "" {
		link.OriginalURL = req.OriginalURL
	}
	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.CampaignID != nil {
		if !h.checkCampaign(c, req.CampaignID, ownerID) {
			return
		}
		link.CampaignID = req.CampaignID
	}
	if req.ExpiresAt != nil {
		link.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	if req.IsLocked != nil {
		link.IsLocked = *req.IsLocked
	}

	if err := h.db.Save(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alias"})
		return
	}

	h.invalidateAlias(c, oldKey)
	h.invalidateAlias(c, link.Alias)

	c.JSON(http.StatusOK, link)
}

// DeleteAlias deletes an owned alias
// @Summary Delete a custom alias
// @Tags aliases
// @Produce json
// @Param id path int true "Alias ID"
// @Success 200 {object} map[string]string "Alias deleted"
// @Failure 404 {object} map[string]string "Alias not found"
// @Security BearerAuth
// @Router /aliases/{id} [delete]
func (h *Handler) DeleteAlias(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var link models.CustomAlias
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alias not found"})
		return
	}

	// Owner deletes are permanent: the row must leave the unique index
	// so the alias returns to the open pool.
	if err := h.db.Unscoped().Delete(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alias"})
		return
	}

	h.invalidateAlias(c, link.Alias)
	c.JSON(http.StatusOK, gin.H{"message": "Alias deleted"})
}
