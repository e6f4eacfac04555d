package links

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
)

// TargetRequest is one destination URL in a rotator payload
type TargetRequest struct {
	URL      string `json:"url" binding:"required,url"`
	IsActive *bool  `json:"is_active"`
}

// CreateRotatorRequest represents the request to create a rotator.
// A rotator must be created with at least one target.
type CreateRotatorRequest struct {
	Title      string          `json:"title" binding:"required"`
	Targets    []TargetRequest `json:"targets" binding:"required,min=1,dive"`
	CampaignID *uint           `json:"campaign_id"`
}

// UpdateRotatorRequest represents the request to update a rotator.
// When targets are present they replace the whole collection and must
// not be empty.
type UpdateRotatorRequest struct {
	Title      string          `json:"title"`
	Targets    []TargetRequest `json:"targets" binding:"omitempty,min=1,dive"`
	CampaignID *uint           `json:"campaign_id"`
	IsActive   *bool           `json:"is_active"`
}

func buildTargets(rotatorID uint, reqs []TargetRequest) []models.RotatorTarget {
	targets := make([]models.RotatorTarget, len(reqs))
	for i, t := range reqs {
		active := true
		if t.IsActive != nil {
			active = *t.IsActive
		}
		targets[i] = models.RotatorTarget{
			RotatorLinkID: rotatorID,
			URL:           t.URL,
			Position:      i,
			IsActive:      active,
		}
	}
	return targets
}

// CreateRotator creates a rotator link with its target collection.
// Parent and targets are one logical unit: when the target insert
// fails the just-created parent is deleted again (best-effort) so no
// empty rotator is left behind.
// @Summary Create a rotator link
// @Description Create a short link that rotates across several destination URLs
// @Tags rotators
// @Accept json
// @Produce json
// @Param request body CreateRotatorRequest true "Rotator details"
// @Success 201 {object} models.RotatorLink
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /rotators [post]
func (h *Handler) CreateRotator(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var req CreateRotatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkCampaign(c, req.CampaignID, ownerID) {
		return
	}

	rotator := models.RotatorLink{
		OwnerID:    ownerID,
		CampaignID: req.CampaignID,
		Slug:       h.generateSlug(&models.RotatorLink{}),
		Title:      req.Title,
		IsActive:   true,
	}
	if err := h.db.Create(&rotator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rotator"})
		return
	}

	targets := buildTargets(rotator.ID, req.Targets)
	if err := h.db.Create(&targets).Error; err != nil {
		// Compensate: remove the parent so no empty rotator persists
		// and its slug returns to the open pool.
		if delErr := h.db.Unscoped().Delete(&rotator).Error; delErr != nil {
			log.Warn().Err(delErr).Uint("rotator_id", rotator.ID).
				Msg("rollback of orphaned rotator failed")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rotator targets"})
		return
	}
	rotator.Targets = targets

	c.JSON(http.StatusCreated, rotator)
}

// ListRotators returns all rotators owned by the caller
// @Summary List rotator links
// @Tags rotators
// @Produce json
// @Success 200 {array} models.RotatorLink
// @Security BearerAuth
// @Router /rotators [get]
func (h *Handler) ListRotators(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)

	var rotators []models.RotatorLink
	if err := h.db.Preload("Targets").Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&rotators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rotators"})
		return
	}
	c.JSON(http.StatusOK, rotators)
}

// GetRotator returns one owned rotator with its targets
// @Summary Get a rotator link
// @Tags rotators
// @Produce json
// @Param id path int true "Rotator ID"
// @Success 200 {object} models.RotatorLink
// @Failure 404 {object} map[string]string "Rotator not found"
// @Security BearerAuth
// @Router /rotators/{id} [get]
func (h *Handler) GetRotator(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var rotator models.RotatorLink
	if err := h.db.Preload("Targets").Where("id = ? AND owner_id = ?", id, ownerID).
		First(&rotator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rotator not found"})
		return
	}
	c.JSON(http.StatusOK, rotator)
}

// UpdateRotator updates an owned rotator; a provided target list
// replaces the existing collection
// @Summary Update a rotator link
// @Tags rotators
// @Accept json
// @Produce json
// @Param id path int true "Rotator ID"
// @Param request body UpdateRotatorRequest true "Updated rotator details"
// @Success 200 {object} models.RotatorLink
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Rotator not found"
// @Security BearerAuth
// @Router /rotators/{id} [put]
func (h *Handler) UpdateRotator(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var rotator models.RotatorLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&rotator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rotator not found"})
		return
	}

	var req UpdateRotatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		rotator.Title = req.Title
	}
	if req.CampaignID != nil {
		if !h.checkCampaign(c, req.CampaignID, ownerID) {
			return
		}
		rotator.CampaignID = req.CampaignID
	}
	if req.IsActive != nil {
		rotator.IsActive = *req.IsActive
	}

	if err := h.db.Save(&rotator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rotator"})
		return
	}

	if len(req.Targets) > 0 {
		// Insert the replacement collection before dropping the old one:
		// if the insert fails the previous targets stay in place and the
		// rotator never ends up with zero targets.
		var old []models.RotatorTarget
		if err := h.db.Where("rotator_link_id = ?", rotator.ID).Find(&old).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update targets"})
			return
		}
		targets := buildTargets(rotator.ID, req.Targets)
		if err := h.db.Create(&targets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update targets"})
			return
		}
		if len(old) > 0 {
			if err := h.db.Delete(&old).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update targets"})
				return
			}
		}
		rotator.Targets = targets
	} else {
		// Reload so the response carries the current targets like GET does.
		h.db.Preload("Targets").First(&rotator, rotator.ID)
	}

	c.JSON(http.StatusOK, rotator)
}

// DeleteRotator deletes an owned rotator and its targets
// @Summary Delete a rotator link
// @Tags rotators
// @Produce json
// @Param id path int true "Rotator ID"
// @Success 200 {object} map[string]string "Rotator deleted"
// @Failure 404 {object} map[string]string "Rotator not found"
// @Security BearerAuth
// @Router /rotators/{id} [delete]
func (h *Handler) DeleteRotator(c *gin.Context) {
	id, ownerID, ok := ownedID(c)
	if !ok {
		return
	}

	var rotator models.RotatorLink
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&rotator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rotator not found"})
		return
	}

	if err := h.db.Where("rotator_link_id = ?", rotator.ID).
		Delete(&models.RotatorTarget{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rotator"})
		return
	}
	if err := h.db.Unscoped().Delete(&rotator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rotator"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rotator deleted"})
}
