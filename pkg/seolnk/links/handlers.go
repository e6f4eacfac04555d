package links

import (
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/alias"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/cache"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"gorm.io/gorm"
)

const maxSuggestions = 4

// Handler handles link management requests for all five link types
type Handler struct {
	db     *gorm.DB
	policy *alias.Policy
	cache  *cache.Cache
}

// NewHandler creates a new links handler. cache may be nil.
func NewHandler(db *gorm.DB, policy *alias.Policy, resolveCache *cache.Cache) *Handler {
	return &Handler{db: db, policy: policy, cache: resolveCache}
}

// generateRandomString creates a random string of given length
func generateRandomString(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// generateSlug creates a slug that is unique within one link type's
// table. model must be a pointer to the type being created.
func (h *Handler) generateSlug(model interface{}) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8

	for attempts := 0; attempts < 10; attempts++ {
		slug := generateRandomString(length, charset)
		var count int64
		if err := h.db.Model(model).Where("slug = ?", slug).Count(&count).Error; err == nil && count == 0 {
			return slug
		}
	}

	// Fallback to longer slug if short ones are exhausted
	return generateRandomString(12, charset)
}

// ownedID parses the :id parameter and returns it with the
// authenticated owner. A bad id aborts with 400.
func ownedID(c *gin.Context) (uint, uint, bool) {
	ownerID, _ := auth.GetOwnerID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return 0, 0, false
	}
	return uint(id), ownerID, true
}

// checkCampaign verifies an optional campaign reference belongs to the
// owner. Returns false after writing the error response.
func (h *Handler) checkCampaign(c *gin.Context, campaignID *uint, ownerID uint) bool {
	if campaignID == nil {
		return true
	}
	var campaign models.Campaign
	if err := h.db.Where("id = ? AND owner_id = ?", *campaignID, ownerID).First(&campaign).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign not found"})
		return false
	}
	return true
}

// aliasTaken reports whether a normalized alias already exists.
func (h *Handler) aliasTaken(key string) bool {
	var count int64
	if err := h.db.Model(&models.CustomAlias{}).Where("alias = ?", key).Count(&count).Error; err != nil {
		// On storage trouble, claim taken; creation will surface the
		// real error.
		return true
	}
	return count > 0
}

// openSuggestions cross-references generated candidates against
// storage and keeps only unclaimed ones, capped at maxSuggestions.
func (h *Handler) openSuggestions(base string) []string {
	out := make([]string, 0, maxSuggestions)
	for _, candidate := range h.policy.Suggestions(base) {
		if len(out) == maxSuggestions {
			break
		}
		if !h.aliasTaken(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// invalidateAlias drops the resolve cache entry for an alias after a
// mutation. No-op without a cache.
func (h *Handler) invalidateAlias(c *gin.Context, key string) {
	if h.cache == nil || key == "" {
		return
	}
	_ = h.cache.DeleteAlias(c.Request.Context(), key)
}

// RegisterRoutes registers all link management routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/alias/availability", h.Availability)

	rg.POST("/aliases", h.CreateAlias)
	rg.GET("/aliases", h.ListAliases)
	rg.GET("/aliases/:id", h.GetAlias)
	rg.PUT("/aliases/:id", h.UpdateAlias)
	rg.DELETE("/aliases/:id", h.DeleteAlias)

	rg.POST("/cards", h.CreateCard)
	rg.GET("/cards", h.ListCards)
	rg.GET("/cards/:id", h.GetCard)
	rg.PUT("/cards/:id", h.UpdateCard)
	rg.DELETE("/cards/:id", h.DeleteCard)

	rg.POST("/expiring", h.CreateExpiring)
	rg.GET("/expiring", h.ListExpiring)
	rg.GET("/expiring/:id", h.GetExpiring)
	rg.PUT("/expiring/:id", h.UpdateExpiring)
	rg.DELETE("/expiring/:id", h.DeleteExpiring)

	rg.POST("/protected", h.CreateProtected)
	rg.GET("/protected", h.ListProtected)
	rg.GET("/protected/:id", h.GetProtected)
	rg.PUT("/protected/:id", h.UpdateProtected)
	rg.DELETE("/protected/:id", h.DeleteProtected)

	rg.POST("/rotators", h.CreateRotator)
	rg.GET("/rotators", h.ListRotators)
	rg.GET("/rotators/:id", h.GetRotator)
	rg.PUT("/rotators/:id", h.UpdateRotator)
	rg.DELETE("/rotators/:id", h.DeleteRotator)
}
