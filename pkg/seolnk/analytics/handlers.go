package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	"gorm.io/gorm"
)

const recentEventLimit = 20

// Handler serves per-link visit statistics to link owners
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new stats handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// EventResponse represents one visit in API responses
type EventResponse struct {
	Referrer   string `json:"referrer,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	Country    string `json:"country,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// StatsResponse represents visit statistics for one link
type StatsResponse struct {
	LinkType    string          `json:"link_type"`
	LinkID      uint            `json:"link_id"`
	TotalVisits int64           `json:"total_visits"`
	ClickCount  *uint           `json:"click_count,omitempty"`
	Recent      []EventResponse `json:"recent"`
}

// Stats returns visit totals and recent events for an owned link
// @Summary Get link statistics
// @Description Get visit totals and recent events for a link you own
// @Tags stats
// @Produce json
// @Param type path string true "Link type" Enums(alias, expiring, protected, rotator, card)
// @Param id path int true "Link ID"
// @Success 200 {object} StatsResponse
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /stats/{type}/{id} [get]
func (h *Handler) Stats(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	linkType := LinkType(c.Param("type"))
	var link interface{}
	var eventModel interface{}
	var clickCount *uint

	switch linkType {
	case TypeAlias:
		link, eventModel = &models.CustomAlias{}, &models.AliasClick{}
	case TypeExpiring:
		link, eventModel = &models.ExpiringLink{}, &models.ExpiringClick{}
	case TypeProtected:
		link, eventModel = &models.ProtectedLink{}, &models.ProtectedClick{}
	case TypeRotator:
		link, eventModel = &models.RotatorLink{}, &models.RotatorClick{}
	case TypeCard:
		link, eventModel = &models.PreviewCard{}, &models.CardView{}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link type"})
		return
	}

	// Ownership check; non-owners get the same 404 as a missing link
	if err := h.db.Where("id = ? AND owner_id = ?", linkID, ownerID).First(link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}
	if a, ok := link.(*models.CustomAlias); ok {
		clickCount = &a.ClickCount
	}

	var total int64
	if err := h.db.Model(eventModel).Where("link_id = ?", linkID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	var visits []models.Visit
	if err := h.db.Model(eventModel).Where("link_id = ?", linkID).
		Order("occurred_at DESC").Limit(recentEventLimit).Find(&visits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	recent := make([]EventResponse, len(visits))
	for i, v := range visits {
		recent[i] = EventResponse{
			Referrer:   v.Referrer,
			UserAgent:  v.UserAgent,
			Country:    v.Country,
			OccurredAt: v.OccurredAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, StatsResponse{
		LinkType:    string(linkType),
		LinkID:      uint(linkID),
		TotalVisits: total,
		ClickCount:  clickCount,
		Recent:      recent,
	})
}

// RegisterRoutes registers stats routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats/:type/:id", h.Stats)
}
