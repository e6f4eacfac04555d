package qr

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seolnk/seolnk/pkg/seolnk/auth"
	"github.com/seolnk/seolnk/pkg/seolnk/models"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const imageSize = 256

// Handler renders QR codes for owned short links
type Handler struct {
	db      *gorm.DB
	baseURL string
}

// NewHandler creates a new QR handler
func NewHandler(db *gorm.DB, baseURL string) *Handler {
	return &Handler{db: db, baseURL: baseURL}
}

// AliasQR returns a PNG QR code for an owned alias's short URL
// @Summary QR code for an alias
// @Description Get a PNG QR code pointing at the alias's short URL
// @Tags aliases
// @Produce png
// @Param id path int true "Alias ID"
// @Success 200 {file} png
// @Failure 404 {object} map[string]string "Alias not found"
// @Security BearerAuth
// @Router /aliases/{id}/qr [get]
func (h *Handler) AliasQR(c *gin.Context) {
	ownerID, _ := auth.GetOwnerID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	var link models.CustomAlias
	if err := h.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alias not found"})
		return
	}

	png, err := qrcode.Encode(h.baseURL+"/s/"+link.Alias, qrcode.Medium, imageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// RegisterRoutes registers QR routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/aliases/:id/qr", h.AliasQR)
}
