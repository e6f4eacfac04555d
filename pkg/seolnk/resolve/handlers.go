package resolve

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the public resolution routes. One route prefix per
// link type, matching the platform's reserved single-letter paths:
// /s alias, /e expiring, /p protected, /r rotator, /c card.
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a new resolution handler
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// VerifyRequest is the password submission for a protected link
type VerifyRequest struct {
	Password string `json:"password" binding:"required"`
}

func visitorFrom(c *gin.Context) Visitor {
	return Visitor{
		Referrer:  c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
}

// respond maps a resolution outcome onto the wire: 302 for redirects,
// 404 for unknown keys, 410 for disabled or expired links.
func respond(c *gin.Context, out Outcome, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	switch out.State {
	case StateNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case StateInactive:
		c.JSON(http.StatusGone, gin.H{"error": "This link has been deactivated"})
	case StateExpired:
		c.JSON(http.StatusGone, gin.H{"error": "This link has expired"})
	case StatePasswordRequired:
		c.JSON(http.StatusOK, gin.H{"state": "password_required", "title": out.Title})
	case StateRedirect:
		c.Redirect(http.StatusFound, out.TargetURL)
	}
}

// Alias handles custom alias redirects
func (h *Handler) Alias(c *gin.Context) {
	out, err := h.resolver.ResolveAlias(c.Request.Context(), c.Param("alias"), visitorFrom(c))
	respond(c, out, err)
}

// Expiring handles expiring link redirects
func (h *Handler) Expiring(c *gin.Context) {
	out, err := h.resolver.ResolveExpiring(c.Param("slug"), visitorFrom(c))
	respond(c, out, err)
}

// Card handles preview card redirects
func (h *Handler) Card(c *gin.Context) {
	out, err := h.resolver.ResolveCard(c.Param("slug"), visitorFrom(c))
	respond(c, out, err)
}

// Rotator handles rotator link redirects
func (h *Handler) Rotator(c *gin.Context) {
	out, err := h.resolver.ResolveRotator(c.Param("slug"), visitorFrom(c))
	respond(c, out, err)
}

// Protected handles the first step of a protected link visit:
// it reports the password challenge without leaking the hash
func (h *Handler) Protected(c *gin.Context) {
	out, err := h.resolver.ResolveProtected(c.Param("slug"))
	respond(c, out, err)
}

// Verify handles the password submission for a protected link
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.resolver.VerifyProtected(c.Param("slug"), req.Password, visitorFrom(c))
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"url": url})
	case ErrLinkNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case ErrLinkInactive:
		c.JSON(http.StatusGone, gin.H{"error": "This link has been deactivated"})
	case ErrIncorrectPassword:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// RegisterRoutes registers the public resolution routes on the root
// router. Registered after the API routes; the single-letter prefixes
// are reserved words in the alias policy so they can never collide
// with a custom alias.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/s/:alias", h.Alias)
	r.GET("/e/:slug", h.Expiring)
	r.GET("/c/:slug", h.Card)
	r.GET("/r/:slug", h.Rotator)
	r.GET("/p/:slug", h.Protected)
	r.POST("/p/:slug", h.Verify)
}
