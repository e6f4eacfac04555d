package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyOwnerID is the key for the owner ID in gin context
	ContextKeyOwnerID = "owner_id"
	// ContextKeyEmail is the key for email in gin context
	ContextKeyEmail = "email"
)

// AuthMiddleware validates bearer tokens issued by the auth provider
// and sets the owner identity in context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			if err == ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyOwnerID, claims.OwnerID)
		c.Set(ContextKeyEmail, claims.Email)

		c.Next()
	}
}

// GetOwnerID returns the authenticated owner ID from the gin context
func GetOwnerID(c *gin.Context) (uint, bool) {
	ownerID, exists := c.Get(ContextKeyOwnerID)
	if !exists {
		return 0, false
	}
	return ownerID.(uint), true
}
