package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates an access token and returns the viewer id.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (string, error)
}

// AuthMiddleware resolves the Bearer token to the authenticated viewer id and
// stores it on the request context. Every protected route reads the viewer id
// from here; nothing downstream is bound to a fixed account.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		viewerID, err := verifier.VerifyAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("viewer_id", viewerID)
		c.Next()
	}
}

// GetViewerID extracts the authenticated viewer id set by AuthMiddleware.
// Writes a 401 and returns false when it is missing.
func GetViewerID(c *gin.Context) (string, bool) {
	raw, exists := c.Get("viewer_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "viewer missing from context"})
		return "", false
	}
	viewerID, ok := raw.(string)
	if !ok || viewerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid viewer in context"})
		return "", false
	}
	return viewerID, true
}
