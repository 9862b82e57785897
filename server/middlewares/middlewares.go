package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plateful/plateful/auth"
)

const (
	// ContextUserIDKey is the gin context key under which RequireAuth stores
	// the verified user id.
	ContextUserIDKey = "userId"
	// ContextEmailKey holds the verified user's email.
	ContextEmailKey = "userEmail"

	bearerPrefix = "Bearer "
)

// RequireAuth gates a route group behind bearer-token authentication. It
// reads the Authorization header, requires the exact "Bearer " prefix
// followed by a non-empty token, verifies signature and expiry, and attaches
// the decoded claims to the request context. Any failure aborts the pipeline
// with a 401 so no downstream handler runs.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if !strings.HasPrefix(header, bearerPrefix) || len(header) == len(bearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(header[len(bearerPrefix):])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)

		c.Next()
	}
}

// UserID returns the authenticated user id attached by RequireAuth, or the
// empty string on an unauthenticated request.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
