package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Leonidos67/t-sync-sub000/internal/pkg"
)

const ContextUserIDKey = "user_id"

// Auth requires a verified actor. Tokens are minted by the external
// identity service; this middleware only verifies them.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorFromHeader(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"category": "unauthorized", "message": "missing or invalid token"},
			})
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present and lets
// anonymous callers through. Feed reads use it for personalization.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := actorFromHeader(c, secret); ok {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// ActorID returns the verified actor id, or (0, false) for anonymous
// callers.
func ActorID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func actorFromHeader(c *gin.Context, secret []byte) (uint64, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	claims, err := pkg.ParseAccess(parts[1], secret)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}
