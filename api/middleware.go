package api

import (
	"net/http"
	"strings"

	"github.com/dieg0espx/spanish-horizons-api/internal/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireIdentity verifies the bearer token and stores the authenticated
// email for handlers. Token issuance lives in the auth provider; here we only
// consume "who is calling".
func RequireIdentity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authentication required"})
			return
		}

		email, err := auth.ParseIdentity(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "invalid token"})
			return
		}

		c.Set(identityKey, email)
		c.Next()
	}
}

func identityFrom(c *gin.Context) string {
	return c.GetString(identityKey)
}
