package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dataquality/internal/domain"
	"dataquality/internal/service"
)

const (
	ContextKeyClientID   = "client_id"
	ContextKeyClientName = "client_name"
	ContextKeyClaims     = "claims"
)

// AuthMiddleware returns Gin middleware that validates bearer tokens and
// injects the calling API client into the context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyClientID, claims.ClientID)
		c.Set(ContextKeyClientName, claims.ClientName)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClientID extracts the API client ID from the Gin context.
func GetClientID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyClientID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}

// GetClientName extracts the API client name from the Gin context.
// Returns an empty string outside authenticated routes.
func GetClientName(c *gin.Context) string {
	return c.GetString(ContextKeyClientName)
}
