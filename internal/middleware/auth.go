package middleware

import (
	"net/http"
	"strings"

	"messenger-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// TokenValidator is satisfied by auth.JWTManager.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// extractToken pulls the bearer credential from the Authorization header,
// falling back to the token query parameter. Some mobile HTTP stacks strip
// custom headers, so the two transports must be equivalent.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}

func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Missing token"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// CurrentUserID returns the authenticated identity set by AuthMiddleware.
func CurrentUserID(c *gin.Context) int64 {
	id, _ := c.Get("user_id")
	uid, _ := id.(int64)
	return uid
}
