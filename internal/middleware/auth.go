package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-team-api/internal/response"
)

// TokenParser validates a session token and returns the user it belongs to
type TokenParser interface {
	Parse(tokenString string) (uuid.UUID, error)
}

// Auth returns a middleware that authenticates the request from the session cookie,
// falling back to an "Authorization: Bearer" header
func Auth(parser TokenParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c, cookieName)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			return
		}

		userID, err := parser.Parse(tokenString)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			return
		}

		// Store user ID and JWT token in context for downstream use
		c.Set("user_id", userID)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
