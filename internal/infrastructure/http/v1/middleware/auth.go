package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appctx "backoffice/internal/core/context"
)

// JWTValidator validates bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*appctx.UserContext, error)
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present. Requests without one run as the system user; nothing is rejected.
func OptionalAuth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok || validator == nil {
			c.Next()
			return
		}

		user, err := validator.ValidateToken(token)
		if err == nil && user != nil {
			setUser(c, user)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setUser(c *gin.Context, user *appctx.UserContext) {
	c.Request = c.Request.WithContext(appctx.WithUser(c.Request.Context(), user))
	c.Set(KeyUserID, user.UserID)
}
