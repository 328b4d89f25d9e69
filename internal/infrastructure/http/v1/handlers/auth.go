package handlers

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
)

// AuthHandler exposes the caller's identity from a bearer token.
type AuthHandler struct {
	*BaseHandler
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler) *AuthHandler {
	return &AuthHandler{BaseHandler: base}
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("no identity on request"))
		return
	}

	h.OK(c, gin.H{
		"userId": user.UserID,
		"name":   user.Name,
		"email":  user.Email,
		"roles":  user.Roles,
	})
}
