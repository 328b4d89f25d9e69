// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// SystemUser is recorded as the acting user when no identity is present.
const SystemUser = "system"

// UserContext contains the acting user's identity.
// Tokens only identify the caller; nothing here is used for access decisions.
type UserContext struct {
	UserID string
	Name   string
	Email  string
	Roles  []string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// ActingUser returns the user ID to stamp on records, falling back to SystemUser.
func ActingUser(ctx context.Context) string {
	if uid := GetUserID(ctx); uid != "" {
		return uid
	}
	return SystemUser
}
