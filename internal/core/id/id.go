// Package id wraps UUIDv7 so identifiers of items, movements and documents
// sort by creation time.
package id

import (
	"github.com/google/uuid"
)

// ID identifies every stored record.
type ID = uuid.UUID

// New returns a fresh UUIDv7, falling back to v4 if the clock source fails.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse reads a canonical UUID string.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// ParsePtr reads an optional reference such as a supplier link.
// An empty string means "no reference" and yields nil without error.
func ParsePtr(s string) (*ID, error) {
	if s == "" {
		return nil, nil
	}
	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Nil is the zero ID.
func Nil() ID { return uuid.Nil }

// IsNil reports whether v was never assigned.
func IsNil(v ID) bool { return v == uuid.Nil }
