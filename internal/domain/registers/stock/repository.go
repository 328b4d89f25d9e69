package stock

import (
	"context"
)

// Repository stores the append-only movement log.
type Repository interface {
	// Append inserts a movement. Movements are never updated or deleted.
	Append(ctx context.Context, m *Movement) error

	// List returns movements matching the filter, oldest first.
	List(ctx context.Context, filter MovementFilter) ([]*Movement, error)
}
