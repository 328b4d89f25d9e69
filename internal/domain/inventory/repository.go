package inventory

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain"
)

// Repository defines data access for inventory items.
type Repository interface {
	domain.CatalogRepository[*Item]

	// GetForUpdate loads the item and locks it until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, itemID id.ID) (*Item, error)

	// All returns every item, optionally restricted to one branch, in insertion order.
	All(ctx context.Context, branch string) ([]*Item, error)
}
