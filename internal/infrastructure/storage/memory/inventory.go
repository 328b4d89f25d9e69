package memory

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/inventory"
)

// ItemRepo stores inventory items.
type ItemRepo struct {
	*Table[*inventory.Item]
}

// NewItemRepo creates the inventory item table.
func NewItemRepo(store *Store) *ItemRepo {
	return &ItemRepo{Table: NewTable[*inventory.Item](store, "inventory_item")}
}

// GetForUpdate returns the item. The writer lock held by the surrounding
// transaction already excludes concurrent writers.
func (r *ItemRepo) GetForUpdate(ctx context.Context, itemID id.ID) (*inventory.Item, error) {
	return r.GetByID(ctx, itemID)
}

// All returns every item, optionally for one branch, in insertion order.
func (r *ItemRepo) All(ctx context.Context, branch string) ([]*inventory.Item, error) {
	items := r.Snapshot()
	if branch == "" {
		return items, nil
	}
	out := make([]*inventory.Item, 0, len(items))
	for _, it := range items {
		if it.Branch == branch {
			out = append(out, it)
		}
	}
	return out, nil
}
