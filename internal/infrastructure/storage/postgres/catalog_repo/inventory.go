package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/domain/inventory"
	"backoffice/internal/infrastructure/storage/postgres"
)

const inventoryTable = "inventory_items"

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	*BaseCatalogRepo[*inventory.Item]
}

var _ inventory.Repository = (*InventoryRepo)(nil)

// NewInventoryRepo creates a new inventory item repository.
func NewInventoryRepo(txm *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm, inventoryTable,
			[]string{"name", "category"},
			func() *inventory.Item { return &inventory.Item{} },
		),
	}
}

// All returns every item, optionally for one branch, in insertion order.
func (r *InventoryRepo) All(ctx context.Context, branch string) ([]*inventory.Item, error) {
	q := r.baseSelect().OrderBy(defaultOrder)
	if branch != "" {
		q = q.Where(squirrel.Eq{"branch": branch})
	}
	return r.Select(ctx, q)
}
