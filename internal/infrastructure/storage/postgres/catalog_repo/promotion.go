package catalog_repo

import (
	"backoffice/internal/domain/menu"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/infrastructure/storage/postgres"
)

const (
	promotionTable = "promotions"
	menuItemTable  = "menu_items"
)

// NewPromotionRepo creates a promotion repository.
func NewPromotionRepo(txm *postgres.TxManager) *BaseCatalogRepo[*promotions.Promotion] {
	return NewBaseCatalogRepo(txm, promotionTable,
		[]string{"name", "description"},
		func() *promotions.Promotion { return &promotions.Promotion{} },
	)
}

// NewMenuRepo creates a menu item repository.
func NewMenuRepo(txm *postgres.TxManager) *BaseCatalogRepo[*menu.MenuItem] {
	return NewBaseCatalogRepo(txm, menuItemTable,
		[]string{"name", "category", "description"},
		func() *menu.MenuItem { return &menu.MenuItem{} },
	)
}
