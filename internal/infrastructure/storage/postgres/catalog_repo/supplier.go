package catalog_repo

import (
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/storage/postgres"
)

const supplierTable = "suppliers"

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *BaseCatalogRepo[*supplier.Supplier] {
	return NewBaseCatalogRepo(txm, supplierTable,
		[]string{"name", "contact_person", "email", "array_to_string(categories, ' ')"},
		func() *supplier.Supplier { return &supplier.Supplier{} },
	)
}
