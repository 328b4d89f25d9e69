// Package inventory holds inventory items, the reorder classifier and the
// low-stock partition.
package inventory

import (
	"context"
	"strings"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// Item is a stock-keeping unit held by a branch.
// Quantity only changes together with a stock movement (see registers/stock).
type Item struct {
	entity.BaseEntity

	Name         string         `db:"name" json:"name"`
	Category     string         `db:"category" json:"category"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	Unit         string         `db:"unit" json:"unit"`
	ReorderLevel types.Quantity `db:"reorder_level" json:"reorderLevel"`
	CostPerUnit  types.Money    `db:"cost_per_unit" json:"costPerUnit"`
	Branch       string         `db:"branch" json:"branch"`

	// SupplierID is a weak reference; the supplier may no longer exist.
	SupplierID *id.ID     `db:"supplier_id" json:"supplierId,omitempty"`
	ExpiryDate *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	// LinkedMenuItems is stored for future auto-deduction on sale.
	LinkedMenuItems []id.ID `db:"linked_menu_items" json:"linkedMenuItems,omitempty"`
}

// NewItem creates an item with a fresh ID.
func NewItem(name, category, unit, branch string) *Item {
	return &Item{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		Category:   category,
		Unit:       unit,
		Branch:     branch,
	}
}

// Status classifies the item's current quantity.
func (i *Item) Status() StockStatus {
	return Classify(i.Quantity, i.ReorderLevel)
}

// StockValue is quantity × cost per unit.
func (i *Item) StockValue() types.Money {
	return types.Cost(i.Quantity, i.CostPerUnit)
}

// IsExpired reports whether the expiry date has passed at now.
func (i *Item) IsExpired(now time.Time) bool {
	return i.ExpiryDate != nil && i.ExpiryDate.Before(now)
}

// SearchTerms implements domain.Searchable.
func (i *Item) SearchTerms() []string {
	return []string{i.Name, i.Category}
}

// Validate checks item invariants.
func (i *Item) Validate(ctx context.Context) error {
	if strings.TrimSpace(i.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if strings.TrimSpace(i.Unit) == "" {
		return apperror.NewFieldValidation("unit", "unit is required")
	}
	if i.Quantity.IsNegative() {
		return apperror.NewFieldValidation("quantity", "quantity cannot be negative")
	}
	if i.ReorderLevel.IsNegative() {
		return apperror.NewFieldValidation("reorderLevel", "reorder level cannot be negative")
	}
	if i.CostPerUnit.IsNegative() {
		return apperror.NewFieldValidation("costPerUnit", "cost per unit cannot be negative")
	}
	return nil
}
