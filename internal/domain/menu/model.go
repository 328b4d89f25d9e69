// Package menu holds menu items and the back-office menu screen state.
package menu

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
)

// Repository is the menu item store.
type Repository = domain.CatalogRepository[*MenuItem]

// MenuItem is a dish or drink offered to guests.
type MenuItem struct {
	entity.BaseEntity

	Name        string      `db:"name" json:"name"`
	Category    string      `db:"category" json:"category"`
	Price       types.Money `db:"price" json:"price"`
	Description string      `db:"description" json:"description,omitempty"`
	Available   bool        `db:"available" json:"available"`
	// Ingredients are inventory item IDs.
	Ingredients []id.ID `db:"ingredients" json:"ingredients,omitempty"`
}

// NewMenuItem creates an available item with a fresh ID.
func NewMenuItem(name, category string, price types.Money) *MenuItem {
	return &MenuItem{BaseEntity: entity.NewBaseEntity(), Name: name, Category: category, Price: price, Available: true}
}

func (m *MenuItem) SearchTerms() []string { return []string{m.Name, m.Category, m.Description} }

func (m *MenuItem) Validate(ctx context.Context) error {
	if strings.TrimSpace(m.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if strings.TrimSpace(m.Category) == "" {
		return apperror.NewFieldValidation("category", "category is required")
	}
	if !m.Price.IsPositive() {
		return apperror.NewFieldValidation("price", "price must be greater than zero")
	}
	seen := make(map[id.ID]struct{}, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		if id.IsNil(ing) {
			return apperror.NewFieldValidation("ingredients", "ingredient id is required")
		}
		if _, dup := seen[ing]; dup {
			return apperror.NewFieldValidation("ingredients", "duplicate ingredient "+ing.String())
		}
		seen[ing] = struct{}{}
	}
	return nil
}
