package dto

import (
	"backoffice/internal/core/types"
	"backoffice/internal/domain/menu"
)

type CreateMenuItemRequest struct {
	Name        string      `json:"name" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Price       types.Money `json:"price"`
	Description string      `json:"description"`
	Available   *bool       `json:"available"`
	Ingredients []string    `json:"ingredients" binding:"omitempty,dive,uuid"`
}

func (r *CreateMenuItemRequest) ToEntity() *menu.MenuItem {
	m := menu.NewMenuItem(r.Name, r.Category, r.Price)
	m.Description = r.Description
	if r.Available != nil {
		m.Available = *r.Available
	}
	m.Ingredients = parseIDs(r.Ingredients)
	return m
}

type UpdateMenuItemRequest struct {
	Name        *string      `json:"name,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Price       *types.Money `json:"price,omitempty"`
	Description *string      `json:"description,omitempty"`
	Available   *bool        `json:"available,omitempty"`
	Ingredients []string     `json:"ingredients,omitempty" binding:"omitempty,dive,uuid"`
	Version     int          `json:"version" binding:"required,min=1"`
}

func (r UpdateMenuItemRequest) ExpectedVersion() int { return r.Version }

func (r *UpdateMenuItemRequest) ApplyTo(m *menu.MenuItem) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Category != nil {
		m.Category = *r.Category
	}
	if r.Price != nil {
		m.Price = *r.Price
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Available != nil {
		m.Available = *r.Available
	}
	if r.Ingredients != nil {
		m.Ingredients = parseIDs(r.Ingredients)
	}
}

// MenuViewQuery selects the item a details or form view shows.
type MenuViewQuery struct {
	ItemID string `form:"itemId" binding:"omitempty,uuid"`
}
