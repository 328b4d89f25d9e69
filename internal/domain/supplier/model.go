// Package supplier holds supplier profiles.
package supplier

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
)

// Repository is the supplier store.
type Repository = domain.CatalogRepository[*Supplier]

// Supplier is a vendor profile. Inventory items reference it weakly.
type Supplier struct {
	entity.BaseEntity

	Name          string   `db:"name" json:"name"`
	ContactPerson string   `db:"contact_person" json:"contactPerson,omitempty"`
	Email         string   `db:"email" json:"email,omitempty"`
	Phone         string   `db:"phone" json:"phone,omitempty"`
	Address       string   `db:"address" json:"address,omitempty"`
	Categories    []string `db:"categories" json:"categories,omitempty"`
	Rating        *int     `db:"rating" json:"rating,omitempty"`
	Notes         string   `db:"notes" json:"notes,omitempty"`

	// Derived from receipts, never written by clients.
	LastDelivery *time.Time  `db:"-" json:"lastDelivery,omitempty"`
	TotalSpend   types.Money `db:"-" json:"totalSpend"`
}

// New creates a supplier with a fresh ID.
func New(name string) *Supplier {
	return &Supplier{BaseEntity: entity.NewBaseEntity(), Name: name}
}

// SearchTerms implements domain.Searchable.
func (s *Supplier) SearchTerms() []string {
	return append([]string{s.Name, s.ContactPerson, s.Email}, s.Categories...)
}

// Contact returns the best address to notify: email, then phone.
func (s *Supplier) Contact() string {
	if s.Email != "" {
		return s.Email
	}
	return s.Phone
}

// Validate checks supplier invariants.
func (s *Supplier) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if s.Rating != nil && (*s.Rating < 1 || *s.Rating > 5) {
		return apperror.NewFieldValidation("rating", "rating must be between 1 and 5")
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return apperror.NewFieldValidation("email", "email is invalid")
		}
	}
	return nil
}
