// Package promotions manages discount campaigns targeted at customer segments.
package promotions

import (
	"context"
	"strings"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/sales"
	"backoffice/pkg/aggregate"
)

// Repository is the promotion store.
type Repository = domain.CatalogRepository[*Promotion]

// DiscountType selects how DiscountValue applies.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// MsgNoSegments is the validation message for a promotion that targets nobody.
const MsgNoSegments = "select at least one segment"

// Promotion is a discount campaign.
type Promotion struct {
	entity.BaseEntity

	Name               string          `db:"name" json:"name"`
	Description        string          `db:"description" json:"description,omitempty"`
	DiscountType       DiscountType    `db:"discount_type" json:"discountType"`
	DiscountValue      types.Money     `db:"discount_value" json:"discountValue"`
	ApplicableSegments []sales.Segment `db:"applicable_segments" json:"applicableSegments"`
	StartDate          string          `db:"start_date" json:"startDate"`
	EndDate            string          `db:"end_date" json:"endDate"`
	Active             bool            `db:"active" json:"active"`
}

// New creates a promotion with a fresh ID.
func New(name string) *Promotion {
	return &Promotion{BaseEntity: entity.NewBaseEntity(), Name: name, Active: true}
}

func (p *Promotion) SearchTerms() []string { return []string{p.Name, p.Description} }

// AppliesTo reports whether customers in seg are eligible.
func (p *Promotion) AppliesTo(seg sales.Segment) bool {
	for _, s := range p.ApplicableSegments {
		if s == seg {
			return true
		}
	}
	return false
}

// RunningOn reports whether the promotion is active and date lies in its window.
func (p *Promotion) RunningOn(date string) bool {
	return p.Active && date >= p.StartDate && date <= p.EndDate
}

// Apply returns the price after discount, never below zero.
func (p *Promotion) Apply(price types.Money) types.Money {
	var out types.Money
	switch p.DiscountType {
	case DiscountPercent:
		out = price.Sub(price.Mul(p.DiscountValue).Div(types.NewMoney(100))).Round(2)
	default:
		out = price.Sub(p.DiscountValue)
	}
	if out.IsNegative() {
		return types.Zero()
	}
	return out
}

func (p *Promotion) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if len(p.ApplicableSegments) == 0 {
		return apperror.NewFieldValidation("applicableSegments", MsgNoSegments)
	}
	for _, s := range p.ApplicableSegments {
		if !s.Valid() {
			return apperror.NewFieldValidation("applicableSegments", "unknown segment "+string(s))
		}
	}
	switch p.DiscountType {
	case DiscountPercent:
		if p.DiscountValue.GreaterThan(types.NewMoney(100)) {
			return apperror.NewFieldValidation("discountValue", "percent discount cannot exceed 100")
		}
	case DiscountFixed:
	default:
		return apperror.NewFieldValidation("discountType", "discount type must be percent or fixed")
	}
	if !p.DiscountValue.IsPositive() {
		return apperror.NewFieldValidation("discountValue", "discount must be greater than zero")
	}
	start, err := time.Parse(aggregate.DateLayout, p.StartDate)
	if err != nil {
		return apperror.NewFieldValidation("startDate", "startDate must be a YYYY-MM-DD date")
	}
	end, err := time.Parse(aggregate.DateLayout, p.EndDate)
	if err != nil {
		return apperror.NewFieldValidation("endDate", "endDate must be a YYYY-MM-DD date")
	}
	if end.Before(start) {
		return apperror.NewFieldValidation("endDate", "endDate must not be before startDate")
	}
	return nil
}
