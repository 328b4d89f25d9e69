package dto

import (
	"backoffice/internal/core/types"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/sales"
)

// CreatePromotionRequest leaves segment and discount rules to the domain so
// clients see its messages ("select at least one segment").
type CreatePromotionRequest struct {
	Name               string      `json:"name" binding:"required"`
	Description        string      `json:"description"`
	DiscountType       string      `json:"discountType"`
	DiscountValue      types.Money `json:"discountValue"`
	ApplicableSegments []string    `json:"applicableSegments"`
	StartDate          string      `json:"startDate" binding:"required,isodate"`
	EndDate            string      `json:"endDate" binding:"required,isodate"`
	Active             *bool       `json:"active"`
}

func (r *CreatePromotionRequest) ToEntity() *promotions.Promotion {
	p := promotions.New(r.Name)
	p.Description = r.Description
	p.DiscountType = promotions.DiscountType(r.DiscountType)
	p.DiscountValue = r.DiscountValue
	p.ApplicableSegments = toSegments(r.ApplicableSegments)
	p.StartDate = r.StartDate
	p.EndDate = r.EndDate
	if r.Active != nil {
		p.Active = *r.Active
	}
	return p
}

type UpdatePromotionRequest struct {
	Name               *string      `json:"name,omitempty"`
	Description        *string      `json:"description,omitempty"`
	DiscountType       *string      `json:"discountType,omitempty"`
	DiscountValue      *types.Money `json:"discountValue,omitempty"`
	ApplicableSegments []string     `json:"applicableSegments,omitempty"`
	StartDate          *string      `json:"startDate,omitempty" binding:"omitempty,isodate"`
	EndDate            *string      `json:"endDate,omitempty" binding:"omitempty,isodate"`
	Active             *bool        `json:"active,omitempty"`
	Version            int          `json:"version" binding:"required,min=1"`
}

func (r UpdatePromotionRequest) ExpectedVersion() int { return r.Version }

func (r *UpdatePromotionRequest) ApplyTo(p *promotions.Promotion) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.DiscountType != nil {
		p.DiscountType = promotions.DiscountType(*r.DiscountType)
	}
	if r.DiscountValue != nil {
		p.DiscountValue = *r.DiscountValue
	}
	if r.ApplicableSegments != nil {
		p.ApplicableSegments = toSegments(r.ApplicableSegments)
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = *r.EndDate
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
}

// ActivePromotionsQuery selects promotions running on a date.
type ActivePromotionsQuery struct {
	Date    string `form:"date" binding:"omitempty,isodate"`
	Segment string `form:"segment" binding:"omitempty,oneof=new regular vip inactive"`
}

func toSegments(ss []string) []sales.Segment {
	out := make([]sales.Segment, len(ss))
	for i, s := range ss {
		out[i] = sales.Segment(s)
	}
	return out
}
