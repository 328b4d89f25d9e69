package dto

import "backoffice/internal/domain/supplier"

type CreateSupplierRequest struct {
	Name          string   `json:"name" binding:"required"`
	ContactPerson string   `json:"contactPerson"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	Categories    []string `json:"categories"`
	Rating        *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes         string   `json:"notes"`
}

func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Name)
	s.ContactPerson = r.ContactPerson
	s.Email = r.Email
	s.Phone = r.Phone
	s.Address = r.Address
	s.Categories = r.Categories
	s.Rating = r.Rating
	s.Notes = r.Notes
	return s
}

type UpdateSupplierRequest struct {
	Name          *string  `json:"name,omitempty"`
	ContactPerson *string  `json:"contactPerson,omitempty"`
	Email         *string  `json:"email,omitempty" binding:"omitempty,email|len=0"`
	Phone         *string  `json:"phone,omitempty"`
	Address       *string  `json:"address,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Rating        *int     `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Notes         *string  `json:"notes,omitempty"`
	Version       int      `json:"version" binding:"required,min=1"`
}

func (r UpdateSupplierRequest) ExpectedVersion() int { return r.Version }

func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.ContactPerson != nil {
		s.ContactPerson = *r.ContactPerson
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Address != nil {
		s.Address = *r.Address
	}
	if r.Categories != nil {
		s.Categories = r.Categories
	}
	if r.Rating != nil {
		s.Rating = r.Rating
	}
	if r.Notes != nil {
		s.Notes = *r.Notes
	}
}
