package dto

import (
	"backoffice/internal/core/entity"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/sales"
)

// --- Customers ---

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Segment  string `json:"segment" binding:"omitempty,oneof=new regular vip inactive"`
	JoinedOn string `json:"joinedOn" binding:"required,isodate"`
}

func (r *CreateCustomerRequest) ToEntity() *sales.Customer {
	segment := sales.Segment(r.Segment)
	if segment == "" {
		segment = sales.SegmentNew
	}
	return &sales.Customer{
		BaseEntity: entity.NewBaseEntity(),
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Segment:    segment,
		JoinedOn:   r.JoinedOn,
	}
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email|len=0"`
	Phone    *string `json:"phone,omitempty"`
	Segment  *string `json:"segment,omitempty" binding:"omitempty,oneof=new regular vip inactive"`
	JoinedOn *string `json:"joinedOn,omitempty" binding:"omitempty,isodate"`
	Version  int     `json:"version" binding:"required,min=1"`
}

func (r UpdateCustomerRequest) ExpectedVersion() int { return r.Version }

func (r *UpdateCustomerRequest) ApplyTo(c *sales.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Segment != nil {
		c.Segment = sales.Segment(*r.Segment)
	}
	if r.JoinedOn != nil {
		c.JoinedOn = *r.JoinedOn
	}
}

// --- Staff ---

type CreateStaffRequest struct {
	Name    string `json:"name" binding:"required"`
	Role    string `json:"role" binding:"required"`
	Branch  string `json:"branch"`
	HiredOn string `json:"hiredOn" binding:"required,isodate"`
}

func (r *CreateStaffRequest) ToEntity() *sales.StaffMember {
	return &sales.StaffMember{
		BaseEntity: entity.NewBaseEntity(),
		Name:       r.Name,
		Role:       r.Role,
		Branch:     r.Branch,
		HiredOn:    r.HiredOn,
	}
}

type UpdateStaffRequest struct {
	Name    *string `json:"name,omitempty"`
	Role    *string `json:"role,omitempty"`
	Branch  *string `json:"branch,omitempty"`
	HiredOn *string `json:"hiredOn,omitempty" binding:"omitempty,isodate"`
	Version int     `json:"version" binding:"required,min=1"`
}

func (r UpdateStaffRequest) ExpectedVersion() int { return r.Version }

func (r *UpdateStaffRequest) ApplyTo(s *sales.StaffMember) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Role != nil {
		s.Role = *r.Role
	}
	if r.Branch != nil {
		s.Branch = *r.Branch
	}
	if r.HiredOn != nil {
		s.HiredOn = *r.HiredOn
	}
}

// --- Orders ---

type OrderLineRequest struct {
	MenuItemID string      `json:"menuItemId" binding:"omitempty,uuid"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Quantity   int         `json:"quantity"`
	UnitPrice  types.Money `json:"unitPrice"`
}

// CreateOrderRequest records a settled order. Line quantities and prices are
// checked by the domain so the error names the offending line.
type CreateOrderRequest struct {
	Date       string             `json:"date" binding:"required,isodate"`
	Branch     string             `json:"branch"`
	CustomerID string             `json:"customerId" binding:"omitempty,uuid"`
	StaffID    string             `json:"staffId" binding:"omitempty,uuid"`
	Lines      []OrderLineRequest `json:"lines" binding:"dive"`
}

func (r *CreateOrderRequest) ToEntity() *sales.Order {
	o := &sales.Order{
		BaseEntity: entity.NewBaseEntity(),
		Date:       r.Date,
		Branch:     r.Branch,
		CustomerID: parseIDPtr(r.CustomerID),
		StaffID:    parseIDPtr(r.StaffID),
		Lines:      make([]sales.OrderLine, len(r.Lines)),
	}
	for i, l := range r.Lines {
		line := sales.OrderLine{Name: l.Name, Category: l.Category, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		if p := parseIDPtr(l.MenuItemID); p != nil {
			line.MenuItemID = *p
		}
		o.Lines[i] = line
	}
	return o
}

// --- Expenses ---

type CreateExpenseRequest struct {
	Date        string      `json:"date" binding:"required,isodate"`
	Category    string      `json:"category" binding:"required"`
	Amount      types.Money `json:"amount"`
	Description string      `json:"description"`
	Branch      string      `json:"branch"`
}

func (r *CreateExpenseRequest) ToEntity() *sales.Expense {
	return &sales.Expense{
		BaseEntity:  entity.NewBaseEntity(),
		Date:        r.Date,
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
		Branch:      r.Branch,
	}
}

// RangeQuery selects records by inclusive date range and branch.
type RangeQuery struct {
	From   string `form:"from" binding:"omitempty,isodate"`
	To     string `form:"to" binding:"omitempty,isodate"`
	Branch string `form:"branch"`
}
