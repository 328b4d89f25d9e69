// Package sales holds the records report screens aggregate over: customers,
// staff, orders and expenses.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/pkg/aggregate"
)

// Segment is a customer marketing segment.
type Segment string

const (
	SegmentNew      Segment = "new"
	SegmentRegular  Segment = "regular"
	SegmentVIP      Segment = "vip"
	SegmentInactive Segment = "inactive"
)

// Segments lists every known segment.
func Segments() []Segment {
	return []Segment{SegmentNew, SegmentRegular, SegmentVIP, SegmentInactive}
}

// Valid reports whether s is a known segment.
func (s Segment) Valid() bool {
	switch s {
	case SegmentNew, SegmentRegular, SegmentVIP, SegmentInactive:
		return true
	}
	return false
}

func validDate(field, value string) error {
	if _, err := time.Parse(aggregate.DateLayout, value); err != nil {
		return apperror.NewFieldValidation(field, fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return nil
}

// Customer is a guest profile.
type Customer struct {
	entity.BaseEntity

	Name     string  `db:"name" json:"name"`
	Email    string  `db:"email" json:"email,omitempty"`
	Phone    string  `db:"phone" json:"phone,omitempty"`
	Segment  Segment `db:"segment" json:"segment"`
	JoinedOn string  `db:"joined_on" json:"joinedOn"`
}

func (c *Customer) SearchTerms() []string { return []string{c.Name, c.Email, c.Phone} }

func (c *Customer) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if !c.Segment.Valid() {
		return apperror.NewFieldValidation("segment", "unknown segment")
	}
	return validDate("joinedOn", c.JoinedOn)
}

// StaffMember is an employee who can serve orders.
type StaffMember struct {
	entity.BaseEntity

	Name    string `db:"name" json:"name"`
	Role    string `db:"role" json:"role"`
	Branch  string `db:"branch" json:"branch"`
	HiredOn string `db:"hired_on" json:"hiredOn"`
}

func (s *StaffMember) SearchTerms() []string { return []string{s.Name, s.Role} }

func (s *StaffMember) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if strings.TrimSpace(s.Role) == "" {
		return apperror.NewFieldValidation("role", "role is required")
	}
	return validDate("hiredOn", s.HiredOn)
}

// OrderLine is one menu item on an order.
type OrderLine struct {
	MenuItemID id.ID       `json:"menuItemId"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Quantity   int         `json:"quantity"`
	UnitPrice  types.Money `json:"unitPrice"`
}

// Amount is quantity × unit price.
func (l OrderLine) Amount() types.Money {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a settled guest check.
type Order struct {
	entity.BaseEntity

	Date       string      `db:"order_date" json:"date"`
	Branch     string      `db:"branch" json:"branch"`
	CustomerID *id.ID      `db:"customer_id" json:"customerId,omitempty"`
	StaffID    *id.ID      `db:"staff_id" json:"staffId,omitempty"`
	Lines      []OrderLine `db:"lines" json:"lines"`
	Total      types.Money `db:"total" json:"total"`
}

// Recalculate derives Total from the lines.
func (o *Order) Recalculate() {
	total := types.Zero()
	for _, l := range o.Lines {
		total = total.Add(l.Amount())
	}
	o.Total = total
}

func (o *Order) Validate(ctx context.Context) error {
	if err := validDate("date", o.Date); err != nil {
		return err
	}
	if len(o.Lines) == 0 {
		return apperror.NewFieldValidation("lines", "order must have at least one line")
	}
	for i, l := range o.Lines {
		if strings.TrimSpace(l.Name) == "" {
			return apperror.NewFieldValidation(fmt.Sprintf("lines[%d].name", i), "line name is required")
		}
		if l.Quantity <= 0 {
			return apperror.NewFieldValidation(fmt.Sprintf("lines[%d].quantity", i), "quantity must be greater than zero")
		}
		if !l.UnitPrice.IsPositive() {
			return apperror.NewFieldValidation(fmt.Sprintf("lines[%d].unitPrice", i), "price must be greater than zero")
		}
	}
	return nil
}

// Expense is an operating cost.
type Expense struct {
	entity.BaseEntity

	Date        string      `db:"expense_date" json:"date"`
	Category    string      `db:"category" json:"category"`
	Amount      types.Money `db:"amount" json:"amount"`
	Description string      `db:"description" json:"description,omitempty"`
	Branch      string      `db:"branch" json:"branch"`
}

func (e *Expense) SearchTerms() []string { return []string{e.Category, e.Description} }

func (e *Expense) Validate(ctx context.Context) error {
	if err := validDate("date", e.Date); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return apperror.NewFieldValidation("category", "category is required")
	}
	if !e.Amount.IsPositive() {
		return apperror.NewFieldValidation("amount", "amount must be greater than zero")
	}
	return nil
}
