// Package stock records stock movements and derives ledger views from them.
package stock

import (
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// Direction of a stock movement.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Sign returns q as it affects the balance: negated for out.
func (d Direction) Sign(q types.Quantity) types.Quantity {
	if d == DirectionOut {
		return q.Neg()
	}
	return q
}

// Movement is an immutable stock log entry. Quantity is always positive;
// Direction carries the sign.
type Movement struct {
	ID           id.ID          `db:"id" json:"id"`
	ItemID       id.ID          `db:"item_id" json:"itemId"`
	Direction    Direction      `db:"direction" json:"direction"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	Reason       string         `db:"reason" json:"reason,omitempty"`
	UnitCost     *types.Money   `db:"unit_cost" json:"unitCost,omitempty"`
	SupplierID   *id.ID         `db:"supplier_id" json:"supplierId,omitempty"`
	BalanceAfter types.Quantity `db:"balance_after" json:"balanceAfter"`
	Branch       string         `db:"branch" json:"branch"`
	UserID       string         `db:"user_id" json:"userId"`
	RecordedAt   time.Time      `db:"recorded_at" json:"recordedAt"`
}

// Signed returns +Quantity for receipts and -Quantity for issues.
func (m *Movement) Signed() types.Quantity {
	return m.Direction.Sign(m.Quantity)
}

// Value is quantity × unit cost, zero when no cost was recorded.
func (m *Movement) Value() types.Money {
	if m.UnitCost == nil {
		return types.Zero()
	}
	return types.Cost(m.Quantity, *m.UnitCost)
}

// MovementFilter narrows movement queries. From is inclusive, To exclusive.
type MovementFilter struct {
	ItemID     *id.ID
	SupplierID *id.ID
	Direction  Direction
	Branch     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Matches reports whether m satisfies f (ignoring pagination).
func (f MovementFilter) Matches(m *Movement) bool {
	if f.ItemID != nil && m.ItemID != *f.ItemID {
		return false
	}
	if f.SupplierID != nil && (m.SupplierID == nil || *m.SupplierID != *f.SupplierID) {
		return false
	}
	if f.Direction != "" && m.Direction != f.Direction {
		return false
	}
	if f.Branch != "" && m.Branch != f.Branch {
		return false
	}
	if f.From != nil && m.RecordedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !m.RecordedAt.Before(*f.To) {
		return false
	}
	return true
}
