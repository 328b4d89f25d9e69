package inventory

import "backoffice/internal/core/types"

// StockStatus is the reorder classification of an item.
type StockStatus string

const (
	StatusGood StockStatus = "good"
	StatusLow  StockStatus = "low"
	StatusOut  StockStatus = "out"
)

// Valid reports whether s is a known status.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusGood, StatusLow, StatusOut:
		return true
	}
	return false
}

// Classify maps a quantity and reorder level to a stock status:
// out when nothing is left, low at or below the reorder level, good otherwise.
// There is no hysteresis: the status is recomputed from the current values.
func Classify(quantity, reorderLevel types.Quantity) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOut
	case quantity <= reorderLevel:
		return StatusLow
	default:
		return StatusGood
	}
}
