package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/core/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		reorder  string
		expected StockStatus
	}{
		{"empty", "0", "10", StatusOut},
		{"below reorder", "5", "10", StatusLow},
		{"at reorder", "10", "10", StatusLow},
		{"just above", "10.0001", "10", StatusGood},
		{"zero reorder with stock", "1", "0", StatusGood},
		{"zero reorder empty", "0", "0", StatusOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(types.MustQuantity(tt.qty), types.MustQuantity(tt.reorder)))
		})
	}
}

func TestPartition(t *testing.T) {
	mk := func(name, branch string, qty, reorder int64) *Item {
		it := NewItem(name, "produce", "kg", branch)
		it.Quantity = types.NewQuantity(qty)
		it.ReorderLevel = types.NewQuantity(reorder)
		return it
	}
	items := []*Item{
		mk("Tomatoes", "main", 5, 10),
		mk("Basil", "main", 0, 2),
		mk("Rice", "main", 40, 5),
		mk("Onions", "airport", 0, 5),
	}

	all := Partition(items, "")
	assert.Len(t, all.LowStock, 1)
	assert.Len(t, all.OutOfStock, 2)
	assert.Equal(t, 3, all.Count())

	main := Partition(items, "main")
	assert.Equal(t, "Tomatoes", main.LowStock[0].Name)
	assert.Equal(t, "Basil", main.OutOfStock[0].Name)
	assert.Len(t, main.OutOfStock, 1)
}
