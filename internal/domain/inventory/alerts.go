package inventory

// Alerts is the low-stock partition of an inventory snapshot.
type Alerts struct {
	LowStock   []*Item `json:"lowStockItems"`
	OutOfStock []*Item `json:"outOfStockItems"`
}

// Count returns the number of items needing attention.
func (a Alerts) Count() int {
	return len(a.LowStock) + len(a.OutOfStock)
}

// Partition splits items into low-stock and out-of-stock lists, keeping the
// input order. An empty branch matches every branch.
func Partition(items []*Item, branch string) Alerts {
	alerts := Alerts{
		LowStock:   []*Item{},
		OutOfStock: []*Item{},
	}
	for _, item := range items {
		if branch != "" && item.Branch != branch {
			continue
		}
		switch item.Status() {
		case StatusLow:
			alerts.LowStock = append(alerts.LowStock, item)
		case StatusOut:
			alerts.OutOfStock = append(alerts.OutOfStock, item)
		}
	}
	return alerts
}
