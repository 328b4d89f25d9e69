package stock

import (
	"context"
	"sort"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
)

// Fold sums signed movement quantities: receipts minus issues.
func Fold(movements []*Movement) types.Quantity {
	var total types.Quantity
	for _, m := range movements {
		total = total.Add(m.Signed())
	}
	return total
}

// Turnover summarises an item's movements over [From, To).
// Opening + Receipts - Issues = Closing.
type Turnover struct {
	ItemID   id.ID          `json:"itemId"`
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Opening  types.Quantity `json:"opening"`
	Receipts types.Quantity `json:"receipts"`
	Issues   types.Quantity `json:"issues"`
	Closing  types.Quantity `json:"closing"`
}

// Drift is a disagreement between an item's stored quantity and its log.
type Drift struct {
	ItemID   id.ID          `json:"itemId"`
	Name     string         `json:"name"`
	Recorded types.Quantity `json:"recorded"`
	Derived  types.Quantity `json:"derived"`
	Delta    types.Quantity `json:"delta"`
}

// CategoryValue is stock value aggregated per category.
type CategoryValue struct {
	Category string      `json:"category"`
	Items    int         `json:"items"`
	Value    types.Money `json:"value"`
}

// Valuation is the cost of stock on hand.
type Valuation struct {
	Branch     string          `json:"branch,omitempty"`
	Categories []CategoryValue `json:"categories"`
	Total      types.Money     `json:"total"`
}

// SupplierMetrics are derived from receipts attributed to a supplier.
type SupplierMetrics struct {
	SupplierID   id.ID       `json:"supplierId"`
	Deliveries   int         `json:"deliveries"`
	LastDelivery *time.Time  `json:"lastDelivery,omitempty"`
	TotalSpend   types.Money `json:"totalSpend"`
}

// Ledger computes read-only views over items and the movement log.
type Ledger struct {
	items     inventory.Repository
	movements Repository
	txManager tx.Manager
}

// NewLedger creates a ledger.
func NewLedger(items inventory.Repository, movements Repository, txManager tx.Manager) *Ledger {
	return &Ledger{items: items, movements: movements, txManager: txManager}
}

// Movements lists movements matching the filter, oldest first.
func (l *Ledger) Movements(ctx context.Context, filter MovementFilter) ([]*Movement, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperror.NewValidation("from must not be after to")
	}
	return l.movements.List(ctx, filter)
}

// Turnover computes opening, receipts, issues and closing for an item.
func (l *Ledger) Turnover(ctx context.Context, itemID id.ID, from, to time.Time) (Turnover, error) {
	if from.After(to) {
		return Turnover{}, apperror.NewValidation("from must not be after to")
	}

	t := Turnover{ItemID: itemID, From: from, To: to}
	err := l.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		if _, err := l.items.GetByID(ctx, itemID); err != nil {
			return err
		}
		history, err := l.movements.List(ctx, MovementFilter{ItemID: &itemID, To: &to})
		if err != nil {
			return err
		}
		for _, m := range history {
			switch {
			case m.RecordedAt.Before(from):
				t.Opening = t.Opening.Add(m.Signed())
			case m.Direction == DirectionIn:
				t.Receipts = t.Receipts.Add(m.Quantity)
			default:
				t.Issues = t.Issues.Add(m.Quantity)
			}
		}
		return nil
	})
	if err != nil {
		return Turnover{}, err
	}
	t.Closing = t.Opening.Add(t.Receipts).Sub(t.Issues)
	return t, nil
}

// Reconcile folds each item's movements and reports items whose stored
// quantity disagrees. An empty result means the ledger is consistent.
func (l *Ledger) Reconcile(ctx context.Context) ([]Drift, error) {
	drifts := []Drift{}
	err := l.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		items, err := l.items.All(ctx, "")
		if err != nil {
			return err
		}
		all, err := l.movements.List(ctx, MovementFilter{})
		if err != nil {
			return err
		}

		byItem := make(map[id.ID]types.Quantity, len(items))
		for _, m := range all {
			byItem[m.ItemID] = byItem[m.ItemID].Add(m.Signed())
		}
		for _, item := range items {
			derived := byItem[item.ID]
			if derived != item.Quantity {
				drifts = append(drifts, Drift{
					ItemID:   item.ID,
					Name:     item.Name,
					Recorded: item.Quantity,
					Derived:  derived,
					Delta:    item.Quantity.Sub(derived),
				})
			}
		}
		return nil
	})
	return drifts, err
}

// Valuation totals quantity × cost per unit by category.
func (l *Ledger) Valuation(ctx context.Context, branch string) (Valuation, error) {
	items, err := l.items.All(ctx, branch)
	if err != nil {
		return Valuation{}, err
	}
	return Value(items, branch), nil
}

// Value computes a valuation over an item snapshot. Categories are sorted by name.
func Value(items []*inventory.Item, branch string) Valuation {
	byCategory := make(map[string]*CategoryValue)
	total := types.Zero()
	for _, item := range items {
		if branch != "" && item.Branch != branch {
			continue
		}
		cv, ok := byCategory[item.Category]
		if !ok {
			cv = &CategoryValue{Category: item.Category, Value: types.Zero()}
			byCategory[item.Category] = cv
		}
		v := item.StockValue()
		cv.Items++
		cv.Value = cv.Value.Add(v)
		total = total.Add(v)
	}

	out := Valuation{Branch: branch, Categories: make([]CategoryValue, 0, len(byCategory)), Total: total}
	for _, cv := range byCategory {
		out.Categories = append(out.Categories, *cv)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category < out.Categories[j].Category
	})
	return out
}

// SupplierMetrics derives delivery count, last delivery and total spend.
func (l *Ledger) SupplierMetrics(ctx context.Context, supplierID id.ID) (SupplierMetrics, error) {
	receipts, err := l.movements.List(ctx, MovementFilter{SupplierID: &supplierID, Direction: DirectionIn})
	if err != nil {
		return SupplierMetrics{}, err
	}

	metrics := SupplierMetrics{SupplierID: supplierID, TotalSpend: types.Zero()}
	for _, m := range receipts {
		metrics.Deliveries++
		metrics.TotalSpend = metrics.TotalSpend.Add(m.Value())
		if metrics.LastDelivery == nil || m.RecordedAt.After(*metrics.LastDelivery) {
			at := m.RecordedAt
			metrics.LastDelivery = &at
		}
	}
	return metrics, nil
}
