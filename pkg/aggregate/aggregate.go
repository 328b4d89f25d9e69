package aggregate

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// FilterByDate keeps items whose date falls within r (inclusive).
func FilterByDate[T any](items []T, r DateRange, dateOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if r.Contains(dateOf(it)) {
			out = append(out, it)
		}
	}
	return out
}

// Filter keeps items satisfying keep.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Group is one bucket of a group-by reduction.
type Group[K cmp.Ordered] struct {
	Key   K               `json:"key"`
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
	Avg   decimal.Decimal `json:"avg"`
}

// GroupBy reduces items into per-key count, sum and average, ordered by key.
func GroupBy[T any, K cmp.Ordered](items []T, key func(T) K, value func(T) decimal.Decimal) []Group[K] {
	index := make(map[K]int)
	groups := make([]Group[K], 0)
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K]{Key: k, Sum: decimal.Zero})
		}
		groups[i].Count++
		groups[i].Sum = groups[i].Sum.Add(value(it))
	}
	for i := range groups {
		groups[i].Avg = Average(groups[i].Sum, groups[i].Count)
	}
	slices.SortFunc(groups, func(a, b Group[K]) int { return cmp.Compare(a.Key, b.Key) })
	return groups
}

// Sum totals value over items.
func Sum[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(value(it))
	}
	return total
}

// Average divides sum by count rounding to cents; zero count yields zero.
func Average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// TopN returns the n items with the largest metric, descending. Ties keep
// input order. n <= 0 returns all items sorted.
func TopN[T any](items []T, n int, metric func(T) decimal.Decimal) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return metric(b).Cmp(metric(a))
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
