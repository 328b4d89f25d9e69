package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	branch := "north"
	fields := map[string]any{
		"name":     "Basmati Rice",
		"branch":   &branch,
		"category": "grains",
		"quantity": int64(50_000),
		"date":     "2024-03-10",
		"supplier": (*string)(nil),
	}

	tests := []struct {
		name  string
		items []Item
		want  bool
	}{
		{"no conditions", nil, true},
		{"eq", []Item{Eq("category", "grains")}, true},
		{"eq pointer", []Item{Eq("branch", "north")}, true},
		{"eq mismatch", []Item{Eq("category", "dairy")}, false},
		{"neq", []Item{{Field: "category", Operator: NotEqual, Value: "dairy"}}, true},
		{"contains ignores case", []Item{{Field: "name", Operator: Contains, Value: "rice"}}, true},
		{"in list", []Item{{Field: "category", Operator: InList, Value: []string{"dairy", "grains"}}}, true},
		{"not in list", []Item{{Field: "category", Operator: InList, Value: []string{"dairy"}}}, false},
		{"numeric lte", []Item{{Field: "quantity", Operator: LessOrEqual, Value: 50_000}}, true},
		{"numeric gte", []Item{{Field: "quantity", Operator: GreaterOrEqual, Value: 60_000}}, false},
		{"date inclusive start", []Item{{Field: "date", Operator: GreaterOrEqual, Value: "2024-03-10"}}, true},
		{"date inclusive end", []Item{{Field: "date", Operator: LessOrEqual, Value: "2024-03-10"}}, true},
		{"date after end", []Item{{Field: "date", Operator: LessOrEqual, Value: "2024-03-09"}}, false},
		{"null", []Item{{Field: "supplier", Operator: IsNull}}, true},
		{"not null", []Item{{Field: "branch", Operator: IsNotNull}}, true},
		{"unknown column", []Item{Eq("color", "red")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(fields, tt.items))
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(int64(9), int64(10)))
	assert.Equal(t, 1, Compare("b", "a"))
	assert.Equal(t, 0, Compare(nil, nil))
	assert.Equal(t, -1, Compare(nil, "a"))
	assert.Equal(t, 1, Compare(decimal.NewFromInt(10), decimal.NewFromInt(9)))

	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, Compare(early, early.Add(time.Hour)))
}
