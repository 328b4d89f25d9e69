package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sale struct {
	date     string
	category string
	amount   decimal.Decimal
}

func sales() []sale {
	d := decimal.RequireFromString
	return []sale{
		{"2024-03-01", "mains", d("20")},
		{"2024-03-05", "drinks", d("4.50")},
		{"2024-03-05", "mains", d("30")},
		{"2024-03-09", "desserts", d("7")},
		{"2024-03-10", "drinks", d("5.50")},
	}
}

func TestDateRange_Inclusive(t *testing.T) {
	r := DateRange{From: "2024-03-05", To: "2024-03-09"}

	assert.True(t, r.Contains("2024-03-05"), "start is included")
	assert.True(t, r.Contains("2024-03-09"), "end is included")
	assert.False(t, r.Contains("2024-03-04"))
	assert.False(t, r.Contains("2024-03-10"))

	got := FilterByDate(sales(), r, func(s sale) string { return s.date })
	require.Len(t, got, 3)
	assert.Equal(t, "2024-03-05", got[0].date)
	assert.Equal(t, "2024-03-09", got[2].date)
}

func TestDateRange_OpenBounds(t *testing.T) {
	assert.True(t, DateRange{}.Contains("1999-01-01"))
	assert.True(t, DateRange{From: "2024-01-01"}.Contains("2030-12-31"))
	assert.False(t, DateRange{To: "2024-01-01"}.Contains("2024-01-02"))
}

func TestDateRange_Validate(t *testing.T) {
	_, err := NewDateRange("2024-03-01", "2024-03-31")
	assert.NoError(t, err)

	_, err = NewDateRange("2024-03-31", "2024-03-01")
	assert.Error(t, err)

	_, err = NewDateRange("03/01/2024", "")
	assert.Error(t, err)
}

func TestDateRange_Times(t *testing.T) {
	from, to := DateRange{From: "2024-03-01", To: "2024-03-01"}.Times()
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, 24*time.Hour, to.Sub(*from))

	from, to = DateRange{}.Times()
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestLastDays(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, DateRange{From: "2024-03-04", To: "2024-03-10"}, LastDays(today, 7))
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(sales(),
		func(s sale) string { return s.category },
		func(s sale) decimal.Decimal { return s.amount },
	)

	require.Len(t, groups, 3)
	assert.Equal(t, "desserts", groups[0].Key)
	assert.Equal(t, "drinks", groups[1].Key)
	assert.Equal(t, 2, groups[1].Count)
	assert.True(t, groups[1].Sum.Equal(decimal.RequireFromString("10")))
	assert.True(t, groups[1].Avg.Equal(decimal.RequireFromString("5")))
	assert.Equal(t, "mains", groups[2].Key)
	assert.True(t, groups[2].Sum.Equal(decimal.NewFromInt(50)))
}

func TestGroupBy_Idempotent(t *testing.T) {
	items := sales()
	key := func(s sale) string { return s.category }
	val := func(s sale) decimal.Decimal { return s.amount }

	first := GroupBy(items, key, val)
	second := GroupBy(items, key, val)
	assert.Equal(t, first, second)
	assert.Equal(t, sales(), items, "input must not be modified")
}

func TestTopN(t *testing.T) {
	items := sales()
	top := TopN(items, 2, func(s sale) decimal.Decimal { return s.amount })

	require.Len(t, top, 2)
	assert.Equal(t, "2024-03-05", top[0].date)
	assert.Equal(t, "2024-03-01", top[1].date)
	assert.Equal(t, sales(), items, "input order is preserved")

	all := TopN(items, 0, func(s sale) decimal.Decimal { return s.amount })
	assert.Len(t, all, len(items))
}

func TestTopN_StableTies(t *testing.T) {
	type row struct {
		name string
		v    int64
	}
	rows := []row{{"a", 1}, {"b", 3}, {"c", 1}, {"d", 3}}
	top := TopN(rows, 0, func(r row) decimal.Decimal { return decimal.NewFromInt(r.v) })
	assert.Equal(t, []row{{"b", 3}, {"d", 3}, {"a", 1}, {"c", 1}}, top)
}

func TestAverage(t *testing.T) {
	assert.True(t, Average(decimal.NewFromInt(10), 3).Equal(decimal.RequireFromString("3.33")))
	assert.True(t, Average(decimal.NewFromInt(10), 0).IsZero())
}
