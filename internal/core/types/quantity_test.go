package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want Quantity
	}{
		{"5", 50_000},
		{"2.5", 25_000},
		{"0.00015", 1},
		{"-1.25", -12_500},
		{".5", 5_000},
		{"1e1", 100_000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	largest, err := ParseQuantity("922337203685477.5807")
	require.NoError(t, err)
	assert.Equal(t, Quantity(math.MaxInt64), largest)
}

func TestParseQuantity_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"abc",
		"-",
		".",
		"1.-5",
		"1.+5",
		"1.5x",
		"--1",
		"1 000",
		"1844674407370956",
		"922337203685477.5808",
		"99999999999999999999",
		"1e300",
		"-1e300",
		"NaNe1",
		"Inf",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseQuantity(in)
			assert.Error(t, err)
		})
	}
}

func TestQuantity_AddChecked(t *testing.T) {
	sum, ok := NewQuantity(2).AddChecked(NewQuantity(3))
	require.True(t, ok)
	assert.Equal(t, NewQuantity(5), sum)

	_, ok = Quantity(math.MaxInt64 - 1).AddChecked(2)
	assert.False(t, ok)

	_, ok = Quantity(math.MinInt64 + 1).AddChecked(-2)
	assert.False(t, ok)

	sum, ok = Quantity(math.MaxInt64).AddChecked(-1)
	require.True(t, ok)
	assert.Equal(t, Quantity(math.MaxInt64-1), sum)
}

func TestQuantity_JSON(t *testing.T) {
	var q Quantity
	require.NoError(t, json.Unmarshal([]byte(`"12.75"`), &q))
	assert.Equal(t, MustQuantity("12.75"), q)

	require.NoError(t, json.Unmarshal([]byte(`3`), &q))
	assert.Equal(t, NewQuantity(3), q)

	out, err := json.Marshal(struct {
		Q Quantity `json:"q"`
	}{Q: MustQuantity("25")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"q": 25.0000}`, string(out))
}

func TestQuantity_Display(t *testing.T) {
	assert.Equal(t, "25", NewQuantity(25).Display())
	assert.Equal(t, "2.5", MustQuantity("2.5").Display())
	assert.Equal(t, "0", Quantity(0).Display())
}

func TestQuantity_Decimal(t *testing.T) {
	q := MustQuantity("1.2345")
	assert.Equal(t, "1.2345", q.Decimal().String())
	assert.Equal(t, q, NewQuantityFromDecimal(q.Decimal()))
	assert.Equal(t, "6.17", Cost(q, MustMoney("5")).String())
}
