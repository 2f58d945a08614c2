package gst

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/domain"
)

func items(pairs ...[2]float64) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.LineItem{
			ProductName: "item",
			Quantity:    int(p[0]),
			UnitPrice:   p[1],
		})
	}
	return out
}

func TestItemAmount(t *testing.T) {
	assert.Equal(t, 300.0, ItemAmount(3, 100))
	assert.Equal(t, 0.0, ItemAmount(0, 100))
	assert.Equal(t, 0.0, ItemAmount(5, 0))
	assert.Equal(t, 33.33, ItemAmount(3, 11.11))
	// Half rounds away from zero.
	assert.Equal(t, 0.13, ItemAmount(1, 0.125))
}

func TestItemAmount_GarbageInput(t *testing.T) {
	assert.Equal(t, 0.0, ItemAmount(math.NaN(), 100))
	assert.Equal(t, 0.0, ItemAmount(3, math.Inf(1)))
	assert.Equal(t, 0.0, ItemAmount(math.NaN(), math.NaN()))
}

func TestSubtotal_RoundsPerStep(t *testing.T) {
	// Each amount is rounded before accumulation, and the running sum is
	// rounded after each addition.
	got := Subtotal(items([2]float64{3, 11.11}, [2]float64{2, 7.495}))
	// 33.33 + round2(14.99) = 48.32
	assert.Equal(t, 48.32, got)
}

func TestSubtotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Subtotal(nil))
	assert.Equal(t, 0.0, Subtotal([]domain.LineItem{}))
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	// items=[{Widget, qty 3, price 100}], rate 18 ->
	// subtotal 300.00, cgst 27.00, sgst 27.00, grand total 354.00
	totals := Calculate([]domain.LineItem{
		{ProductName: "Widget", Quantity: 3, UnitPrice: 100},
	}, 18)

	assert.Equal(t, 300.0, totals.SubTotal)
	assert.Equal(t, 27.0, totals.CGSTAmount)
	assert.Equal(t, 27.0, totals.SGSTAmount)
	assert.Equal(t, 354.0, totals.GrandTotal)
}

func TestCalculate_EmptyItems(t *testing.T) {
	totals := Calculate(nil, 18)
	assert.Equal(t, Totals{}, totals)
}

func TestCalculate_SymmetryAndConsistency(t *testing.T) {
	cases := [][]domain.LineItem{
		items([2]float64{1, 999.99}),
		items([2]float64{7, 33.33}, [2]float64{2, 0.01}),
		items([2]float64{13, 7.77}, [2]float64{1, 1234.56}, [2]float64{4, 0.99}),
		items([2]float64{100, 0.05}),
	}
	for _, its := range cases {
		for _, rate := range Slabs {
			totals := Calculate(its, rate)

			// Intra-state symmetry: the two components are always equal.
			assert.Equal(t, totals.CGSTAmount, totals.SGSTAmount)

			// Grand total matches the sum of its parts within rounding tolerance.
			sum := totals.SubTotal + totals.CGSTAmount + totals.SGSTAmount
			assert.InDelta(t, sum, totals.GrandTotal, 0.01)
		}
	}
}

func TestValidRate(t *testing.T) {
	for _, rate := range Slabs {
		assert.True(t, ValidRate(rate))
	}
	assert.False(t, ValidRate(0))
	assert.False(t, ValidRate(10))
	assert.False(t, ValidRate(18.5))
	assert.False(t, ValidRate(-18))
}
