// Package gst holds the tax arithmetic for GST invoices. Every function is
// pure and deterministic: the same formulas back the server-side persisted
// totals, the preview endpoint, and the PDF renderer, so the three can never
// disagree.
package gst

import (
	"math"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// Slabs are the GST rates accepted on an invoice.
var Slabs = []float64{5, 12, 18, 28}

// Totals holds the derived monetary fields of an invoice, each rounded to
// two decimal places.
type Totals struct {
	SubTotal   float64 `json:"sub_total"`
	CGSTAmount float64 `json:"cgst_amount"`
	SGSTAmount float64 `json:"sgst_amount"`
	GrandTotal float64 `json:"grand_total"`
}

// ValidRate reports whether rate is one of the allowed GST slabs. The
// calculator itself never rejects a rate; slab validation is the invoice
// service's job.
func ValidRate(rate float64) bool {
	for _, s := range Slabs {
		if rate == s {
			return true
		}
	}
	return false
}

// sanitize coerces NaN and infinities to 0 so that garbage input degrades to
// a zero amount instead of poisoning every downstream total.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// round2 rounds half away from zero at two decimal places.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ItemAmount returns quantity times unit price, rounded to two decimals.
func ItemAmount(quantity, unitPrice float64) float64 {
	q := decimal.NewFromFloat(sanitize(quantity))
	p := decimal.NewFromFloat(sanitize(unitPrice))
	return round2(q.Mul(p))
}

// Subtotal sums the item amounts, rounding after each accumulation step.
// Changing the accumulation strategy shifts totals on certain fractional
// inputs, so the per-step rounding must stay.
func Subtotal(items []domain.LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		amount := decimal.NewFromFloat(ItemAmount(float64(item.Quantity), item.UnitPrice))
		sum = sum.Add(amount).Round(2)
	}
	return sum.InexactFloat64()
}

// CGST is the central component of the tax: half the GST rate applied to the
// subtotal, rounded to two decimals.
func CGST(subTotal, gstRate float64) float64 {
	sub := decimal.NewFromFloat(sanitize(subTotal))
	rate := decimal.NewFromFloat(sanitize(gstRate))
	// subTotal * (rate/2) / 100 == subTotal * rate / 200
	return round2(sub.Mul(rate).Div(decimal.NewFromInt(200)))
}

// SGST is the state component. For intra-state supply it always equals CGST.
func SGST(subTotal, gstRate float64) float64 {
	return CGST(subTotal, gstRate)
}

// GrandTotal is subtotal plus both tax components, rounded to two decimals.
func GrandTotal(subTotal, cgst, sgst float64) float64 {
	sum := decimal.NewFromFloat(sanitize(subTotal)).
		Add(decimal.NewFromFloat(sanitize(cgst))).
		Add(decimal.NewFromFloat(sanitize(sgst)))
	return round2(sum)
}

// Calculate composes the full pipeline over a set of line items.
func Calculate(items []domain.LineItem, gstRate float64) Totals {
	subTotal := Subtotal(items)
	cgst := CGST(subTotal, gstRate)
	sgst := SGST(subTotal, gstRate)
	return Totals{
		SubTotal:   subTotal,
		CGSTAmount: cgst,
		SGSTAmount: sgst,
		GrandTotal: GrandTotal(subTotal, cgst, sgst),
	}
}
