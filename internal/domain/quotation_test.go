package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotation_Recompute(t *testing.T) {
	q := &Quotation{
		TaxPercent: DefaultTaxPercent,
		Items: []QuotationItem{
			{Quantity: 2, UnitPrice: 500},
		},
	}
	q.Recompute()

	assert.Equal(t, 1000.0, q.Subtotal)
	assert.Equal(t, 0.0, q.DiscountAmount)
	assert.Equal(t, 180.0, q.TaxAmount)
	assert.Equal(t, 1180.0, q.GrandTotal)
}

func TestQuotation_Recompute_Invariant(t *testing.T) {
	q := &Quotation{
		TaxPercent: 12,
		Items: []QuotationItem{
			{Quantity: 3, UnitPrice: 333.33, DiscountPercent: 7.5},
			{Quantity: 1.5, UnitPrice: 849.99},
			{Quantity: 12, UnitPrice: 40, DiscountPercent: 100},
		},
	}
	q.Recompute()

	// grand_total == subtotal - discount_amount + tax_amount, at 2 decimals
	assert.InDelta(t, q.Subtotal-q.DiscountAmount+q.TaxAmount, q.GrandTotal, 0.011)
	assert.GreaterOrEqual(t, q.DiscountAmount, 0.0)
}

func TestQuotation_Recompute_Idempotent(t *testing.T) {
	q := &Quotation{
		TaxPercent: DefaultTaxPercent,
		Items:      []QuotationItem{{Quantity: 7, UnitPrice: 123.45, DiscountPercent: 3}},
	}
	q.Recompute()
	first := *q
	q.Recompute()

	assert.Equal(t, first.GrandTotal, q.GrandTotal)
	assert.Equal(t, first.TaxAmount, q.TaxAmount)
}
