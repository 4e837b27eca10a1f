package pricing

import "github.com/pearview-systems/pos-checkout-service/internal/models"

// DefaultTaxRate is the fixed sales tax policy applied at checkout.
const DefaultTaxRate = 0.08

// Totals is the pricing breakdown for a cart. Values are exact and unrounded;
// callers format to two decimal places only at the presentation or wire
// boundary, so recomputing on an unchanged cart always reproduces the same
// result.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Engine computes cart totals. It holds no state beyond the tax rate.
type Engine struct {
	taxRate float64
}

// NewEngine creates a pricing engine with the given tax rate. A zero or
// negative rate falls back to DefaultTaxRate.
func NewEngine(taxRate float64) *Engine {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Engine{taxRate: taxRate}
}

// Compute prices a cart: subtotal is the sum of entry prices, tax is
// subtotal times the configured rate, total is their sum. An empty cart
// yields all zeros.
func (e *Engine) Compute(cart []models.CartEntry) Totals {
	var subtotal float64
	for _, entry := range cart {
		subtotal += float64(entry.Price)
	}

	tax := subtotal * e.taxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// TaxRate exposes the configured rate.
func (e *Engine) TaxRate() float64 {
	return e.taxRate
}
