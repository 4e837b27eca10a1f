package pricing

import (
	"math"
	"testing"

	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		cart         []models.CartEntry
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "empty cart",
			cart:         nil,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
		{
			name: "single standalone",
			cart: []models.CartEntry{
				{Kind: models.KindDrink, Name: "Cola", Price: 2.00},
			},
			wantSubtotal: 2.00,
			wantTax:      0.16,
			wantTotal:    2.16,
		},
		{
			name: "container plus drink",
			cart: []models.CartEntry{
				{
					Kind:  models.KindContainer,
					ID:    5,
					Price: 8.50,
					Items: []models.SubItem{{Name: "Rice"}, {Name: "Chicken"}},
				},
				{Kind: models.KindDrink, Name: "Cola", Price: 2.00},
			},
			wantSubtotal: 10.50,
			wantTax:      0.84,
			wantTotal:    11.34,
		},
		{
			name: "zero-priced entry contributes nothing",
			cart: []models.CartEntry{
				{Kind: models.KindAppetizer, Name: "Water", Price: 0},
				{Kind: models.KindDrink, Name: "Tea", Price: 1.25},
			},
			wantSubtotal: 1.25,
			wantTax:      0.10,
			wantTotal:    1.35,
		},
	}

	engine := NewEngine(DefaultTaxRate)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Compute(tt.cart)

			if !closeTo(got.Subtotal, tt.wantSubtotal) {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.wantSubtotal)
			}
			if !closeTo(got.Tax, tt.wantTax) {
				t.Errorf("Tax = %v, want %v", got.Tax, tt.wantTax)
			}
			if !closeTo(got.Total, tt.wantTotal) {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}

			if got.Total < got.Subtotal || got.Subtotal < 0 {
				t.Errorf("expected total >= subtotal >= 0, got %+v", got)
			}
		})
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	cart := []models.CartEntry{
		{
			Kind:  models.KindContainer,
			ID:    3,
			Price: 9.99,
			Items: []models.SubItem{{Name: "Noodles"}},
		},
		{Kind: models.KindAppetizer, Name: "Spring Roll", Price: 3.75},
	}

	engine := NewEngine(DefaultTaxRate)

	first := engine.Compute(cart)
	second := engine.Compute(cart)

	if first != second {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}

func TestComputeFormattedBoundary(t *testing.T) {
	// The binary tax value for scenario totals is inexact; the wire string
	// must still come out at exactly two decimal places.
	cart := []models.CartEntry{
		{Kind: models.KindContainer, ID: 5, Price: 8.50, Items: []models.SubItem{{Name: "Rice"}, {Name: "Chicken"}}},
		{Kind: models.KindDrink, Name: "Cola", Price: 2.00},
	}

	totals := NewEngine(DefaultTaxRate).Compute(cart)

	if got := models.FormatAmount(totals.Total); got != "11.34" {
		t.Errorf("formatted total = %q, want %q", got, "11.34")
	}
	if got := models.FormatAmount(totals.Tax); got != "0.84" {
		t.Errorf("formatted tax = %q, want %q", got, "0.84")
	}
}

func TestNewEngineDefaultsTaxRate(t *testing.T) {
	if got := NewEngine(0).TaxRate(); got != DefaultTaxRate {
		t.Errorf("TaxRate() = %v, want %v", got, DefaultTaxRate)
	}
	if got := NewEngine(0.1).TaxRate(); got != 0.1 {
		t.Errorf("TaxRate() = %v, want 0.1", got)
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
