package models

import (
	"encoding/json"
	"testing"
)

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Price
	}{
		{"number", `8.5`, 8.5},
		{"integer", `3`, 3},
		{"numeric string", `"2.00"`, 2},
		{"null", `null`, 0},
		{"garbage string", `"free"`, 0},
		{"negative number passes decode", `-1.5`, -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p != tt.want {
				t.Errorf("got %v, want %v", p, tt.want)
			}
		})
	}
}

func TestCartEntryValidate(t *testing.T) {
	tests := []struct {
		name        string
		entry       CartEntry
		shouldError bool
	}{
		{
			name: "valid container",
			entry: CartEntry{
				Kind: KindContainer, ID: 5, Price: 8.50,
				Items: []SubItem{{Name: "Rice"}},
			},
		},
		{
			name:  "valid drink",
			entry: CartEntry{Kind: KindDrink, Name: "Cola", Price: 2},
		},
		{
			name:  "valid appetizer with no id",
			entry: CartEntry{Kind: KindAppetizer, Name: "Spring Roll", Price: 3.75},
		},
		{
			name:        "unknown kind",
			entry:       CartEntry{Kind: "Combo", Price: 1},
			shouldError: true,
		},
		{
			name:        "negative price",
			entry:       CartEntry{Kind: KindDrink, Price: -0.01},
			shouldError: true,
		},
		{
			name:        "container without items",
			entry:       CartEntry{Kind: KindContainer, ID: 5, Price: 8.50},
			shouldError: true,
		},
		{
			name:        "container without id",
			entry:       CartEntry{Kind: KindContainer, Price: 8.50, Items: []SubItem{{Name: "Rice"}}},
			shouldError: true,
		},
		{
			name: "standalone with sub-items",
			entry: CartEntry{
				Kind: KindDrink, Price: 2,
				Items: []SubItem{{Name: "Ice"}},
			},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.shouldError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLineItemJSONEmitsNullContainer(t *testing.T) {
	item := LineItem{OrderID: 77, Quantity: 1}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"order_id":77,"quantity":1,"container_id":null}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{11.336, "11.34"},
		{2, "2.00"},
		{10.5, "10.50"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := FormatCurrency(11.34); got != "$11.34" {
		t.Errorf("FormatCurrency = %q, want $11.34", got)
	}
}
