package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pearview-systems/pos-checkout-service/internal/errors"
)

// EntryKind discriminates the cart entry variants.
type EntryKind string

const (
	KindContainer EntryKind = "Container"
	KindDrink     EntryKind = "Drink"
	KindAppetizer EntryKind = "Appetizer"
)

// IsContainer reports whether the kind is the priced-bundle variant.
// Drinks and appetizers are standalone entries.
func (k EntryKind) IsContainer() bool {
	return k == KindContainer
}

// Price is a lenient money amount. Cashier menu data is not always clean, so
// decoding accepts a JSON number, a numeric string, or null, and coerces
// anything unparsable to zero instead of failing.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Price(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*p = Price(v)
			return nil
		}
	}

	*p = 0
	return nil
}

// SubItem is a named, individually unpriced item inside a container.
type SubItem struct {
	Name string `json:"name"`
}

// CartEntry is one billable line in an in-progress order: either a priced
// container bundling sub-items, or a standalone drink/appetizer.
type CartEntry struct {
	Kind  EntryKind `json:"type"`
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Price Price     `json:"price"`
	Items []SubItem `json:"items,omitempty"`
}

// Validate checks the structural invariants of a cart entry.
func (e *CartEntry) Validate() error {
	switch e.Kind {
	case KindContainer, KindDrink, KindAppetizer:
	default:
		return errors.NewValidationError("type", "unknown cart entry type")
	}

	if e.Price < 0 {
		return errors.NewValidationError("price", "price cannot be negative")
	}

	if e.Kind.IsContainer() {
		if len(e.Items) == 0 {
			return errors.NewValidationError("items", "container must hold at least one item")
		}
		if e.ID <= 0 {
			return errors.NewValidationError("id", "container requires a menu identifier")
		}
	} else if len(e.Items) > 0 {
		return errors.NewValidationError("items", "standalone entry cannot hold sub-items")
	}

	return nil
}

// OrderHeader is the client-built payload for POST /api/orders. Total is the
// post-tax grand total, formatted to two decimal places at this boundary only.
type OrderHeader struct {
	Time       time.Time `json:"time"`
	Total      string    `json:"total"`
	EmployeeID int       `json:"employee_id"`
}

// LineItem is the client-built payload for POST /api/order-items. ContainerID
// references the container a sub-item was sold in, and is null for standalone
// drinks and appetizers.
type LineItem struct {
	OrderID     int64  `json:"order_id"`
	Quantity    int    `json:"quantity"`
	ContainerID *int64 `json:"container_id"`
}

// Order is a persisted order header as returned by the backend.
type Order struct {
	ID         int64     `json:"order_id"`
	Time       time.Time `json:"time"`
	Total      string    `json:"total"`
	EmployeeID int       `json:"employee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// LineItemRecord is a persisted line item.
type LineItemRecord struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	Quantity    int    `json:"quantity"`
	ContainerID *int64 `json:"container_id"`
}

// CreateOrderResponse carries the backend-assigned order identifier.
type CreateOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// UpdateOrderRequest is a partial order header update; nil fields are left
// unchanged.
type UpdateOrderRequest struct {
	Time       *time.Time `json:"time,omitempty"`
	Total      *string    `json:"total,omitempty"`
	EmployeeID *int       `json:"employee_id,omitempty"`
}

// FormatAmount renders a money amount with exactly two fractional digits.
// Internal arithmetic stays unrounded; this is the formatting boundary.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatCurrency renders a money amount for display, with a currency prefix.
func FormatCurrency(v float64) string {
	return "$" + FormatAmount(v)
}
