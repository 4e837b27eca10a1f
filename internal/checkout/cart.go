package checkout

import (
	"sync"

	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

// Cart accumulates the cashier's in-progress order. It is owned by the
// terminal session; the orchestrator only snapshots it at submission time and
// clears it after a completed attempt.
type Cart struct {
	mu      sync.Mutex
	entries []models.CartEntry
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add appends an entry to the cart.
func (c *Cart) Add(entry models.CartEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

// Entries returns a copy of the current cart contents.
func (c *Cart) Entries() []models.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]models.CartEntry, len(c.entries))
	copy(snapshot, c.entries)
	return snapshot
}

// Len reports the number of entries in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}
