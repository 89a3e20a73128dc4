// Package cart manages the shopping cart line items and the totals derived from them.
package cart

import (
	"math"

	"atelier/internal/domain"
)

// Manager holds an ordered sequence of cart items, at most one per product id.
// Manager is not safe for concurrent use.
type Manager struct {
	items []domain.CartItem
}

// NewManager creates a cart holding a copy of items. Lines for the same
// product are merged and quantities below one are raised to one.
func NewManager(items []domain.CartItem) *Manager {
	m := &Manager{}
	for _, item := range items {
		if i := m.find(item.ID); i >= 0 {
			m.items[i].Quantity += max(1, item.Quantity)
			continue
		}
		item.Quantity = max(1, item.Quantity)
		m.items = append(m.items, item)
	}
	return m
}

func (m *Manager) find(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart. An existing line for the same product
// gains one unit; otherwise a new line snapshots p's current fields.
// Inventory is not touched.
func (m *Manager) Add(p domain.Product) {
	if i := m.find(p.ID); i >= 0 {
		m.items[i].Quantity++
		return
	}
	m.items = append(m.items, domain.CartItem{Product: p, Quantity: 1})
}

// Remove deletes the line for id. Unknown ids are ignored.
func (m *Manager) Remove(id string) bool {
	i := m.find(id)
	if i < 0 {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return true
}

// UpdateQuantity adds delta to the line's quantity, never going below one.
// Use Remove to drop a line.
func (m *Manager) UpdateQuantity(id string, delta int) bool {
	i := m.find(id)
	if i < 0 {
		return false
	}
	m.items[i].Quantity = addQuantity(m.items[i].Quantity, delta)
	return true
}

// addQuantity returns q+delta clamped to [1, math.MaxInt]
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(1, q+delta)
}

// Clear empties the cart
func (m *Manager) Clear() {
	m.items = nil
}

// Items returns a copy of the cart lines in insertion order
func (m *Manager) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of distinct lines
func (m *Manager) Len() int {
	return len(m.items)
}

// IsEmpty reports whether the cart has no lines
func (m *Manager) IsEmpty() bool {
	return len(m.items) == 0
}
