package checkout

import "atelier/internal/domain"

// History is the append-only order collection, newest first
type History struct {
	orders []domain.Order
}

// NewHistory creates a history from stored orders, which must already be newest first
func NewHistory(orders []domain.Order) *History {
	h := &History{orders: make([]domain.Order, 0, len(orders))}
	for _, o := range orders {
		h.orders = append(h.orders, o.Clone())
	}
	return h
}

// Prepend records o as the newest order
func (h *History) Prepend(o domain.Order) {
	h.orders = append([]domain.Order{o.Clone()}, h.orders...)
}

// List returns deep copies of all orders, newest first
func (h *History) List() []domain.Order {
	out := make([]domain.Order, len(h.orders))
	for i, o := range h.orders {
		out[i] = o.Clone()
	}
	return out
}

// ForUser returns the orders placed by userID, newest first
func (h *History) ForUser(userID string) []domain.Order {
	var out []domain.Order
	for _, o := range h.orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}

// Contains reports whether an order with the given id exists
func (h *History) Contains(id string) bool {
	for _, o := range h.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of orders
func (h *History) Len() int {
	return len(h.orders)
}
