// Package catalog holds the ordered product collection of the storefront.
package catalog

import (
	"errors"
	"iter"
	"strings"

	"atelier/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Store is an ordered, id-keyed product collection. Insertion order is the
// display order. Store is not safe for concurrent use; callers serialise access.
type Store struct {
	products []domain.Product
	index    map[string]int
	newID    func() string
}

// NewStore creates a store holding a copy of products. Products with a
// missing or duplicate id are given a fresh one.
func NewStore(products []domain.Product) *Store {
	s := &Store{
		index: make(map[string]int, len(products)),
		newID: defaultID,
	}
	for _, p := range products {
		s.Add(p)
	}
	return s
}

func defaultID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// Add appends p, assigning a fresh id when it has none or its id is already
// taken, and returns the stored copy.
func (s *Store) Add(p domain.Product) domain.Product {
	if _, taken := s.index[p.ID]; p.ID == "" || taken {
		p.ID = s.freshID()
	}
	s.index[p.ID] = len(s.products)
	s.products = append(s.products, p)
	return p
}

func (s *Store) freshID() string {
	for {
		id := s.newID()
		if _, taken := s.index[id]; !taken && id != "" {
			return id
		}
	}
}

// Remove deletes the product with the given id. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.products); j++ {
		s.index[s.products[j].ID] = j
	}
	return true
}

// Update replaces the stored fields of an existing product
func (s *Store) Update(p domain.Product) error {
	i, ok := s.index[p.ID]
	if !ok {
		return ErrProductNotFound
	}
	s.products[i] = p
	return nil
}

// Get returns the product with the given id
func (s *Store) Get(id string) (domain.Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// DecrementInventory reduces stock by amount, floored at zero, and returns
// the remaining stock. A non-positive amount leaves stock unchanged. ok is
// false when the product no longer exists.
func (s *Store) DecrementInventory(id string, amount int) (remaining int, ok bool) {
	i, ok := s.index[id]
	if !ok {
		return 0, false
	}
	p := &s.products[i]
	if amount <= 0 {
		return p.Inventory, true
	}
	p.Inventory = max(0, p.Inventory-min(amount, p.Inventory))
	return p.Inventory, true
}

// Filter yields the products whose name contains search (case-insensitive)
// and whose category equals category, or any category for domain.CategoryAll.
// The sequence reads the store lazily and can be ranged over more than once.
func (s *Store) Filter(search, category string) iter.Seq[domain.Product] {
	needle := strings.ToLower(search)
	return func(yield func(domain.Product) bool) {
		for _, p := range s.products {
			if !strings.Contains(strings.ToLower(p.Name), needle) {
				continue
			}
			if category != domain.CategoryAll && p.Category != category {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Featured yields up to limit featured products in display order.
// A non-positive limit yields every featured product.
func (s *Store) Featured(limit int) iter.Seq[domain.Product] {
	return func(yield func(domain.Product) bool) {
		n := 0
		for _, p := range s.products {
			if !p.Featured {
				continue
			}
			if limit > 0 && n >= limit {
				return
			}
			n++
			if !yield(p) {
				return
			}
		}
	}
}

// All returns a copy of every product in display order
func (s *Store) All() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of products
func (s *Store) Len() int {
	return len(s.products)
}
