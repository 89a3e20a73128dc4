package catalog

import (
	"slices"
	"strings"
	"testing"

	"atelier/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func product(id, name, category string, inventory int) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Category:  category,
		Price:     decimal.NewFromInt(10),
		Inventory: inventory,
	}
}

// Feature: storefront, Property: inventory decrement never goes negative
func TestProperty_DecrementInventoryFloorsAtZero(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("stock after decrement is max(0, stock - amount)", prop.ForAll(
		func(stock int, amount int) bool {
			s := NewStore([]domain.Product{product("p1", "Coat", domain.CategoryOuterwear, stock)})

			remaining, ok := s.DecrementInventory("p1", amount)
			if !ok {
				t.Logf("FAIL: product not found")
				return false
			}

			want := stock - amount
			if want < 0 {
				want = 0
			}

			stored, _ := s.Get("p1")
			if remaining != want || stored.Inventory != want {
				t.Logf("FAIL: stock %d - %d: expected %d, got %d (stored %d)", stock, amount, want, remaining, stored.Inventory)
				return false
			}

			return true
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 2000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecrementInventory_ExampleFloors(t *testing.T) {
	s := NewStore([]domain.Product{product("p1", "Coat", domain.CategoryOuterwear, 4)})

	remaining, ok := s.DecrementInventory("p1", 10)
	if !ok || remaining != 0 {
		t.Fatalf("expected remaining 0, got %d (ok=%v)", remaining, ok)
	}

	if _, ok := s.DecrementInventory("missing", 1); ok {
		t.Error("expected ok=false for unknown product")
	}
}

func TestDecrementInventory_NonPositiveAmountIsNoOp(t *testing.T) {
	s := NewStore([]domain.Product{product("p1", "Coat", domain.CategoryOuterwear, 4)})

	for _, amount := range []int{0, -1, -1000} {
		remaining, ok := s.DecrementInventory("p1", amount)
		if !ok || remaining != 4 {
			t.Errorf("amount %d: expected stock 4, got %d (ok=%v)", amount, remaining, ok)
		}
	}

	stored, _ := s.Get("p1")
	if stored.Inventory != 4 {
		t.Errorf("expected stored stock 4, got %d", stored.Inventory)
	}
}

// Feature: storefront, Property: generated ids never collide
func TestProperty_AddAssignsUniqueIDs(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every stored product has a distinct id", prop.ForAll(
		func(picks []int) bool {
			ids := []string{"", "1", "2", "3"}
			s := NewStore(nil)
			for _, pick := range picks {
				s.Add(product(ids[pick], "Item", domain.CategoryTops, 1))
			}

			seen := make(map[string]bool)
			for _, p := range s.All() {
				if p.ID == "" || seen[p.ID] {
					t.Logf("FAIL: duplicate or empty id %q", p.ID)
					return false
				}
				seen[p.ID] = true
			}

			return s.Len() == len(picks)
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAdd_RegeneratesOnCollidingGenerator(t *testing.T) {
	s := NewStore([]domain.Product{product("abc", "Coat", domain.CategoryOuterwear, 1)})

	calls := 0
	s.newID = func() string {
		calls++
		if calls < 3 {
			return "abc"
		}
		return "xyz"
	}

	p := s.Add(product("", "Shirt", domain.CategoryTops, 1))
	if p.ID != "xyz" {
		t.Errorf("expected generated id xyz, got %q", p.ID)
	}
}

func TestRemove_IsNoOpForUnknownID(t *testing.T) {
	s := NewStore(domain.SeedProducts())

	if s.Remove("does-not-exist") {
		t.Error("expected Remove to report false for unknown id")
	}
	if s.Len() != 6 {
		t.Errorf("expected 6 products, got %d", s.Len())
	}

	if !s.Remove("3") {
		t.Fatal("expected Remove to delete product 3")
	}
	if _, ok := s.Get("3"); ok {
		t.Error("product 3 still present after removal")
	}

	// indexes after the removed element must still resolve
	p, ok := s.Get("6")
	if !ok || p.Name != "Chunky Chelsea Boots" {
		t.Errorf("lookup after removal broken: %+v ok=%v", p, ok)
	}
}

func TestUpdate_UnknownProduct(t *testing.T) {
	s := NewStore(nil)
	if err := s.Update(product("nope", "X", domain.CategoryTops, 1)); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	s := NewStore(domain.SeedProducts())

	all := slices.Collect(s.Filter("", domain.CategoryAll))
	if len(all) != 6 {
		t.Fatalf("All + empty search: expected 6 products, got %d", len(all))
	}

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{"category only", "", domain.CategoryFootwear, []string{"6"}},
		{"case-insensitive search", "SILK", domain.CategoryAll, []string{"2"}},
		{"search and category", "c", domain.CategoryKnitwear, []string{"4"}},
		{"search excluded by category", "silk", domain.CategoryOuterwear, nil},
		{"no match", "velvet", domain.CategoryAll, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for p := range s.Filter(tc.search, tc.category) {
				got = append(got, p.ID)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// Feature: storefront, Property: filter results satisfy both predicates
func TestProperty_FilterMatchesPredicates(t *testing.T) {
	s := NewStore(domain.SeedProducts())

	properties := gopter.NewProperties(nil)

	properties.Property("every yielded product matches search and category", prop.ForAll(
		func(search string, category string) bool {
			count := 0
			for p := range s.Filter(search, category) {
				count++
				if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
					return false
				}
				if category != domain.CategoryAll && p.Category != category {
					return false
				}
			}

			// restartable: a second pass sees the same products
			again := 0
			for range s.Filter(search, category) {
				again++
			}
			return count == again
		},
		gen.OneConstOf("", "a", "co", "SHIRT", "boots", "zzz"),
		gen.OneConstOf(append([]interface{}{domain.CategoryAll}, toInterfaces(domain.Categories())...)...),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func TestFilter_IsLazy(t *testing.T) {
	s := NewStore(nil)
	seq := s.Filter("", domain.CategoryAll)

	s.Add(product("", "Late Arrival", domain.CategoryTops, 3))

	got := slices.Collect(seq)
	if len(got) != 1 || got[0].Name != "Late Arrival" {
		t.Errorf("expected sequence to observe product added after creation, got %+v", got)
	}
}

func TestFeatured(t *testing.T) {
	s := NewStore(domain.SeedProducts())

	got := slices.Collect(s.Featured(3))
	if len(got) != 2 {
		t.Fatalf("expected 2 featured seed products, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "4" {
		t.Errorf("unexpected featured order: %s, %s", got[0].ID, got[1].ID)
	}

	if one := slices.Collect(s.Featured(1)); len(one) != 1 {
		t.Errorf("expected limit to cap featured products, got %d", len(one))
	}
}
