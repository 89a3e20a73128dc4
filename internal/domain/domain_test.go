package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockBadges(t *testing.T) {
	tests := []struct {
		inventory int
		lowStock  bool
		soldOut   bool
	}{
		{inventory: 0, lowStock: true, soldOut: true},
		{inventory: 1, lowStock: true},
		{inventory: 4, lowStock: true},
		{inventory: 5},
		{inventory: 45},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.inventory), func(t *testing.T) {
			p := Product{Inventory: tt.inventory}
			assert.Equal(t, tt.lowStock, p.LowStock())
			assert.Equal(t, tt.soldOut, p.SoldOut())
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories(), 6)
	assert.True(t, IsCategory(CategoryKnitwear))
	assert.False(t, IsCategory(CategoryAll))
	assert.False(t, IsCategory("knitwear"))
}

func TestLineTotal(t *testing.T) {
	item := CartItem{Product: Product{Price: decimal.RequireFromString("19.99")}, Quantity: 3}
	assert.Equal(t, "59.97", item.LineTotal().String())
}

func TestOrderClone(t *testing.T) {
	o := Order{ID: "ORD-1", Items: []CartItem{{Product: Product{ID: "1"}, Quantity: 2}}}

	c := o.Clone()
	c.Items[0].Quantity = 9

	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestUserIsAdmin(t *testing.T) {
	var nobody *User
	assert.False(t, nobody.IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}

func TestError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("failed to save cart: %w", NewPersistenceError("persist", cause))

	assert.True(t, IsKind(err, KindPersistence))
	assert.False(t, IsValidation(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save cart: persist: persistence failed: connection reset", err.Error())

	verr := NewValidationError("complete order", "cart is empty")
	assert.True(t, IsValidation(verr))
	assert.Equal(t, "complete order: cart is empty", verr.Error())
	assert.Equal(t, "ADVISORY_PROVIDER", KindAdvisoryProvider.String())
}

func TestFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.Struct(Product{Category: "Hats", Inventory: -1})
	fields := FieldErrors(err)
	require.Len(t, fields, 3)
	assert.Equal(t, FieldError{Field: "name", Message: "This field is required"}, fields[0])
	assert.Equal(t, "category", fields[1].Field)
	assert.Equal(t, FieldError{Field: "inventory", Message: "Value must be greater than or equal to 0"}, fields[2])

	assert.Nil(t, FieldErrors(errors.New("not a validation error")))
}

func TestSeedProducts(t *testing.T) {
	seed := SeedProducts()
	require.Len(t, seed, 6)

	ids := map[string]bool{}
	v := NewValidator()
	for _, p := range seed {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		ids[p.ID] = true
		assert.NoError(t, v.Struct(p))
	}
}
