package domain

import "github.com/shopspring/decimal"

// CartItem is a snapshot of a product taken when it was first added to the cart,
// plus the selected quantity. It does not follow later edits to the product.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price * quantity for the line
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
