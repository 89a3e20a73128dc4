package cart

import (
	"atelier/internal/domain"

	"github.com/shopspring/decimal"
)

// Totals are the values derived from the cart. They are computed on every
// read and never stored.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	ItemCount  int             `json:"itemCount"`
}

// Calculator computes Totals with a fixed tax rate and flat shipping fee
type Calculator struct {
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal
}

// NewCalculator creates a calculator for the given tax rate and shipping cost
func NewCalculator(taxRate, shippingCost decimal.Decimal) Calculator {
	return Calculator{TaxRate: taxRate, ShippingCost: shippingCost}
}

// Compute derives the totals for items. Shipping is charged whenever the
// subtotal is positive; tax is not rounded.
func (c Calculator) Compute(items []domain.CartItem) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = c.ShippingCost
	}

	tax := subtotal.Mul(c.TaxRate)

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: subtotal.Add(tax).Add(shipping),
		ItemCount:  count,
	}
}
