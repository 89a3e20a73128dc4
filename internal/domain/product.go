package domain

import (
	"github.com/shopspring/decimal"
)

// CategoryAll is the filter sentinel that matches every category.
const CategoryAll = "All"

// Product categories
const (
	CategoryOuterwear   = "Outerwear"
	CategoryTops        = "Tops"
	CategoryTrousers    = "Trousers"
	CategoryKnitwear    = "Knitwear"
	CategoryAccessories = "Accessories"
	CategoryFootwear    = "Footwear"
)

// LowStockThreshold is the inventory level below which a product is flagged as running low
const LowStockThreshold = 5

// Categories returns the product categories in display order, without the "All" sentinel
func Categories() []string {
	return []string{
		CategoryOuterwear,
		CategoryTops,
		CategoryTrousers,
		CategoryKnitwear,
		CategoryAccessories,
		CategoryFootwear,
	}
}

// IsCategory reports whether name is one of the fixed product categories
func IsCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// Product represents a product in the catalog
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required,notblank"`
	Category    string          `json:"category" validate:"required,oneof=Outerwear Tops Trousers Knitwear Accessories Footwear"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Inventory   int             `json:"inventory" validate:"gte=0"`
	Featured    bool            `json:"featured,omitempty"`
}

// LowStock reports whether the product should be flagged as running low
func (p Product) LowStock() bool {
	return p.Inventory < LowStockThreshold
}

// SoldOut reports whether the product has no stock left
func (p Product) SoldOut() bool {
	return p.Inventory <= 0
}
