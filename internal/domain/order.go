package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestUserID is recorded on orders placed without a signed-in user
const GuestUserID = "guest"

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ShippingAddress is embedded into an order on completion
type ShippingAddress struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
	Address   string `json:"address" validate:"required,notblank"`
	City      string `json:"city" validate:"required,notblank"`
	ZipCode   string `json:"zipCode" validate:"required,notblank"`
	Country   string `json:"country" validate:"required,notblank"`
}

// Order is the immutable record of a completed purchase
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	Date            time.Time       `json:"date"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// Clone returns a deep copy of the order
func (o Order) Clone() Order {
	c := o
	c.Items = make([]CartItem, len(o.Items))
	copy(c.Items, o.Items)
	return c
}
