// Package checkout turns the live cart into immutable orders.
package checkout

import (
	"strings"
	"time"

	"atelier/internal/cart"
	"atelier/internal/catalog"
	"atelier/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const opCompleteOrder = "complete order"

// Builder converts the cart into an order, decrements inventory, records the
// order and clears the cart.
//
// Every check runs before any state is touched and none of the later steps can
// fail, so a caller observes either the whole checkout or none of it. This holds
// for a single actor only; concurrent writers would need a compare-and-swap on
// the inventory count.
type Builder struct {
	catalog  *catalog.Store
	cart     *cart.Manager
	history  *History
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewBuilder creates an order builder over the given engine state
func NewBuilder(store *catalog.Store, c *cart.Manager, history *History) *Builder {
	return &Builder{
		catalog:  store,
		cart:     c,
		history:  history,
		validate: domain.NewValidator(),
		now:      time.Now,
		newID:    defaultOrderID,
	}
}

func defaultOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// CompleteOrder places an order for the current cart. total must be the grand
// total computed from the cart right before the call; it is stored as-is.
// A nil user records the order against domain.GuestUserID.
func (b *Builder) CompleteOrder(address domain.ShippingAddress, user *domain.User, total decimal.Decimal) (domain.Order, error) {
	if b.cart.IsEmpty() {
		return domain.Order{}, domain.NewValidationError(opCompleteOrder, "cart is empty")
	}
	if err := b.validateAddress(address); err != nil {
		return domain.Order{}, err
	}

	userID := domain.GuestUserID
	if user != nil && user.ID != "" {
		userID = user.ID
	}

	items := b.cart.Items()
	order := domain.Order{
		ID:              b.uniqueID(),
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          domain.OrderStatusPending,
		Date:            b.now().UTC(),
		ShippingAddress: address,
	}

	for _, item := range items {
		b.catalog.DecrementInventory(item.ID, item.Quantity)
	}

	b.history.Prepend(order)
	b.cart.Clear()

	return order.Clone(), nil
}

func (b *Builder) uniqueID() string {
	for {
		id := b.newID()
		if !b.history.Contains(id) {
			return id
		}
	}
}

func (b *Builder) validateAddress(address domain.ShippingAddress) error {
	err := b.validate.Struct(address)
	if err == nil {
		return nil
	}

	fields := domain.FieldErrors(err)
	if len(fields) == 0 {
		return domain.NewValidationError(opCompleteOrder, "invalid shipping address")
	}
	return domain.NewValidationError(opCompleteOrder, "shipping address is incomplete", fields...)
}
