package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"

	"atelier/internal/advisor"
	"atelier/internal/cart"
	"atelier/internal/catalog"
	"atelier/internal/checkout"
	"atelier/internal/domain"
	"atelier/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeaturedLimit is the number of featured products shown on the home page
const FeaturedLimit = 3

// Keys are the repository keys the four state collections are stored under
type Keys struct {
	Products string
	Cart     string
	User     string
	Orders   string
}

// NewKeys returns the storage keys with the given prefix
func NewKeys(prefix string) Keys {
	return Keys{
		Products: prefix + "products",
		Cart:     prefix + "cart",
		User:     prefix + "user",
		Orders:   prefix + "orders",
	}
}

// CartView is the cart as the shopper sees it
type CartView struct {
	Items  []domain.CartItem `json:"items"`
	Totals cart.Totals       `json:"totals"`
	// OpenCart asks the presentation layer to reveal the cart panel
	OpenCart bool `json:"openCart,omitempty"`
}

// StorefrontService defines the interface for the storefront state engine.
//
// It holds the catalog, the cart, the order history, the signed-in user and the
// advice slot. Every mutation is written through to the repository; a failed
// write is logged and the in-memory state stays authoritative.
type StorefrontService interface {
	Load(ctx context.Context)
	Close()

	Products(search, category string) []domain.Product
	FeaturedProducts() []domain.Product
	Categories() []string
	GetProduct(id string) (domain.Product, error)
	ViewProduct(id string) (domain.Product, error)
	Advice() advisor.State

	Cart() CartView
	AddToCart(ctx context.Context, productID string) (CartView, error)
	RemoveFromCart(ctx context.Context, productID string) CartView
	UpdateQuantity(ctx context.Context, productID string, delta int) CartView

	Checkout(ctx context.Context, address domain.ShippingAddress) (domain.Order, error)
	Orders() []domain.Order
	UserOrders() []domain.Order

	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) bool
	Inventory() []domain.Product

	SignIn(ctx context.Context, email string) (*domain.User, error)
	SignOut(ctx context.Context)
	CurrentUser() *domain.User
}

type storefrontService struct {
	repo       repository.KVRepository
	keys       Keys
	calculator cart.Calculator
	advisor    *advisor.Advisor
	tracker    *advisor.Tracker
	validate   *validator.Validate
	logger     *zap.Logger

	// mu serialises every operation; the engine has a single logical actor
	mu      sync.Mutex
	catalog *catalog.Store
	cart    *cart.Manager
	history *checkout.History
	builder *checkout.Builder
	user    *domain.User
}

// NewStorefrontService creates a storefront holding the seed catalog, an empty
// cart, no orders and no user. Call Load to restore persisted state.
func NewStorefrontService(
	repo repository.KVRepository,
	adv *advisor.Advisor,
	calculator cart.Calculator,
	keys Keys,
	logger *zap.Logger,
) StorefrontService {
	s := &storefrontService{
		repo:       repo,
		keys:       keys,
		calculator: calculator,
		advisor:    adv,
		tracker:    advisor.NewTracker(adv, logger),
		validate:   domain.NewValidator(),
		logger:     logger,
	}
	s.install(domain.SeedProducts(), nil, nil, nil)
	return s
}

func (s *storefrontService) install(products []domain.Product, items []domain.CartItem, orders []domain.Order, user *domain.User) {
	s.catalog = catalog.NewStore(products)
	s.cart = cart.NewManager(items)
	s.history = checkout.NewHistory(orders)
	s.builder = checkout.NewBuilder(s.catalog, s.cart, s.history)
	s.user = user
}

// loadStatus is the outcome of reading one stored collection
type loadStatus int

const (
	loadFound loadStatus = iota
	// loadMissing means no value is stored, or the stored value is null
	loadMissing
	// loadFailed means the value could not be read or decoded; it is left untouched
	loadFailed
)

// Load restores each collection from the repository independently. A missing
// or unreadable key falls back to its default without affecting the others.
// Only missing keys are written back; a key that failed to load keeps its
// stored value until the collection next changes.
func (s *storefrontService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make(map[string]loadStatus, 4)

	products, status := loadKey[[]domain.Product](ctx, s, s.keys.Products)
	if status == loadFound && products == nil {
		status = loadMissing
	}
	if status != loadFound {
		products = domain.SeedProducts()
	}
	statuses[s.keys.Products] = status

	items, status := loadKey[[]domain.CartItem](ctx, s, s.keys.Cart)
	statuses[s.keys.Cart] = status
	orders, status := loadKey[[]domain.Order](ctx, s, s.keys.Orders)
	statuses[s.keys.Orders] = status
	user, status := loadKey[*domain.User](ctx, s, s.keys.User)
	statuses[s.keys.User] = status

	s.install(products, items, orders, user)

	s.logger.Info("Storefront state loaded",
		zap.Int("products", s.catalog.Len()),
		zap.Int("cart_lines", s.cart.Len()),
		zap.Int("orders", s.history.Len()),
		zap.Bool("signed_in", s.user != nil),
	)

	var missing []string
	for _, key := range []string{s.keys.Products, s.keys.Cart, s.keys.Orders, s.keys.User} {
		if statuses[key] == loadMissing {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		s.persist(ctx, missing...)
	}
}

func loadKey[T any](ctx context.Context, s *storefrontService, key string) (T, loadStatus) {
	var value T

	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			s.logger.Debug("No stored value, using default", zap.String("key", key))
			return value, loadMissing
		}
		s.logger.Warn("Failed to read stored value, using default",
			zap.String("key", key),
			zap.Error(domain.NewPersistenceError("load", err)),
		)
		return value, loadFailed
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn("Stored value is corrupt, using default",
			zap.String("key", key),
			zap.Error(err),
		)
		var zero T
		return zero, loadFailed
	}

	return value, loadFound
}

// persist writes the named collections in one batch. Callers hold s.mu.
func (s *storefrontService) persist(ctx context.Context, keys ...string) {
	entries := make(map[string]string, len(keys))
	for _, key := range keys {
		var value any
		switch key {
		case s.keys.Products:
			value = s.catalog.All()
		case s.keys.Cart:
			value = s.cart.Items()
		case s.keys.Orders:
			value = s.history.List()
		case s.keys.User:
			value = s.user
		}

		data, err := json.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to encode state",
				zap.String("key", key),
				zap.Error(domain.NewPersistenceError("persist", err)),
			)
			continue
		}
		entries[key] = string(data)
	}

	var err error
	if len(entries) == 1 {
		for key, value := range entries {
			err = s.repo.Set(ctx, key, value)
		}
	} else {
		err = s.repo.SetMany(ctx, entries)
	}
	if err != nil {
		s.logger.Error("Failed to persist state",
			zap.Strings("keys", keys),
			zap.Error(domain.NewPersistenceError("persist", err)),
		)
	}
}

// Close stops any in-flight advice request
func (s *storefrontService) Close() {
	s.tracker.Close()
}

// Products returns the catalog filtered by name search and category.
// An empty category matches every category.
func (s *storefrontService) Products(search, category string) []domain.Product {
	if category == "" {
		category = domain.CategoryAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return nonNil(slices.Collect(s.catalog.Filter(search, category)))
}

func (s *storefrontService) FeaturedProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nonNil(slices.Collect(s.catalog.Featured(FeaturedLimit)))
}

// Categories returns the filter options, "All" first
func (s *storefrontService) Categories() []string {
	return append([]string{domain.CategoryAll}, domain.Categories()...)
}

func (s *storefrontService) GetProduct(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(id)
	if !ok {
		return domain.Product{}, catalog.ErrProductNotFound
	}
	return p, nil
}

// ViewProduct returns the product and starts fetching stylist advice for it.
// The advice arrives later through Advice.
func (s *storefrontService) ViewProduct(id string) (domain.Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return domain.Product{}, err
	}

	s.tracker.Request(p.ID, p.Name, p.Category)
	return p, nil
}

func (s *storefrontService) Advice() advisor.State {
	return s.tracker.Current()
}

func (s *storefrontService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cartView()
}

func (s *storefrontService) cartView() CartView {
	items := s.cart.Items()
	return CartView{
		Items:  items,
		Totals: s.calculator.Compute(items),
	}
}

// AddToCart puts one unit of the product in the cart. Sold-out products
// cannot be added.
func (s *storefrontService) AddToCart(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(productID)
	if !ok {
		return CartView{}, catalog.ErrProductNotFound
	}
	if p.SoldOut() {
		return CartView{}, domain.NewValidationError("add to cart", "product is sold out",
			domain.FieldError{Field: "productId", Message: "Sold out"},
		)
	}

	s.cart.Add(p)
	s.persist(ctx, s.keys.Cart)

	view := s.cartView()
	view.OpenCart = true
	return view, nil
}

func (s *storefrontService) RemoveFromCart(ctx context.Context, productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Remove(productID) {
		s.persist(ctx, s.keys.Cart)
	}
	return s.cartView()
}

func (s *storefrontService) UpdateQuantity(ctx context.Context, productID string, delta int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.UpdateQuantity(productID, delta) {
		s.persist(ctx, s.keys.Cart)
	}
	return s.cartView()
}

// Checkout places an order for the current cart at its current grand total
func (s *storefrontService) Checkout(ctx context.Context, address domain.ShippingAddress) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := s.calculator.Compute(s.cart.Items())

	order, err := s.builder.CompleteOrder(address, s.user, totals.GrandTotal)
	if err != nil {
		return domain.Order{}, err
	}

	s.persist(ctx, s.keys.Products, s.keys.Cart, s.keys.Orders)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.String()),
	)

	return order, nil
}

// Orders returns every order, newest first
func (s *storefrontService) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.List()
}

// UserOrders returns the orders of the signed-in user, or guest orders when
// nobody is signed in
func (s *storefrontService) UserOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := domain.GuestUserID
	if s.user != nil {
		userID = s.user.ID
	}
	return nonNil(s.history.ForUser(userID))
}

// CreateProduct validates p and appends it to the catalog. A blank
// description is written by the advisor.
func (s *storefrontService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := s.validateProduct("create product", p); err != nil {
		return domain.Product{}, err
	}

	// outside the lock; the provider call can take seconds
	if strings.TrimSpace(p.Description) == "" {
		p.Description = s.advisor.ProductDescription(ctx, p.Name, p.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = ""
	created := s.catalog.Add(p)
	s.persist(ctx, s.keys.Products)

	s.logger.Info("Product created",
		zap.String("product_id", created.ID),
		zap.String("name", created.Name),
	)

	return created, nil
}

// UpdateProduct replaces every field of an existing product. Cart lines keep
// the snapshot taken when they were added.
func (s *storefrontService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := s.validateProduct("update product", p); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Update(p); err != nil {
		return domain.Product{}, err
	}
	s.persist(ctx, s.keys.Products)

	return p, nil
}

// DeleteProduct removes a product. Deleting an unknown id changes nothing.
func (s *storefrontService) DeleteProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.catalog.Remove(id) {
		return false
	}
	s.persist(ctx, s.keys.Products)

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return true
}

// Inventory returns every product in display order
func (s *storefrontService) Inventory() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.All()
}

func (s *storefrontService) validateProduct(op string, p domain.Product) error {
	var fields []domain.FieldError
	if err := s.validate.Struct(p); err != nil {
		fields = domain.FieldErrors(err)
		if fields == nil {
			return domain.NewValidationError(op, "invalid product")
		}
	}
	if p.Price.IsNegative() {
		fields = append(fields, domain.FieldError{Field: "price", Message: "Value must be greater than or equal to 0"})
	}

	if len(fields) > 0 {
		return domain.NewValidationError(op, "invalid product", fields...)
	}
	return nil
}

// SignIn creates the stand-in identity for email. No password is checked.
// The role is admin when the address contains "admin".
func (s *storefrontService) SignIn(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewValidationError("sign in", "invalid email",
			domain.FieldError{Field: "email", Message: "Invalid email format"},
		)
	}

	name, _, _ := strings.Cut(email, "@")
	role := domain.RoleUser
	if strings.Contains(email, "admin") {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		// stable per address so a returning shopper sees their orders
		ID:    "user_" + strings.ReplaceAll(uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(email))).String(), "-", "")[:12],
		Email: email,
		Role:  role,
		Name:  name,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.persist(ctx, s.keys.User)

	s.logger.Info("User signed in",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
	)

	u := *user
	return &u, nil
}

func (s *storefrontService) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.persist(ctx, s.keys.User)
}

// CurrentUser returns a copy of the signed-in user, or nil
func (s *storefrontService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
