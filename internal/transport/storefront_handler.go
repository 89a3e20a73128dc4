package transport

import (
	"net/http"
	"strings"

	"atelier/internal/domain"
	"atelier/internal/middleware"
	"atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductResponse is a product with its stock badges
type ProductResponse struct {
	domain.Product
	LowStock bool `json:"lowStock"`
	SoldOut  bool `json:"soldOut"`
}

// AddToCartRequest represents the add-to-cart request payload
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// UpdateQuantityRequest represents a quantity change on a cart line
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CatalogResponse is the filtered product grid
type CatalogResponse struct {
	Products   []ProductResponse `json:"products"`
	Categories []string          `json:"categories"`
}

// StorefrontHandler handles HTTP requests for browsing, the cart and checkout
type StorefrontHandler struct {
	storefront service.StorefrontService
	logger     *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(storefront service.StorefrontService, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		storefront: storefront,
		logger:     logger,
	}
}

// RegisterRoutes registers the shopper routes. viewLimiter, when not nil,
// guards the product detail route since it triggers an advice request.
func (h *StorefrontHandler) RegisterRoutes(r chi.Router, viewLimiter func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.ListCategories)
		r.Get("/products", h.ListProducts)
		r.Get("/products/featured", h.ListFeatured)
		r.Group(func(r chi.Router) {
			if viewLimiter != nil {
				r.Use(viewLimiter)
			}
			r.Get("/products/{id}", h.ViewProduct)
		})
		r.Get("/advice", h.GetAdvice)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddToCart)
		r.Patch("/cart/items/{id}", h.UpdateQuantity)
		r.Delete("/cart/items/{id}", h.RemoveFromCart)

		r.Post("/checkout", h.Checkout)
		r.Get("/orders", h.ListOrders)
	})
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.LowStock(), SoldOut: p.SoldOut()}
}

// ListCategories returns the category filter options
func (h *StorefrontHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.storefront.Categories())
}

// ListProducts handles GET /api/products?search=&category=
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := query.Get("category")
	if category != "" && category != domain.CategoryAll && !domain.IsCategory(category) {
		middleware.RespondWithValidationErrors(w, "Invalid query parameters", []domain.FieldError{{
			Field:   "category",
			Message: "Value must be one of: " + strings.Join(h.storefront.Categories(), " "),
		}})
		return
	}

	products := h.storefront.Products(query.Get("search"), category)

	middleware.RespondWithJSON(w, http.StatusOK, CatalogResponse{
		Products:   toProductResponses(products),
		Categories: h.storefront.Categories(),
	})
}

// ListFeatured returns the home page products
func (h *StorefrontHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(h.storefront.FeaturedProducts()))
}

// ViewProduct returns a product and starts loading its stylist advice
func (h *StorefrontHandler) ViewProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.storefront.ViewProduct(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(p))
}

// GetAdvice returns the advice slot of the last viewed product
func (h *StorefrontHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.storefront.Advice())
}

// GetCart returns the cart lines and totals
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.storefront.Cart())
}

// AddToCart adds one unit of a product
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	view, err := h.storefront.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		middleware.RespondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// UpdateQuantity changes a cart line's quantity by delta
func (h *StorefrontHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update quantity validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	view := h.storefront.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Delta)
	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// RemoveFromCart drops a cart line
func (h *StorefrontHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	view := h.storefront.RemoveFromCart(r.Context(), chi.URLParam(r, "id"))
	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// Checkout places an order for the cart
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var address domain.ShippingAddress
	if err := middleware.DecodeAndValidate(r, &address); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	order, err := h.storefront.Checkout(r.Context(), address)
	if err != nil {
		middleware.RespondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// ListOrders returns the current shopper's orders, newest first
func (h *StorefrontHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.storefront.UserOrders())
}
