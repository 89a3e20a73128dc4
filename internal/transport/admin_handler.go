package transport

import (
	"net/http"

	"atelier/internal/domain"
	"atelier/internal/middleware"
	"atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest represents the admin product editor payload
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,notblank"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Inventory   int             `json:"inventory" validate:"gte=0"`
	Featured    bool            `json:"featured"`
}

func (req ProductRequest) toProduct(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Inventory:   req.Inventory,
		Featured:    req.Featured,
	}
}

// AdminHandler handles the inventory editor
type AdminHandler struct {
	storefront service.StorefrontService
	logger     *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(storefront service.StorefrontService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		storefront: storefront,
		logger:     logger,
	}
}

// RegisterRoutes registers the admin routes behind RequireAdmin
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(h.logger))

		r.Get("/products", h.ListInventory)
		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Get("/orders", h.ListOrders)
	})
}

// ListInventory returns every product with its stock badges
func (h *AdminHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(h.storefront.Inventory()))
}

// CreateProduct adds a product to the catalog
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	created, err := h.storefront.CreateProduct(r.Context(), req.toProduct(""))
	if err != nil {
		middleware.RespondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(created))
}

// UpdateProduct replaces a product's fields
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	updated, err := h.storefront.UpdateProduct(r.Context(), req.toProduct(chi.URLParam(r, "id")))
	if err != nil {
		middleware.RespondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProduct removes a product. Unknown ids succeed too.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.storefront.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders returns every order, newest first
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.storefront.Orders())
}
