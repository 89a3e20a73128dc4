package transport

import (
	"net/http"

	"atelier/internal/domain"
	"atelier/internal/middleware"
	"atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SignInRequest represents the sign-in request payload. The password is
// accepted for form compatibility and never checked.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// SessionResponse describes who is signed in
type SessionResponse struct {
	SignedIn bool         `json:"signedIn"`
	User     *domain.User `json:"user"`
}

// SessionHandler handles the mock sign-in
type SessionHandler struct {
	storefront service.StorefrontService
	logger     *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(storefront service.StorefrontService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		storefront: storefront,
		logger:     logger,
	}
}

// RegisterRoutes registers the session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/", h.SignIn)
		r.Delete("/", h.SignOut)
	})
}

// GetSession returns the signed-in user, if any
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user := h.storefront.CurrentUser()
	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{SignedIn: user != nil, User: user})
}

// SignIn signs in as the stand-in user for an email address
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sign-in validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	user, err := h.storefront.SignIn(r.Context(), req.Email)
	if err != nil {
		middleware.RespondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{SignedIn: true, User: user})
}

// SignOut clears the signed-in user
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.storefront.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
