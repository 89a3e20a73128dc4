package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"atelier/internal/config"
	custommiddleware "atelier/internal/middleware"
	"atelier/internal/service"
	"atelier/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	storefront service.StorefrontService
	logger     *zap.Logger
	closers    []io.Closer
}

// NewRouter builds the HTTP routes over the storefront. redisClient may be
// nil, in which case product views are not rate limited.
func NewRouter(cfg *config.Config, logger *zap.Logger, storefront service.StorefrontService, redisClient *redis.Client) http.Handler {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack(logger) {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))
	router.Use(custommiddleware.SessionMiddleware(storefront, logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var viewLimiter func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled && redisClient != nil {
		viewLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         cfg.Redis.Namespace + "advice_rate_limit",
		}, logger)
	}

	transport.NewStorefrontHandler(storefront, logger).RegisterRoutes(router, viewLimiter)
	transport.NewSessionHandler(storefront, logger).RegisterRoutes(router)
	transport.NewAdminHandler(storefront, logger).RegisterRoutes(router)

	return router
}

// NewServer creates the HTTP server. closers are closed, in order, by Close
// once the storefront has stopped.
func NewServer(cfg *config.Config, logger *zap.Logger, storefront service.StorefrontService, redisClient *redis.Client, closers ...io.Closer) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, storefront, redisClient),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		storefront: storefront,
		logger:     logger,
		closers:    closers,
	}
}

// Close stops the storefront's background work and releases the store connections
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.storefront.Close()

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Error("Failed to close store connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
