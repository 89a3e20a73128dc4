package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"atelier/internal/advisor"
	"atelier/internal/cart"
	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/logger"
	"atelier/internal/repository"
	"atelier/internal/server"
	"atelier/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

// openStore selects the key-value backend. The returned closers release its
// connections; the redis client is also handed to the rate limiter.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.KVRepository, *redis.Client, []io.Closer, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("Using redis store", zap.String("addr", cfg.Redis.Addr()))
		return repository.NewRedisKVRepository(client, cfg.Redis.Namespace), client, []io.Closer{client}, nil

	case config.StoreBackendPostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.RunMigrations(db, log); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		if err := database.GetMigrationStatus(db); err != nil {
			log.Warn("Failed to read migration status", zap.Error(err))
		}
		log.Info("Using postgres store", zap.String("host", cfg.Database.Host))
		return repository.NewPostgresKVRepository(db), nil, []io.Closer{db}, nil

	case config.StoreBackendMemory:
		log.Info("Using in-memory store, state is lost on exit")
		return repository.NewMemoryKVRepository(), nil, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newAdvisor(ctx context.Context, cfg config.AdvisorConfig, log *zap.Logger) *advisor.Advisor {
	if cfg.APIKey == "" {
		log.Warn("No advisor API key configured, stylist advice uses fallback text")
		return advisor.New(nil, cfg.Timeout, log)
	}

	provider, err := advisor.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	if err != nil {
		log.Error("Failed to create advisory provider, using fallback text", zap.Error(err))
		return advisor.New(nil, cfg.Timeout, log)
	}

	log.Info("Advisory provider ready", zap.String("model", cfg.Model))
	return advisor.New(provider, cfg.Timeout, log)
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
	)

	ctx := context.Background()

	repo, redisClient, closers, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}

	storefront := service.NewStorefrontService(
		repo,
		newAdvisor(ctx, cfg.Advisor, log),
		cart.NewCalculator(cfg.Pricing.TaxRate, cfg.Pricing.ShippingCost),
		service.NewKeys(cfg.Store.KeyPrefix),
		log,
	)
	storefront.Load(ctx)

	srv := server.NewServer(cfg, log, storefront, redisClient, closers...)

	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
