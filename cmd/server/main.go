package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/scentmatch/backend/config"
	httpDelivery "github.com/scentmatch/backend/internal/delivery/http"
	"github.com/scentmatch/backend/internal/domain"
	"github.com/scentmatch/backend/internal/infrastructure/cache"
	"github.com/scentmatch/backend/internal/infrastructure/catalog"
	"github.com/scentmatch/backend/internal/infrastructure/logger"
	"github.com/scentmatch/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()
	appLog := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ScentMatch Backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type),
		zap.String("catalog", cfg.Catalog.Backend),
	)

	// Initialize infrastructure dependencies
	cacheRepo, closeCache, err := newCache(cfg.Cache)
	if err != nil {
		zapLog.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer closeCache()

	searcher := newCatalog(cfg, appLog)
	if cfg.Catalog.APIKey == "" {
		zapLog.Warn("Catalog API key not configured, requests may be rejected",
			zap.String("base_url", cfg.Catalog.BaseURL))
	}

	// Initialize usecase layer
	grouper := usecase.NewVariantGrouper(usecase.GrouperConfig{
		SimilarityThreshold: cfg.Grouping.SimilarityThreshold,
		ParallelThreshold:   cfg.Grouping.ParallelThreshold,
		MaxWorkers:          cfg.Grouping.MaxWorkers,
	}, appLog)

	searchService := usecase.NewSearchService(
		cacheRepo,
		searcher,
		grouper,
		usecase.SearchServiceConfig{
			CacheTTL:     cfg.Cache.TTL,
			DefaultLimit: cfg.Catalog.MaxResults,
		},
		appLog,
	)

	zapLog.Info("Grouping configured",
		zap.Float64("similarity_threshold", cfg.Grouping.SimilarityThreshold),
		zap.Int("parallel_threshold", cfg.Grouping.ParallelThreshold),
		zap.Int("max_workers", cfg.Grouping.MaxWorkers),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	handler := httpDelivery.NewHandler(searchService, appLog)
	router := httpDelivery.SetupRouter(cfg, handler, appLog)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	zapLog.Info("Shutdown signal received, draining requests...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}

// newCache returns the configured cache and a function that releases it
func newCache(cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, "scentmatch:")
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	default:
		memoryCache := cache.NewMemoryCache(0)
		return memoryCache, func() { _ = memoryCache.Close() }, nil
	}
}

func newCatalog(cfg *config.Config, log logger.Logger) domain.CatalogSearcher {
	if cfg.Catalog.Backend == "meilisearch" {
		return catalog.NewMeiliSearcher(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.IndexName, log)
	}

	client := catalog.NewClient(catalog.ClientConfig{
		APIKey:          cfg.Catalog.APIKey,
		BaseURL:         cfg.Catalog.BaseURL,
		RequestsPerHour: cfg.Catalog.RequestsPerHour,
		Timeout:         cfg.Catalog.Timeout,
	}, log)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
	}
	return client
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
