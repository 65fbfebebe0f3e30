package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/scentmatch/backend/internal/domain"
	"github.com/scentmatch/backend/internal/infrastructure/logger"
	"github.com/scentmatch/backend/internal/infrastructure/metrics"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// Response sources
const (
	SourceCatalog = "Catalog"
	SourceRequest = "Request"
	SourceCache   = "Cache"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL     time.Duration
	DefaultLimit int
}

// SearchService fetches a result page from the catalog, groups it and
// caches the grouped response
type SearchService struct {
	cache        domain.CacheRepository
	catalog      domain.CatalogSearcher
	grouper      *VariantGrouper
	preprocessor *QueryPreprocessor
	log          logger.Logger
	cacheTTL     time.Duration
	defaultLimit int
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	cache domain.CacheRepository,
	catalog domain.CatalogSearcher,
	grouper *VariantGrouper,
	config SearchServiceConfig,
	log logger.Logger,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	limit := config.DefaultLimit
	if limit <= 0 {
		limit = 50
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &SearchService{
		cache:        cache,
		catalog:      catalog,
		grouper:      grouper,
		preprocessor: NewQueryPreprocessor(log),
		log:          log,
		cacheTTL:     cacheTTL,
		defaultLimit: limit,
	}
}

// Search looks up fragrances for a query and returns them grouped.
// Flow: check cache -> clean query -> search catalog -> group -> cache -> return
func (s *SearchService) Search(ctx context.Context, request *domain.SearchRequest) (*domain.SearchResponse, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	limit := request.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	cacheKey := s.generateCacheKey(request, limit)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		cached.Source = SourceCache
		return cached, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.log.WithError(err).Warn("cache lookup failed", map[string]interface{}{"key": cacheKey})
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	variants, err := s.catalog.Search(ctx, domain.CatalogQuery{
		Text:    s.preprocessor.PreprocessQuery(request.Query),
		BrandID: request.BrandID,
		Limit:   limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) || errors.Is(err, domain.ErrCatalogFailure) ||
			errors.Is(err, domain.ErrRateLimited) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFailure, err)
	}

	if len(variants) == 0 {
		return nil, domain.ErrNoResults
	}

	response := s.group(variants)
	response.Query = request.Query
	response.Source = SourceCatalog

	// Ungrouped fallbacks are not cached so the next request retries grouping
	if response.Grouped {
		if err := s.setInCache(ctx, cacheKey, response); err != nil {
			s.log.WithError(err).Warn("cache write failed", map[string]interface{}{"key": cacheKey})
		}
	}

	return response, nil
}

// GroupProvided groups a result page supplied by the caller
func (s *SearchService) GroupProvided(ctx context.Context, variants []domain.FragranceVariant) (*domain.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if variants == nil {
		return nil, domain.ErrInvalidRequest
	}

	response := s.group(variants)
	response.Source = SourceRequest
	return response, nil
}

// group runs the engine. If the engine fails outright the page is returned
// as-is, ungrouped and un-annotated.
func (s *SearchService) group(variants []domain.FragranceVariant) (response *domain.SearchResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("grouping engine failed, returning ungrouped results", map[string]interface{}{
				"panic":    fmt.Sprint(r),
				"variants": len(variants),
			})
			metrics.EngineFallbacks.Inc()
			response = &domain.SearchResponse{
				Grouped:      false,
				Groups:       []domain.VariantGroup{},
				Results:      variants,
				TotalResults: len(variants),
			}
		}
	}()

	result := s.grouper.Group(variants)
	return &domain.SearchResponse{
		Grouped:      true,
		Groups:       result.Groups,
		TotalResults: len(variants),
		Warnings:     result.Warnings,
	}
}

// generateCacheKey creates a normalized cache key from a search request.
// Format: "variants:{normalized_query}:{brand_id}:{limit}"
func (s *SearchService) generateCacheKey(request *domain.SearchRequest, limit int) string {
	return fmt.Sprintf("variants:%s:%s:%d",
		normalizeForCacheKey(request.Query),
		normalizeForCacheKey(request.BrandID),
		limit)
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func (s *SearchService) getFromCache(ctx context.Context, key string) (*domain.SearchResponse, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var response domain.SearchResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheMiss, err)
	}
	return &response, nil
}

func (s *SearchService) setInCache(ctx context.Context, key string, response *domain.SearchResponse) error {
	if s.cache == nil {
		return nil
	}

	stored := *response
	stored.CachedAt = time.Now()

	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}
