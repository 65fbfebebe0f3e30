package domain

import "errors"

var (
	// ErrEmptyCluster is returned when a primary variant is requested for an empty cluster
	ErrEmptyCluster = errors.New("empty cluster")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoResults is returned when the catalog has no fragrances for a query
	ErrNoResults = errors.New("no fragrances found")

	// ErrCatalogFailure is returned when the catalog backend request fails
	ErrCatalogFailure = errors.New("catalog request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
