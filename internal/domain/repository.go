package domain

import (
	"context"
	"time"
)

// CacheRepository stores serialized search responses
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogSearcher retrieves candidate fragrance listings for a query.
// Ranking and retrieval belong to the catalog; the grouping engine only
// consumes the returned page.
type CatalogSearcher interface {
	Search(ctx context.Context, query CatalogQuery) ([]FragranceVariant, error)
}
