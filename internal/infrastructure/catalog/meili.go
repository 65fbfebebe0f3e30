package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/meilisearch/meilisearch-go"

	"github.com/scentmatch/backend/internal/domain"
	"github.com/scentmatch/backend/internal/infrastructure/logger"
	"github.com/scentmatch/backend/internal/infrastructure/metrics"
)

// MeiliSearcher searches a Meilisearch index of catalog hits
type MeiliSearcher struct {
	index     meilisearch.IndexManager
	indexName string
	log       logger.Logger
}

// NewMeiliSearcher creates a searcher over the given index
func NewMeiliSearcher(baseURL, apiKey, indexName string, log logger.Logger) *MeiliSearcher {
	if indexName == "" {
		indexName = "fragrances"
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	client := meilisearch.New(baseURL, meilisearch.WithAPIKey(apiKey))
	return &MeiliSearcher{
		index:     client.Index(indexName),
		indexName: indexName,
		log:       log.WithFields(map[string]interface{}{"component": "meilisearch", "index": indexName}),
	}
}

// Search runs the query against the index, filtered to one brand if requested
func (m *MeiliSearcher) Search(ctx context.Context, query domain.CatalogQuery) ([]domain.FragranceVariant, error) {
	req := &meilisearch.SearchRequest{}
	if query.Limit > 0 {
		req.Limit = int64(query.Limit)
	}
	if query.BrandID != "" {
		req.Filter = "brand_id = " + strconv.Quote(query.BrandID)
	}

	res, err := m.index.SearchWithContext(ctx, query.Text, req)
	if err != nil {
		metrics.CatalogRequests.WithLabelValues("meilisearch", "error").Inc()
		m.log.WithError(err).Warn("meilisearch query failed", map[string]interface{}{"query": query.Text})
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFailure, err)
	}

	// Hits come back loosely typed; round-trip them through JSON into Hit
	var hits []Hit
	raw, err := json.Marshal(res.Hits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFailure, err)
	}
	if err := json.Unmarshal(raw, &hits); err != nil {
		metrics.CatalogRequests.WithLabelValues("meilisearch", "error").Inc()
		return nil, fmt.Errorf("%w: failed to decode hits: %v", domain.ErrCatalogFailure, err)
	}

	if len(hits) == 0 {
		metrics.CatalogRequests.WithLabelValues("meilisearch", "not_found").Inc()
		return nil, domain.ErrNoResults
	}

	metrics.CatalogRequests.WithLabelValues("meilisearch", "ok").Inc()
	m.log.Debug("meilisearch hits", map[string]interface{}{"query": query.Text, "hits": len(hits)})
	return MapHits(hits), nil
}
