package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/scentmatch/backend/internal/domain"
	"github.com/scentmatch/backend/internal/infrastructure/logger"
	"github.com/scentmatch/backend/internal/infrastructure/metrics"
)

const (
	maxAttempts      = 3
	maxResponseBytes = 4 << 20
)

// ClientConfig holds configuration for the catalog HTTP client
type ClientConfig struct {
	APIKey          string
	BaseURL         string
	RequestsPerHour int
	Timeout         time.Duration
}

// Client searches the fragrance catalog over HTTP
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	retryBase   time.Duration
	debug       bool
	log         logger.Logger
}

// NewClient creates a new catalog API client
func NewClient(config ClientConfig, log logger.Logger) *Client {
	perHour := config.RequestsPerHour
	if perHour <= 0 {
		perHour = 3600
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	// rate.Limit is requests per second
	limiter := rate.NewLimiter(rate.Limit(float64(perHour)/3600), 10)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		rateLimiter: limiter,
		retryBase:   500 * time.Millisecond,
		log:         log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

// SetDebug toggles request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retry number attempt (1-based)
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-1))
}

// Search fetches one page of fragrances matching the query
func (c *Client) Search(ctx context.Context, query domain.CatalogQuery) ([]domain.FragranceVariant, error) {
	params := url.Values{}
	params.Add("q", query.Text)
	if query.Limit > 0 {
		params.Add("limit", strconv.Itoa(query.Limit))
	}
	if query.BrandID != "" {
		params.Add("brand_id", query.BrandID)
	}
	reqURL := fmt.Sprintf("%s/v1/fragrances/search?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(c.retryBase, attempt-1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Warn("catalog request failed", map[string]interface{}{"attempt": attempt, "error": err.Error()})
			lastErr = err
			continue
		}

		body, readErr := readLimitedBody(resp.Body, maxResponseBytes)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogFailure, readErr)
			continue
		}

		if c.debug {
			c.log.Debug("catalog response", map[string]interface{}{
				"status": resp.StatusCode,
				"query":  query.Text,
				"bytes":  len(body),
			})
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			metrics.CatalogRequests.WithLabelValues("http", "not_found").Inc()
			return nil, domain.ErrNoResults
		case resp.StatusCode == http.StatusTooManyRequests:
			c.log.Warn("catalog rate limited", map[string]interface{}{"attempt": attempt})
			lastErr = fmt.Errorf("%w: catalog status %d", domain.ErrRateLimited, resp.StatusCode)
			continue
		case resp.StatusCode >= 500:
			c.log.Warn("catalog returned retryable status", map[string]interface{}{"attempt": attempt, "status": resp.StatusCode})
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogFailure, resp.StatusCode)
			continue
		default:
			metrics.CatalogRequests.WithLabelValues("http", "error").Inc()
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogFailure, resp.StatusCode, string(body))
		}

		var searchResp SearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			metrics.CatalogRequests.WithLabelValues("http", "error").Inc()
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrCatalogFailure, err)
		}

		if len(searchResp.Results) == 0 {
			metrics.CatalogRequests.WithLabelValues("http", "not_found").Inc()
			return nil, domain.ErrNoResults
		}

		metrics.CatalogRequests.WithLabelValues("http", "ok").Inc()
		return MapHits(searchResp.Results), nil
	}

	if errors.Is(lastErr, domain.ErrRateLimited) {
		metrics.CatalogRequests.WithLabelValues("http", "rate_limited").Inc()
	} else {
		metrics.CatalogRequests.WithLabelValues("http", "error").Inc()
	}
	c.log.Error("all catalog retries failed", map[string]interface{}{"query": query.Text})
	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ScentMatch/1.0")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFailure, err)
	}

	return resp, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
