package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentmatch/backend/internal/domain"
	"github.com/scentmatch/backend/internal/infrastructure/logger"
	"github.com/scentmatch/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
	log           logger.Logger
}

// NewHandler creates a new HTTP handler. A nil search service leaves the
// fragrance endpoints answering 501.
func NewHandler(searchService *usecase.SearchService, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		searchService: searchService,
		log:           log,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scentmatch-backend",
		"version": "1.0.0",
	})
}

// SearchFragrances handles GET /api/v1/fragrances/search
func (h *Handler) SearchFragrances(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Fragrance search not configured",
		})
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GroupVariants handles POST /api/v1/variants/group
func (h *Handler) GroupVariants(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Variant grouping not configured",
		})
		return
	}

	var request domain.GroupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	response, err := h.searchService.GroupProvided(c.Request.Context(), request.Variants)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondError maps service errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, message = http.StatusBadRequest, "Invalid request"
	case errors.Is(err, domain.ErrNoResults):
		status, message = http.StatusNotFound, "No fragrances found"
	case errors.Is(err, domain.ErrRateLimited):
		status, message = http.StatusTooManyRequests, "Rate limit exceeded"
	case errors.Is(err, domain.ErrCatalogFailure):
		status, message = http.StatusBadGateway, "Fragrance catalog temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "Request timed out"
	}

	fields := map[string]interface{}{
		"status":     status,
		"path":       c.FullPath(),
		"request_id": c.GetString(requestIDKey),
	}
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed", fields)
	} else {
		h.log.WithError(err).Info("request rejected", fields)
	}

	c.JSON(status, gin.H{"error": message})
}
