package domain

import "time"

// SearchRequest represents a grouped fragrance search request
type SearchRequest struct {
	Query   string `form:"q" json:"q" binding:"required"`
	BrandID string `form:"brand_id" json:"brand_id,omitempty"`
	Limit   int    `form:"limit" json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// GroupRequest carries a caller-supplied result page to be grouped
type GroupRequest struct {
	Variants []FragranceVariant `json:"variants" binding:"required,dive"`
}

// CatalogQuery is the query handed to a catalog backend
type CatalogQuery struct {
	Text    string
	BrandID string
	Limit   int
}

// SearchResponse is returned to HTTP callers.
// When Grouped is false the engine failed and Results holds the original,
// un-annotated page.
type SearchResponse struct {
	Query        string             `json:"query,omitempty"`
	Grouped      bool               `json:"grouped"`
	Groups       []VariantGroup     `json:"groups"`
	Results      []FragranceVariant `json:"results,omitempty"`
	TotalResults int                `json:"total_results"`
	Warnings     []InputWarning     `json:"warnings,omitempty"`
	Source       string             `json:"source"` // "Catalog", "Request" or "Cache"
	CachedAt     time.Time          `json:"cached_at,omitzero"`
}
