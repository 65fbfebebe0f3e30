package catalog

import (
	"math"
	"strings"
	"unicode"

	"github.com/scentmatch/backend/internal/domain"
)

// Hit is a fragrance record as stored by the catalog and the search index.
// It follows the scraping pipeline's record shape, where notes may arrive
// either as a list or as comma-separated top/middle/base strings.
type Hit struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	BrandID         string   `json:"brand_id"`
	IntensityScore  *float64 `json:"intensity_score"`
	LongevityHours  *float64 `json:"longevity_hours"`
	SampleAvailable *bool    `json:"sample_available"`
	SamplePriceUSD  *float64 `json:"sample_price_usd"`
	PopularityScore *float64 `json:"popularity_score"`
	RatingValue     *float64 `json:"rating_value"`
	RatingCount     *int     `json:"rating_count"`
	FragranceFamily string   `json:"fragrance_family"`
	Notes           []string `json:"notes"`
	TopNotes        string   `json:"top_notes"`
	MiddleNotes     string   `json:"middle_notes"`
	BaseNotes       string   `json:"base_notes"`
}

// SearchResponse is the body returned by the catalog search endpoint
type SearchResponse struct {
	Results []Hit `json:"results"`
	Total   int   `json:"total"`
}

// MapToVariant converts a catalog hit into the grouping engine's input record
func MapToVariant(hit Hit) domain.FragranceVariant {
	brandID := hit.BrandID
	if brandID == "" {
		brandID = slugify(hit.Brand)
	}

	variant := domain.FragranceVariant{
		ID:              hit.ID,
		Name:            strings.TrimSpace(hit.Name),
		Brand:           hit.Brand,
		BrandID:         brandID,
		IntensityScore:  hit.IntensityScore,
		LongevityHours:  hit.LongevityHours,
		SampleAvailable: hit.SampleAvailable,
		PopularityScore: popularity(hit),
		FragranceFamily: hit.FragranceFamily,
		Notes:           extractNotes(hit),
	}

	// price only means something when a sample can actually be bought
	if hit.SampleAvailable != nil && *hit.SampleAvailable {
		variant.SamplePriceUSD = hit.SamplePriceUSD
	}

	return variant
}

// MapHits converts a page of hits, preserving catalog order
func MapHits(hits []Hit) []domain.FragranceVariant {
	variants := make([]domain.FragranceVariant, 0, len(hits))
	for _, hit := range hits {
		variants = append(variants, MapToVariant(hit))
	}
	return variants
}

// extractNotes returns the explicit note list if present, otherwise the
// flattened pyramid strings. nil means the catalog reported no notes at all.
func extractNotes(hit Hit) []string {
	if hit.Notes != nil {
		notes := make([]string, len(hit.Notes))
		copy(notes, hit.Notes)
		return notes
	}

	if hit.TopNotes == "" && hit.MiddleNotes == "" && hit.BaseNotes == "" {
		return nil
	}

	notes := []string{}
	seen := make(map[string]bool)
	for _, layer := range []string{hit.TopNotes, hit.MiddleNotes, hit.BaseNotes} {
		for _, note := range strings.Split(layer, ",") {
			note = strings.TrimSpace(note)
			key := strings.ToLower(note)
			if note == "" || seen[key] {
				continue
			}
			seen[key] = true
			notes = append(notes, note)
		}
	}
	return notes
}

// popularity returns the reported popularity, or derives one on a 0-100
// scale from the rating when the catalog has no popularity score. Ratings
// with few votes are discounted; 1000 votes earn full weight.
func popularity(hit Hit) *float64 {
	if hit.PopularityScore != nil {
		return hit.PopularityScore
	}
	if hit.RatingValue == nil || hit.RatingCount == nil || *hit.RatingCount <= 0 {
		return nil
	}

	weight := math.Min(1, math.Log10(float64(*hit.RatingCount)+1)/3)
	score := (*hit.RatingValue / 5) * 100 * weight
	score = math.Round(score*100) / 100
	return &score
}

func slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, "-")
}
