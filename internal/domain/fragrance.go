package domain

// FragranceVariant is a single catalog listing as returned by search.
// Optional numeric fields are pointers so that "not reported" stays distinct
// from zero. Notes follows the same rule: nil means the catalog did not report
// notes, an empty non-nil slice means it reported none.
type FragranceVariant struct {
	ID              string   `json:"id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Brand           string   `json:"brand"`
	BrandID         string   `json:"brand_id"`
	IntensityScore  *float64 `json:"intensity_score,omitempty"`
	LongevityHours  *float64 `json:"longevity_hours,omitempty"`
	SampleAvailable *bool    `json:"sample_available,omitempty"`
	SamplePriceUSD  *float64 `json:"sample_price_usd,omitempty"`
	PopularityScore *float64 `json:"popularity_score"`
	FragranceFamily string   `json:"fragrance_family,omitempty"`
	Notes           []string `json:"notes"`
}

// Popularity returns the popularity score, treating a missing score as 0
func (v FragranceVariant) Popularity() float64 {
	if v.PopularityScore == nil {
		return 0
	}
	return *v.PopularityScore
}

// HasSample reports whether a sample is known to be available
func (v FragranceVariant) HasSample() bool {
	return v.SampleAvailable != nil && *v.SampleAvailable
}

// BadgeType identifies a comparative badge
type BadgeType string

const (
	BadgeMostPopular BadgeType = "most_popular"
	BadgeStrongest   BadgeType = "strongest"
	BadgeLightest    BadgeType = "lightest"
	BadgeBestValue   BadgeType = "best_value"
)

// Badge is a comparative label earned by one member of a group
type Badge struct {
	Type        BadgeType `json:"type"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	VariantID   string    `json:"variant_id"`
}

// ExperienceLevel is the shopper profile a recommendation targets
type ExperienceLevel string

const (
	LevelBeginner   ExperienceLevel = "beginner"
	LevelEnthusiast ExperienceLevel = "enthusiast"
	LevelCollector  ExperienceLevel = "collector"
)

// Recommendation points a shopper profile at one member of a group
type Recommendation struct {
	Level                ExperienceLevel `json:"level"`
	RecommendedVariantID string          `json:"recommended_variant_id"`
	Confidence           float64         `json:"confidence"`
	Reasoning            string          `json:"reasoning"`
}

// VariantGroup is one product family with its representative listing
type VariantGroup struct {
	GroupID                   string             `json:"group_id"`
	GroupName                 string             `json:"group_name"`
	PrimaryVariant            FragranceVariant   `json:"primary_variant"`
	RelatedVariants           []FragranceVariant `json:"related_variants"`
	TotalVariants             int                `json:"total_variants"`
	PopularityScore           float64            `json:"popularity_score"`
	Badges                    []Badge            `json:"badges"`
	ExperienceRecommendations []Recommendation   `json:"experience_recommendations"`
}

// InputWarning describes a degraded but accepted input record
type InputWarning struct {
	VariantID string `json:"variant_id"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// GroupingResult is the full output of one grouping run
type GroupingResult struct {
	Groups   []VariantGroup `json:"groups"`
	Warnings []InputWarning `json:"warnings,omitempty"`
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}
