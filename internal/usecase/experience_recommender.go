package usecase

import (
	"fmt"

	"github.com/scentmatch/backend/internal/domain"
)

// Recommendation confidence by the signal that picked the variant
const (
	confidenceIntensity     = 0.85
	confidenceConcentration = 0.8
	confidencePrimary       = 0.6
	confidenceEnthusiast    = 0.9
)

// ExperienceRecommender maps a cluster to beginner, enthusiast and collector picks
type ExperienceRecommender struct{}

// NewExperienceRecommender creates an experience recommender
func NewExperienceRecommender() *ExperienceRecommender {
	return &ExperienceRecommender{}
}

// GenerateRecommendations returns exactly one recommendation per experience level
func (r *ExperienceRecommender) GenerateRecommendations(cluster []domain.FragranceVariant, primary domain.FragranceVariant) []domain.Recommendation {
	if len(cluster) == 0 {
		cluster = []domain.FragranceVariant{primary}
	}

	return []domain.Recommendation{
		r.beginner(cluster, primary),
		{
			Level:                domain.LevelEnthusiast,
			RecommendedVariantID: primary.ID,
			Confidence:           confidenceEnthusiast,
			Reasoning: fmt.Sprintf(
				"%s is the balanced, most widely loved version and the one most people reach for when they know this scent.",
				primary.Name),
		},
		r.collector(cluster, primary),
	}
}

func (r *ExperienceRecommender) beginner(cluster []domain.FragranceVariant, primary domain.FragranceVariant) domain.Recommendation {
	rec := domain.Recommendation{Level: domain.LevelBeginner}

	if v, ok := extremeIntensity(cluster, false); ok {
		rec.RecommendedVariantID = v.ID
		rec.Confidence = confidenceIntensity
		rec.Reasoning = fmt.Sprintf(
			"%s has the lightest intensity in this line, a gentler and easier introduction if you are new to the scent.",
			v.Name)
		return rec
	}

	if v, ok := firstWithConcentration(cluster, ConcentrationEDT); ok {
		rec.RecommendedVariantID = v.ID
		rec.Confidence = confidenceConcentration
		rec.Reasoning = fmt.Sprintf(
			"%s is the Eau de Toilette, a lighter concentration that makes an easy, versatile first step into this scent.",
			v.Name)
		return rec
	}

	rec.RecommendedVariantID = primary.ID
	rec.Confidence = confidencePrimary
	rec.Reasoning = fmt.Sprintf(
		"%s is the most approachable starting point we can identify for newcomers to this fragrance.",
		primary.Name)
	return rec
}

func (r *ExperienceRecommender) collector(cluster []domain.FragranceVariant, primary domain.FragranceVariant) domain.Recommendation {
	rec := domain.Recommendation{Level: domain.LevelCollector}

	if v, ok := extremeIntensity(cluster, true); ok {
		rec.RecommendedVariantID = v.ID
		rec.Confidence = confidenceIntensity
		rec.Reasoning = fmt.Sprintf(
			"%s is the most intense interpretation, with a richer composition that rewards an experienced nose.",
			v.Name)
		return rec
	}

	for _, c := range []Concentration{ConcentrationExtrait, ConcentrationElixir} {
		if v, ok := firstWithConcentration(cluster, c); ok {
			rec.RecommendedVariantID = v.ID
			rec.Confidence = confidenceConcentration
			rec.Reasoning = fmt.Sprintf(
				"%s is the %s edition, a rarer and more sophisticated concentration prized by collectors.",
				v.Name, c)
			return rec
		}
	}

	rec.RecommendedVariantID = primary.ID
	rec.Confidence = confidencePrimary
	rec.Reasoning = fmt.Sprintf(
		"%s is the reference version of this fragrance and a sound anchor for any serious collection.",
		primary.Name)
	return rec
}

// extremeIntensity returns the member with the highest (strongest=true) or
// lowest intensity among those that report one; the first member wins ties
func extremeIntensity(cluster []domain.FragranceVariant, strongest bool) (domain.FragranceVariant, bool) {
	var pick domain.FragranceVariant
	found := false
	for _, v := range cluster {
		if v.IntensityScore == nil {
			continue
		}
		if !found {
			pick, found = v, true
			continue
		}
		if strongest && *v.IntensityScore > *pick.IntensityScore {
			pick = v
		}
		if !strongest && *v.IntensityScore < *pick.IntensityScore {
			pick = v
		}
	}
	return pick, found
}

func firstWithConcentration(cluster []domain.FragranceVariant, c Concentration) (domain.FragranceVariant, bool) {
	for _, v := range cluster {
		if detectConcentration(v.Name) == c {
			return v, true
		}
	}
	return domain.FragranceVariant{}, false
}
