package usecase

import (
	"fmt"

	"github.com/scentmatch/backend/internal/domain"
)

// BadgeAssigner labels cluster members relative to their peers
type BadgeAssigner struct{}

// NewBadgeAssigner creates a badge assigner
func NewBadgeAssigner() *BadgeAssigner {
	return &BadgeAssigner{}
}

// AssignBadges computes the comparative badges of a cluster. Badges are
// independent of each other, so one member may collect several.
func (b *BadgeAssigner) AssignBadges(cluster []domain.FragranceVariant, primary domain.FragranceVariant) []domain.Badge {
	if len(cluster) == 0 {
		cluster = []domain.FragranceVariant{primary}
	}

	badges := []domain.Badge{mostPopularBadge(cluster)}
	if len(cluster) == 1 {
		// comparative badges need at least one peer
		return badges
	}

	if strongest, lightest, ok := intensityExtremes(cluster); ok {
		badges = append(badges,
			domain.Badge{
				Type:        domain.BadgeStrongest,
				Label:       "Strongest",
				Description: fmt.Sprintf("%s is the most intense option, with long-lasting projection and wear.", strongest.Name),
				VariantID:   strongest.ID,
			},
			domain.Badge{
				Type:        domain.BadgeLightest,
				Label:       "Lightest",
				Description: fmt.Sprintf("%s is the freshest, most subtle take on this scent.", lightest.Name),
				VariantID:   lightest.ID,
			},
		)
	}

	if cheapest, ok := bestValue(cluster); ok {
		badges = append(badges, domain.Badge{
			Type:        domain.BadgeBestValue,
			Label:       "Best Value",
			Description: fmt.Sprintf("%s has the lowest sample price at $%.2f.", cheapest.Name, *cheapest.SamplePriceUSD),
			VariantID:   cheapest.ID,
		})
	}

	return badges
}

func mostPopularBadge(cluster []domain.FragranceVariant) domain.Badge {
	top := cluster[0]
	for _, v := range cluster[1:] {
		if v.Popularity() > top.Popularity() {
			top = v
		}
	}
	return domain.Badge{
		Type:        domain.BadgeMostPopular,
		Label:       "Most Popular",
		Description: fmt.Sprintf("%s is the most popular choice among shoppers.", top.Name),
		VariantID:   top.ID,
	}
}

// intensityExtremes returns the strongest and lightest members. ok is false
// unless at least two members report intensity and their values differ.
func intensityExtremes(cluster []domain.FragranceVariant) (strongest, lightest domain.FragranceVariant, ok bool) {
	var rated []domain.FragranceVariant
	for _, v := range cluster {
		if v.IntensityScore != nil {
			rated = append(rated, v)
		}
	}
	if len(rated) < 2 {
		return strongest, lightest, false
	}

	strongest, lightest = rated[0], rated[0]
	for _, v := range rated[1:] {
		if *v.IntensityScore > *strongest.IntensityScore {
			strongest = v
		}
		if *v.IntensityScore < *lightest.IntensityScore {
			lightest = v
		}
	}

	if *strongest.IntensityScore == *lightest.IntensityScore {
		return strongest, lightest, false
	}
	return strongest, lightest, true
}

// bestValue returns the cheapest member with an available, priced sample
func bestValue(cluster []domain.FragranceVariant) (domain.FragranceVariant, bool) {
	var cheapest domain.FragranceVariant
	found := false
	for _, v := range cluster {
		if !v.HasSample() || v.SamplePriceUSD == nil {
			continue
		}
		if !found || *v.SamplePriceUSD < *cheapest.SamplePriceUSD {
			cheapest = v
			found = true
		}
	}
	return cheapest, found
}
