package usecase

import (
	"sort"

	"github.com/scentmatch/backend/internal/domain"
)

// PrimarySelector chooses the representative listing of a cluster
type PrimarySelector struct{}

// NewPrimarySelector creates a primary selector
func NewPrimarySelector() *PrimarySelector {
	return &PrimarySelector{}
}

// SelectPrimary returns the cluster member that best represents the product.
// Members are ranked by popularity, then sample availability, then
// concentration preference (EDP, EDT, Parfum, Elixir, Extrait, other); the
// earliest member wins any remaining tie.
func (s *PrimarySelector) SelectPrimary(cluster []domain.FragranceVariant) (domain.FragranceVariant, error) {
	idx, err := s.primaryIndex(cluster)
	if err != nil {
		return domain.FragranceVariant{}, err
	}
	return cluster[idx], nil
}

// primaryIndex returns the position of the primary within cluster
func (s *PrimarySelector) primaryIndex(cluster []domain.FragranceVariant) (int, error) {
	if len(cluster) == 0 {
		return -1, domain.ErrEmptyCluster
	}

	best := 0
	bestRank := detectConcentration(cluster[0].Name)
	for i := 1; i < len(cluster); i++ {
		rank := detectConcentration(cluster[i].Name)
		if ranksBefore(cluster[i], rank, cluster[best], bestRank) {
			best, bestRank = i, rank
		}
	}

	return best, nil
}

// ranksBefore reports whether a strictly outranks b
func ranksBefore(a domain.FragranceVariant, aRank Concentration, b domain.FragranceVariant, bRank Concentration) bool {
	if a.Popularity() != b.Popularity() {
		return a.Popularity() > b.Popularity()
	}
	if a.HasSample() != b.HasSample() {
		return a.HasSample()
	}
	return aRank < bRank
}

// orderByPopularity returns members sorted by popularity descending, keeping
// input order among equals
func orderByPopularity(members []domain.FragranceVariant) []domain.FragranceVariant {
	out := make([]domain.FragranceVariant, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Popularity() > out[j].Popularity()
	})
	return out
}
