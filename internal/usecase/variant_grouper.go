package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scentmatch/backend/internal/domain"
	"github.com/scentmatch/backend/internal/infrastructure/logger"
	"github.com/scentmatch/backend/internal/infrastructure/metrics"
)

// GrouperConfig holds configuration for the variant grouper
type GrouperConfig struct {
	SimilarityThreshold float64
	ParallelThreshold   int
	MaxWorkers          int
}

// VariantGrouper clusters near-duplicate listings into product groups.
// It holds no per-request state and may be shared between goroutines.
type VariantGrouper struct {
	detector    *SimilarityDetector
	selector    *PrimarySelector
	badges      *BadgeAssigner
	recommender *ExperienceRecommender
	log         logger.Logger

	threshold         float64
	parallelThreshold int
	maxWorkers        int

	pickPrimary func([]domain.FragranceVariant) (int, error)
}

// NewVariantGrouper creates a grouper with the given configuration
func NewVariantGrouper(config GrouperConfig, log logger.Logger) *VariantGrouper {
	threshold := config.SimilarityThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}

	parallel := config.ParallelThreshold
	if parallel <= 0 {
		parallel = 64
	}

	workers := config.MaxWorkers
	if workers <= 0 {
		workers = 8
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	g := &VariantGrouper{
		detector:          NewSimilarityDetector(),
		selector:          NewPrimarySelector(),
		badges:            NewBadgeAssigner(),
		recommender:       NewExperienceRecommender(),
		log:               log,
		threshold:         threshold,
		parallelThreshold: parallel,
		maxWorkers:        workers,
	}
	g.pickPrimary = g.selector.primaryIndex
	return g
}

// GroupVariants clusters a result page and returns its groups sorted by
// popularity descending
func (g *VariantGrouper) GroupVariants(variants []domain.FragranceVariant) []domain.VariantGroup {
	return g.Group(variants).Groups
}

// Group clusters a result page and reports any degraded inputs alongside the
// groups. A cluster that cannot be assembled is emitted as singleton groups
// instead of being dropped.
func (g *VariantGrouper) Group(variants []domain.FragranceVariant) domain.GroupingResult {
	start := time.Now()
	defer func() {
		metrics.GroupingDuration.Observe(time.Since(start).Seconds())
	}()
	metrics.GroupingInputSize.Observe(float64(len(variants)))

	result := domain.GroupingResult{
		Groups:   []domain.VariantGroup{},
		Warnings: g.inspect(variants),
	}
	if len(variants) == 0 {
		return result
	}

	for _, members := range g.cluster(variants) {
		group, err := g.buildGroup(members)
		if err != nil {
			g.log.WithError(err).Warn("cluster failed, emitting members as singletons", map[string]interface{}{
				"size":     len(members),
				"brand_id": members[0].BrandID,
			})
			metrics.ClusterFailures.Inc()
			for _, v := range members {
				result.Groups = append(result.Groups, g.assembleGroup(v, nil))
			}
			continue
		}
		result.Groups = append(result.Groups, group)
	}

	dedupeGroupIDs(result.Groups)
	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].PopularityScore > result.Groups[j].PopularityScore
	})

	metrics.GroupsProduced.Add(float64(len(result.Groups)))
	g.log.Debug("grouped variants", map[string]interface{}{
		"variants": len(variants),
		"groups":   len(result.Groups),
		"took_ms":  time.Since(start).Milliseconds(),
	})

	return result
}

// inspect reports records that are accepted in degraded form
func (g *VariantGrouper) inspect(variants []domain.FragranceVariant) []domain.InputWarning {
	var warnings []domain.InputWarning
	for _, v := range variants {
		if v.PopularityScore == nil {
			warnings = append(warnings, domain.InputWarning{
				VariantID: v.ID,
				Field:     "popularity_score",
				Message:   "popularity_score missing, ranked as 0",
			})
			metrics.MalformedInputs.WithLabelValues("popularity_score").Inc()
		}
		if v.BrandID == "" {
			warnings = append(warnings, domain.InputWarning{
				VariantID: v.ID,
				Field:     "brand_id",
				Message:   "brand_id missing, grouped only with other listings lacking a brand",
			})
			metrics.MalformedInputs.WithLabelValues("brand_id").Inc()
		}
	}
	for _, w := range warnings {
		g.log.Warn("malformed input", map[string]interface{}{
			"variant_id": w.VariantID,
			"field":      w.Field,
		})
	}
	return warnings
}

// cluster returns the connected components of the similarity graph.
// Components are linked transitively: if A~B and B~C, A and C share a group
// even when A and C are not similar themselves.
func (g *VariantGrouper) cluster(variants []domain.FragranceVariant) [][]domain.FragranceVariant {
	uf := newUnionFind(len(variants))
	for i, row := range g.similarPairs(variants) {
		for _, j := range row {
			uf.union(i, j)
		}
	}

	components := uf.components()
	clusters := make([][]domain.FragranceVariant, 0, len(components))
	for _, idx := range components {
		members := make([]domain.FragranceVariant, 0, len(idx))
		for _, i := range idx {
			members = append(members, variants[i])
		}
		clusters = append(clusters, members)
	}
	return clusters
}

// similarPairs returns, for each i, the indices j > i whose similarity meets
// the threshold. Large pages fan rows out over a bounded worker pool; each
// worker writes only its own row.
func (g *VariantGrouper) similarPairs(variants []domain.FragranceVariant) [][]int {
	n := len(variants)
	rows := make([][]int, n)

	scan := func(i int) {
		for j := i + 1; j < n; j++ {
			if g.detector.Similarity(variants[i], variants[j]) >= g.threshold {
				rows[i] = append(rows[i], j)
			}
		}
	}

	if n < g.parallelThreshold {
		for i := 0; i < n; i++ {
			scan(i)
		}
		return rows
	}

	var eg errgroup.Group
	eg.SetLimit(g.maxWorkers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			scan(i)
			return nil
		})
	}
	_ = eg.Wait()

	return rows
}

// buildGroup turns one cluster into a group. Panics are converted to errors
// so one bad cluster cannot take down the rest of the page.
func (g *VariantGrouper) buildGroup(members []domain.FragranceVariant) (group domain.VariantGroup, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("building group: %v", r)
		}
	}()

	idx, err := g.pickPrimary(members)
	if err != nil {
		return group, err
	}

	rest := make([]domain.FragranceVariant, 0, len(members)-1)
	rest = append(rest, members[:idx]...)
	rest = append(rest, members[idx+1:]...)

	return g.assembleGroup(members[idx], rest), nil
}

// assembleGroup annotates a primary and its related listings
func (g *VariantGrouper) assembleGroup(primary domain.FragranceVariant, rest []domain.FragranceVariant) domain.VariantGroup {
	related := orderByPopularity(rest)

	ordered := make([]domain.FragranceVariant, 0, len(related)+1)
	ordered = append(ordered, primary)
	ordered = append(ordered, related...)

	base := baseTokens(primary.Name)
	name := titleCase(base)
	if name == "" {
		name = primary.Name
	}

	return domain.VariantGroup{
		GroupID:                   groupID(primary, base),
		GroupName:                 name,
		PrimaryVariant:            primary,
		RelatedVariants:           related,
		TotalVariants:             len(ordered),
		PopularityScore:           primary.Popularity(),
		Badges:                    g.badges.AssignBadges(ordered, primary),
		ExperienceRecommendations: g.recommender.GenerateRecommendations(ordered, primary),
	}
}

// groupID falls back to the primary's ID when the name has no words
func groupID(primary domain.FragranceVariant, base []string) string {
	name := strings.Join(base, "-")
	if name == "" {
		name = slugify(primary.ID)
	}
	brand := slugify(primary.BrandID)
	if brand == "" {
		return name
	}
	return brand + "-" + name
}

// dedupeGroupIDs suffixes colliding group IDs with the primary's ID, then
// with a counter until the ID is unused
func dedupeGroupIDs(groups []domain.VariantGroup) {
	seen := make(map[string]bool, len(groups))
	for i := range groups {
		id := groups[i].GroupID
		if seen[id] {
			suffixed := id + "-" + slugify(groups[i].PrimaryVariant.ID)
			id = suffixed
			for n := 2; seen[id]; n++ {
				id = fmt.Sprintf("%s-%d", suffixed, n)
			}
			groups[i].GroupID = id
		}
		seen[id] = true
	}
}
