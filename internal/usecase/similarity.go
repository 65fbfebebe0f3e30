package usecase

import (
	"strings"

	"github.com/scentmatch/backend/internal/domain"
)

// Similarity weights used when both sides carry note information
const (
	nameWeight = 0.75
	noteWeight = 0.25
)

// DefaultSimilarityThreshold is the score at which two listings are treated
// as the same underlying product
const DefaultSimilarityThreshold = 0.7

// SimilarityDetector scores how likely two listings are the same product
type SimilarityDetector struct{}

// NewSimilarityDetector creates a similarity detector
func NewSimilarityDetector() *SimilarityDetector {
	return &SimilarityDetector{}
}

// Similarity returns a score in [0,1] for two listings.
// Listings from different brands always score 0, and a name with no words
// only matches its own listing. Names are compared on their base tokens; notes
// contribute a quarter of the score only when both sides report them and at
// least one side is non-empty.
func (d *SimilarityDetector) Similarity(a, b domain.FragranceVariant) float64 {
	if a.BrandID != b.BrandID {
		return 0
	}

	baseA, baseB := baseTokens(a.Name), baseTokens(b.Name)
	if len(baseA) == 0 || len(baseB) == 0 {
		if a.ID == b.ID && a.Name == b.Name {
			return 1.0
		}
		return 0
	}

	nameSim := nameSimilarity(baseA, baseB)

	noteSim, ok := noteSimilarity(a.Notes, b.Notes)
	if !ok {
		return clamp01(nameSim)
	}

	return clamp01(nameWeight*nameSim + noteWeight*noteSim)
}

// nameSimilarity is 1 for identical base sequences and the Jaccard index of
// the token sets otherwise. A name without words matches nothing.
func nameSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if equalSequences(a, b) {
		return 1.0
	}
	return jaccard(a, b)
}

// noteSimilarity returns the Jaccard index of the note sets and whether note
// signal is available at all
func noteSimilarity(a, b []string) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	na, nb := normalizeNotes(a), normalizeNotes(b)
	if len(na) == 0 && len(nb) == 0 {
		return 0, false
	}
	return jaccard(na, nb), true
}

func normalizeNotes(notes []string) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func equalSequences(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// jaccard returns |A∩B| / |A∪B| over the distinct elements of a and b
func jaccard(a, b []string) float64 {
	union := findUnion(a, b)
	if union == 0 {
		return 0
	}
	matched, _ := findIntersection(a, b)
	return float64(matched) / float64(union)
}

// findIntersection returns the count of common tokens and the list of matched tokens
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
