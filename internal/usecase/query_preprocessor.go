package usecase

import (
	"regexp"
	"strings"

	"github.com/scentmatch/backend/internal/infrastructure/logger"
)

const maxQueryLength = 100

// QueryPreprocessor cleans shopper search text before it reaches the catalog
type QueryPreprocessor struct {
	log logger.Logger
}

// Compiled regex patterns for query preprocessing
var (
	// Bottle sizes like "100ml", "3.4 fl oz", "1.7oz"
	bottleSizePattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(fl\.?\s*)?(ml|oz|ounces?)\b`)

	// Pack/count patterns like "2 pack", "set of 3", "3x"
	packCountPattern = regexp.MustCompile(`\b\d+[-\s]*(pack|pk|pcs|pieces?)\b|\bset\s+of\s+\d+\b|\b\d+\s*x\b`)

	multiSpacePattern = regexp.MustCompile(`\s+`)

	orphanedPunctuationPattern = regexp.MustCompile(`\s+[,\-;:/|]+\s+`)
	edgePunctuationPattern     = regexp.MustCompile(`^[\s,\-;:/|]+|[\s,\-;:/|]+$`)
)

// queryNoiseWords are retail terms that never identify a fragrance
var queryNoiseWords = map[string]bool{
	"tester":       true,
	"unboxed":      true,
	"authentic":    true,
	"original":     true,
	"genuine":      true,
	"new":          true,
	"sealed":       true,
	"spray":        true,
	"vaporisateur": true,
	"natural":      true,
	"men":          true,
	"mens":         true,
	"women":        true,
	"womens":       true,
	"him":          true,
	"her":          true,
	"unisex":       true,
	"for":          true,
	"gift":         true,
	"bottle":       true,
	"travel":       true,
	"size":         true,
	"sale":         true,
	"discount":     true,
	"cheap":        true,
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(log logger.Logger) *QueryPreprocessor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &QueryPreprocessor{log: log}
}

// PreprocessQuery strips bottle sizes, pack counts and retail noise from a
// query. Concentration words are kept since they narrow the catalog search.
// If nothing survives cleaning the trimmed input is returned unchanged.
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	original := strings.TrimSpace(query)
	if original == "" {
		return ""
	}

	cleaned := strings.ToLower(original)
	cleaned = bottleSizePattern.ReplaceAllString(cleaned, " ")
	cleaned = packCountPattern.ReplaceAllString(cleaned, " ")
	cleaned = removeNoiseWords(cleaned)
	cleaned = orphanedPunctuationPattern.ReplaceAllString(cleaned, " ")
	cleaned = edgePunctuationPattern.ReplaceAllString(cleaned, "")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		cleaned = original
	}

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	p.log.Debug("preprocessed query", map[string]interface{}{
		"input":  original,
		"output": cleaned,
	})

	return cleaned
}

// removeNoiseWords removes retail terms from the query
func removeNoiseWords(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))

	for _, word := range words {
		if !queryNoiseWords[strings.Trim(word, ",.!?;:-'\"()")] {
			kept = append(kept, word)
		}
	}

	return strings.Join(kept, " ")
}
