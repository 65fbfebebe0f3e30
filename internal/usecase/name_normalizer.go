package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// editionVocabulary is the closed set of concentration/edition words that may
// be stripped from the end of a fragrance name
var editionVocabulary = map[string]bool{
	"eau":      true,
	"de":       true,
	"du":       true,
	"parfum":   true,
	"toilette": true,
	"edt":      true,
	"edp":      true,
	"edc":      true,
	"elixir":   true,
	"extrait":  true,
	"cologne":  true,
	"intense":  true,
	"absolu":   true,
}

// Concentration is the strength category encoded in a listing name.
// Lower values are preferred when choosing a representative listing.
type Concentration int

const (
	ConcentrationEDP Concentration = iota
	ConcentrationEDT
	ConcentrationParfum
	ConcentrationElixir
	ConcentrationExtrait
	ConcentrationOther
)

func (c Concentration) String() string {
	switch c {
	case ConcentrationEDP:
		return "Eau de Parfum"
	case ConcentrationEDT:
		return "Eau de Toilette"
	case ConcentrationParfum:
		return "Parfum"
	case ConcentrationElixir:
		return "Elixir"
	case ConcentrationExtrait:
		return "Extrait"
	default:
		return "Other"
	}
}

// tokenizeName splits a name into NFKC-normalized lowercase words.
// Anything that is not a letter or digit separates words.
func tokenizeName(name string) []string {
	normalized := strings.ToLower(norm.NFKC.String(name))
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// baseTokens returns the name's words with the trailing run of edition
// vocabulary removed. Vocabulary that leads or sits inside the product name
// ("Eau Sauvage") is kept. A name made only of vocabulary keeps all of its
// words so that it still has an identity.
func baseTokens(name string) []string {
	tokens := tokenizeName(name)

	end := len(tokens)
	for end > 0 && editionVocabulary[tokens[end-1]] {
		end--
	}
	if end == 0 {
		return tokens
	}
	return tokens[:end]
}

// detectConcentration reads the concentration from the original listing name
func detectConcentration(name string) Concentration {
	tokens := tokenizeName(name)

	has := func(word string) bool {
		for _, t := range tokens {
			if t == word {
				return true
			}
		}
		return false
	}

	switch {
	case has("edp") || containsPhrase(tokens, "eau", "de", "parfum"):
		return ConcentrationEDP
	case has("edt") || containsPhrase(tokens, "eau", "de", "toilette"):
		return ConcentrationEDT
	case has("extrait"):
		return ConcentrationExtrait
	case has("elixir"):
		return ConcentrationElixir
	case has("parfum"):
		return ConcentrationParfum
	default:
		return ConcentrationOther
	}
}

// containsPhrase reports whether phrase occurs as a contiguous run in tokens
func containsPhrase(tokens []string, phrase ...string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		matched := true
		for j, word := range phrase {
			if tokens[i+j] != word {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// slugify lowercases and joins the words of s with dashes
func slugify(s string) string {
	return strings.Join(tokenizeName(s), "-")
}

// titleCase renders base tokens as a display name, e.g. "Eau Sauvage"
func titleCase(tokens []string) string {
	// cases.Caser keeps internal state, so each call gets its own
	return cases.Title(language.Und).String(strings.Join(tokens, " "))
}
