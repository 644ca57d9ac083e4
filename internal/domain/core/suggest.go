package core

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const minSuggestionSimilarity = 0.5

// NormalizeName folds a name to lower-case ASCII so that Hangul and romanized
// input compare on the same footing.
func NormalizeName(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if n := len([]rune(b)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// Suggest returns the candidate closest to input, or "" when nothing is similar enough.
func Suggest(input string, candidates []string) string {
	needle := NormalizeName(input)
	if needle == "" || len(candidates) == 0 {
		return ""
	}
	byKey := make(map[string]string, len(candidates))
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := NormalizeName(c)
		if key == needle {
			return c
		}
		if _, ok := byKey[key]; ok {
			continue
		}
		byKey[key] = c
		keys = append(keys, key)
	}

	best := closestmatch.New(keys, []int{2, 3}).Closest(needle)
	if best == "" || similarity(needle, best) < minSuggestionSimilarity {
		return ""
	}
	return byKey[best]
}
