package match

import (
	"cmp"
	"slices"
	"strings"
)

// SuggestionThreshold is the minimal Similarity of folded names for a
// candidate to be suggested.
const SuggestionThreshold = 0.6

// FoldName case-folds an identifier for case-insensitive lookup.
func FoldName(s string) string {
	return strings.ToLower(s)
}

// EqualName compares two identifiers, optionally ignoring case.
func EqualName(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(a, b)
	}

	return a == b
}

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates closest to name, best first. Ties
// keep the candidates' order.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	folded := FoldName(name)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(folded, FoldName(c))
		if score >= SuggestionThreshold {
			hits = append(hits, scored{name: c, score: score})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
