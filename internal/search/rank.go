package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agenthands/naics/internal/core/model"
)

// Word characters include non-ASCII letters, so "Nestlé" stays one token.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// RankByOverlap orders snippets by the number of distinct query words in
// their title, keeping input order on ties, and returns the first limit.
func RankByOverlap(query string, snippets []model.Snippet, limit int) []model.Snippet {
	queryWords := wordRE.FindAllString(strings.ToLower(query), -1)

	scores := make([]int, len(snippets))
	for i, s := range snippets {
		title := map[string]struct{}{}
		for _, w := range wordRE.FindAllString(strings.ToLower(s.Title), -1) {
			title[w] = struct{}{}
		}
		matched := map[string]struct{}{}
		for _, w := range queryWords {
			if _, ok := title[w]; ok {
				matched[w] = struct{}{}
			}
		}
		scores[i] = len(matched)
	}

	idx := make([]int, len(snippets))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	if limit >= 0 && len(idx) > limit {
		idx = idx[:limit]
	}
	out := make([]model.Snippet, 0, len(idx))
	for _, i := range idx {
		out = append(out, snippets[i])
	}
	return out
}
