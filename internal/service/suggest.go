package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// closest picks the candidate within edit distance of query, ignoring case.
// Exact matches are not suggestions.
func closest(query string, candidates []string) string {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	limit := max(2, len([]rune(q))/3)

	best, bestDist := "", limit+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(q, fold.String(c))
		if d == 0 {
			continue
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
