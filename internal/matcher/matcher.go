// Package matcher finds corpus recipes whose ingredients fuzzily intersect a
// query.
package matcher

import (
	"sort"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
)

const DefaultThreshold = 80

// Match scans every recipe and, for each query token, records the first
// recipe ingredient whose PartialRatio against the token reaches threshold.
// Recipes without a match are left out. Results are ordered by the number of
// distinct matched ingredients, descending; equal counts keep corpus order.
//
// An exact ingredient always scores 100, so a threshold above 100 disables
// matching entirely.
func Match(query []string, recipes []domain.Recipe, threshold int) []domain.MatchResult {
	minScore := float64(threshold)
	var matches []domain.MatchResult

	for _, recipe := range recipes {
		var matched []string
		seen := make(map[string]struct{}, len(query))

		for _, q := range query {
			for _, ing := range recipe.Ingredients {
				if PartialRatio(q, ing) < minScore {
					continue
				}
				if _, dup := seen[ing]; !dup {
					seen[ing] = struct{}{}
					matched = append(matched, ing)
				}
				break
			}
		}

		if len(matched) == 0 {
			continue
		}
		all := make([]string, len(recipe.Ingredients))
		copy(all, recipe.Ingredients)
		matches = append(matches, domain.MatchResult{
			Category:           recipe.Category,
			Cuisine:            recipe.Cuisine,
			MatchedIngredients: matched,
			AllIngredients:     all,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].MatchedIngredients) > len(matches[j].MatchedIngredients)
	})
	return matches
}
