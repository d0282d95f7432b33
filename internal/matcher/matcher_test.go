package matcher

import (
	"testing"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipes() []domain.Recipe {
	return []domain.Recipe{
		{Category: "Dessert", Cuisine: "French", Ingredients: []string{"flour", "sugar", "egg"}},
		{Category: "Main", Cuisine: "Japanese", Ingredients: []string{"rice", "nori", "salmon"}},
		{Category: "Breakfast", Cuisine: "American", Ingredients: []string{"egg", "bacon", "flour", "milk"}},
		{Category: "Salad", Cuisine: "Greek", Ingredients: []string{"tomato", "cucumber", "feta"}},
	}
}

func TestMatchFlourEggs(t *testing.T) {
	recipes := []domain.Recipe{
		{Category: "Dessert", Cuisine: "French", Ingredients: []string{"flour", "sugar", "egg"}},
	}

	matches := Match([]string{"flour", "eggs"}, recipes, DefaultThreshold)
	require.Len(t, matches, 1)
	assert.Equal(t, "Dessert", matches[0].Category)
	assert.ElementsMatch(t, []string{"flour", "egg"}, matches[0].MatchedIngredients)
	assert.Equal(t, []string{"flour", "sugar", "egg"}, matches[0].AllIngredients)
}

func TestMatchNothing(t *testing.T) {
	assert.Empty(t, Match([]string{"durian"}, testRecipes(), DefaultThreshold))
}

func TestMatchExactTokensAlwaysFound(t *testing.T) {
	recipes := testRecipes()
	for i, r := range recipes {
		for _, threshold := range []int{0, 50, 80, 100} {
			matches := Match(r.Ingredients, recipes, threshold)
			found := false
			for _, m := range matches {
				if m.Category == recipes[i].Category && m.Cuisine == recipes[i].Cuisine {
					found = true
				}
			}
			assert.True(t, found, "recipe %d at threshold %d", i, threshold)
		}
	}
}

func TestMatchRanking(t *testing.T) {
	matches := Match([]string{"egg", "flour", "milk"}, testRecipes(), DefaultThreshold)
	require.Len(t, matches, 2)
	assert.Equal(t, "Breakfast", matches[0].Category)
	assert.Len(t, matches[0].MatchedIngredients, 3)
	assert.Equal(t, "Dessert", matches[1].Category)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, len(matches[i-1].MatchedIngredients), len(matches[i].MatchedIngredients))
	}
}

func TestMatchTiesKeepCorpusOrder(t *testing.T) {
	matches := Match([]string{"egg"}, testRecipes(), DefaultThreshold)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dessert", matches[0].Category)
	assert.Equal(t, "Breakfast", matches[1].Category)
}

func TestMatchFirstMatchWins(t *testing.T) {
	recipes := []domain.Recipe{
		{Category: "Dessert", Cuisine: "French", Ingredients: []string{"brown sugar", "sugar"}},
	}
	matches := Match([]string{"sugar"}, recipes, DefaultThreshold)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"brown sugar"}, matches[0].MatchedIngredients)
}

func TestMatchDeduplicates(t *testing.T) {
	recipes := []domain.Recipe{
		{Category: "Dessert", Cuisine: "French", Ingredients: []string{"egg", "flour"}},
	}
	matches := Match([]string{"egg", "eggs"}, recipes, DefaultThreshold)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"egg"}, matches[0].MatchedIngredients)
}

func TestMatchedIsSubsetOfAll(t *testing.T) {
	for _, m := range Match([]string{"egg", "rice", "tomatoes", "salt"}, testRecipes(), 60) {
		assert.Subset(t, m.AllIngredients, m.MatchedIngredients)
	}
}

func TestMatchThresholdMonotonic(t *testing.T) {
	query := []string{"eggs", "ric", "feta cheese", "sugar"}
	recipes := testRecipes()
	thresholds := []int{0, 20, 40, 60, 80, 90, 100, 101}

	included := func(threshold int) map[string]bool {
		out := make(map[string]bool)
		for _, m := range Match(query, recipes, threshold) {
			out[m.Category] = true
		}
		return out
	}

	for i := 1; i < len(thresholds); i++ {
		lower := included(thresholds[i-1])
		higher := included(thresholds[i])
		for category := range higher {
			assert.True(t, lower[category], "%s appears at %d but not at %d", category, thresholds[i], thresholds[i-1])
		}
	}
	assert.Empty(t, included(101))
}

func TestMatchDoesNotShareAllIngredients(t *testing.T) {
	recipes := testRecipes()
	matches := Match([]string{"rice"}, recipes, DefaultThreshold)
	require.Len(t, matches, 1)

	matches[0].AllIngredients[0] = "changed"
	assert.Equal(t, "rice", recipes[1].Ingredients[0])
}
