// Package corpus holds the in-memory recipe table and the ingredient
// vocabulary derived from it. A Corpus is read-only once built and safe for
// concurrent use.
package corpus

import (
	"strings"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
)

type Corpus struct {
	recipes []domain.Recipe
	vocab   *Vocabulary
	dropped int
}

// New copies recipes into a corpus. Ingredient tokens are normalized and rows
// missing a category, cuisine or any ingredient are dropped.
func New(recipes []domain.Recipe) *Corpus {
	c := &Corpus{recipes: make([]domain.Recipe, 0, len(recipes))}
	for _, r := range recipes {
		category := strings.TrimSpace(r.Category)
		cuisine := strings.TrimSpace(r.Cuisine)

		ingredients := make([]string, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			if t := domain.NormalizeIngredient(ing); t != "" {
				ingredients = append(ingredients, t)
			}
		}

		if category == "" || cuisine == "" || len(ingredients) == 0 {
			c.dropped++
			continue
		}
		c.recipes = append(c.recipes, domain.Recipe{
			Category:    category,
			Cuisine:     cuisine,
			Ingredients: ingredients,
		})
	}
	c.vocab = NewVocabulary(c.recipes)
	return c
}

// Recipes returns the corpus rows in load order. Callers must not modify them.
func (c *Corpus) Recipes() []domain.Recipe {
	return c.recipes
}

func (c *Corpus) Len() int {
	return len(c.recipes)
}

// Dropped reports how many input rows were rejected by New.
func (c *Corpus) Dropped() int {
	return c.dropped
}

func (c *Corpus) Vocabulary() *Vocabulary {
	return c.vocab
}
