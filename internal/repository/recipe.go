package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
)

// LoadRecipes returns every complete recipe row in insertion order.
func (r *Repository) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, cuisine, ingredients
		FROM recipes
		WHERE category IS NOT NULL AND cuisine IS NOT NULL AND ingredients IS NOT NULL
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var category, cuisine, ingredients string
		if err := rows.Scan(&category, &cuisine, &ingredients); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, domain.Recipe{
			Category:    category,
			Cuisine:     cuisine,
			Ingredients: domain.ParseIngredients(ingredients),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over recipes: %w", err)
	}
	return recipes, nil
}

// Count recipes
func (r *Repository) CountRecipes(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM recipes`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return total, nil
}
