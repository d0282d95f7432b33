package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// rows per INSERT; 3 parameters each stays well under the 65535 limit
const batchSize = 1000

// Setup replaces the recipes table with the given corpus.
func Setup(ctx context.Context, pool *pgxpool.Pool, recipes []domain.Recipe, logger *zap.Logger) error {
	logger.Info("[seed] truncating existing recipes")
	if _, err := pool.Exec(ctx, `TRUNCATE recipes RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	for start := 0; start < len(recipes); start += batchSize {
		end := min(start+batchSize, len(recipes))
		query, args := buildInsert(recipes[start:end])
		if query == "" {
			continue
		}
		if _, err := pool.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert recipes %d-%d: %w", start, end, err)
		}
		logger.Info("[seed] inserted recipes", zap.Int("from", start), zap.Int("to", end))
	}

	logger.Info("[seed] seeding complete", zap.Int("recipes", len(recipes)))
	return nil
}

func buildInsert(recipes []domain.Recipe) (string, []any) {
	rows := []string{}
	args := []any{}

	for _, r := range recipes {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, r.Category, r.Cuisine, strings.Join(r.Ingredients, ", "))
	}

	if len(rows) == 0 {
		return "", nil
	}

	query := "INSERT INTO recipes (category, cuisine, ingredients) VALUES " +
		strings.Join(rows, ", ")
	return query, args
}
