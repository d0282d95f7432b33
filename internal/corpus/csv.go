package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
)

const (
	columnCategory    = "category"
	columnCuisine     = "cuisine"
	columnIngredients = "ingredients"
)

// LoadCSV reads a recipe table from disk. See ReadCSV.
func LoadCSV(path string) ([]domain.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	recipes, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return recipes, nil
}

// ReadCSV parses a table with Category, Cuisine and Ingredients columns
// (matched case-insensitively, extra columns ignored). Rows with an empty
// required field are skipped.
func ReadCSV(r io.Reader) ([]domain.Recipe, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrCorpusEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnCategory, columnCuisine, columnIngredients} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var recipes []domain.Recipe
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		category := field(row, columnCategory)
		cuisine := field(row, columnCuisine)
		ingredients := field(row, columnIngredients)
		if category == "" || cuisine == "" || ingredients == "" {
			continue
		}
		recipes = append(recipes, domain.Recipe{
			Category:    category,
			Cuisine:     cuisine,
			Ingredients: domain.ParseIngredients(ingredients),
		})
	}
	return recipes, nil
}
