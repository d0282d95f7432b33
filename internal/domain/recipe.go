package domain

import "strings"

// Recipe is one row of the corpus. Ingredients are normalized tokens.
type Recipe struct {
	Category    string   `json:"Category"`
	Cuisine     string   `json:"Cuisine"`
	Ingredients []string `json:"Ingredients"`
}

// ParseIngredients splits a comma separated ingredient list into trimmed,
// lowercased tokens. Empty tokens are dropped.
func ParseIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := NormalizeIngredient(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func NormalizeIngredient(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
