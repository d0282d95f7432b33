package domain

// MatchResult is a corpus recipe that shares at least one fuzzily matched
// ingredient with the query.
type MatchResult struct {
	Category           string   `json:"Category"`
	Cuisine            string   `json:"Cuisine"`
	MatchedIngredients []string `json:"MatchedIngredients"`
	AllIngredients     []string `json:"AllIngredients"`
}
