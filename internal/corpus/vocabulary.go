package corpus

import "github.com/actuallystonmai/recipe-predictor/internal/domain"

// Vocabulary is the set of every ingredient token in a corpus.
type Vocabulary struct {
	terms map[string]struct{}
}

func NewVocabulary(recipes []domain.Recipe) *Vocabulary {
	v := &Vocabulary{terms: make(map[string]struct{})}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			v.terms[domain.NormalizeIngredient(ing)] = struct{}{}
		}
	}
	return v
}

func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.terms[token]
	return ok
}

// IsAnyKnown reports whether at least one query token is a corpus ingredient.
func (v *Vocabulary) IsAnyKnown(query []string) bool {
	for _, q := range query {
		if v.Contains(q) {
			return true
		}
	}
	return false
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}
