package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
)

type linearOutputArtifact struct {
	Name      string      `json:"name"`
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

type linearModelArtifact struct {
	Outputs []linearOutputArtifact `json:"outputs"`
}

// LinearModel is a multi-output linear classifier predicting the category
// (first output) and cuisine (second output) of a feature vector.
type LinearModel struct {
	category    linearOutputArtifact
	cuisine     linearOutputArtifact
	numFeatures int
}

func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var a linearModelArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	m, err := newLinearModel(a)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

func newLinearModel(a linearModelArtifact) (*LinearModel, error) {
	if len(a.Outputs) != 2 {
		return nil, fmt.Errorf("expected 2 outputs (category, cuisine), got %d", len(a.Outputs))
	}

	numFeatures := -1
	for _, out := range a.Outputs {
		if len(out.Classes) < 2 {
			return nil, fmt.Errorf("output %q needs at least 2 classes", out.Name)
		}
		rows := len(out.Classes)
		if rows == 2 && len(out.Coef) == 1 {
			rows = 1
		}
		if len(out.Coef) != rows || len(out.Intercept) != rows {
			return nil, fmt.Errorf("output %q: %d classes with %d coef rows and %d intercepts",
				out.Name, len(out.Classes), len(out.Coef), len(out.Intercept))
		}
		for _, row := range out.Coef {
			if numFeatures == -1 {
				numFeatures = len(row)
			}
			if len(row) != numFeatures {
				return nil, fmt.Errorf("output %q: ragged coef rows", out.Name)
			}
		}
	}

	return &LinearModel{
		category:    a.Outputs[0],
		cuisine:     a.Outputs[1],
		numFeatures: numFeatures,
	}, nil
}

func (m *LinearModel) NumFeatures() int {
	return m.numFeatures
}

func (m *LinearModel) Predict(features Features) (domain.Prediction, error) {
	for idx := range features {
		if idx < 0 || idx >= m.numFeatures {
			return domain.Prediction{}, &InferenceError{
				Op:  "predict",
				Msg: fmt.Sprintf("feature index %d out of range [0,%d)", idx, m.numFeatures),
			}
		}
	}
	return domain.Prediction{
		Category: decide(m.category, features),
		Cuisine:  decide(m.cuisine, features),
	}, nil
}

// decide returns the class with the highest decision value. A binary output
// with a single coefficient row picks the second class on a positive value.
func decide(out linearOutputArtifact, features Features) string {
	if len(out.Coef) == 1 {
		if score(out.Coef[0], out.Intercept[0], features) > 0 {
			return out.Classes[1]
		}
		return out.Classes[0]
	}

	best := 0
	bestScore := score(out.Coef[0], out.Intercept[0], features)
	for i := 1; i < len(out.Coef); i++ {
		if s := score(out.Coef[i], out.Intercept[i], features); s > bestScore {
			best, bestScore = i, s
		}
	}
	return out.Classes[best]
}

func score(coef []float64, intercept float64, features Features) float64 {
	s := intercept
	for idx, x := range features {
		s += coef[idx] * x
	}
	return s
}
