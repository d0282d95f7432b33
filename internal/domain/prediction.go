package domain

import "encoding/json"

type Source string

const (
	SourceDataset Source = "dataset"
	SourceModel   Source = "model"
)

const UnknownLabel = "Unknown"

type Prediction struct {
	Category string `json:"Category"`
	Cuisine  string `json:"Cuisine"`
}

func UnknownPrediction() Prediction {
	return Prediction{Category: UnknownLabel, Cuisine: UnknownLabel}
}

func (p Prediction) IsUnknown() bool {
	return p.Category == UnknownLabel && p.Cuisine == UnknownLabel
}

// PredictResponse is the outcome of one ingredient query. A dataset response
// carries Matches, a model response carries the predicted pair.
type PredictResponse struct {
	Source     Source
	Matches    []MatchResult
	Prediction Prediction
}

func DatasetResponse(matches []MatchResult) *PredictResponse {
	return &PredictResponse{Source: SourceDataset, Matches: matches}
}

func ModelResponse(p Prediction) *PredictResponse {
	return &PredictResponse{Source: SourceModel, Prediction: p}
}

type datasetPayload struct {
	Source  Source        `json:"source"`
	Matches []MatchResult `json:"matches"`
}

type modelPayload struct {
	Source   Source `json:"source"`
	Category string `json:"Category"`
	Cuisine  string `json:"Cuisine"`
}

func (r PredictResponse) MarshalJSON() ([]byte, error) {
	if r.Source == SourceDataset {
		return json.Marshal(datasetPayload{Source: r.Source, Matches: r.Matches})
	}
	return json.Marshal(modelPayload{
		Source:   r.Source,
		Category: r.Prediction.Category,
		Cuisine:  r.Prediction.Cuisine,
	})
}

func (r *PredictResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Source   Source        `json:"source"`
		Matches  []MatchResult `json:"matches"`
		Category string        `json:"Category"`
		Cuisine  string        `json:"Cuisine"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Source = raw.Source
	r.Matches = raw.Matches
	r.Prediction = Prediction{Category: raw.Category, Cuisine: raw.Cuisine}
	return nil
}
