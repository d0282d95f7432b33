package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetResponseJSON(t *testing.T) {
	resp := DatasetResponse([]MatchResult{{
		Category:           "Dessert",
		Cuisine:            "French",
		MatchedIngredients: []string{"flour"},
		AllIngredients:     []string{"flour", "sugar"},
	}})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"source": "dataset",
		"matches": [{
			"Category": "Dessert",
			"Cuisine": "French",
			"MatchedIngredients": ["flour"],
			"AllIngredients": ["flour", "sugar"]
		}]
	}`, string(data))
}

func TestModelResponseJSON(t *testing.T) {
	data, err := json.Marshal(ModelResponse(UnknownPrediction()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"model","Category":"Unknown","Cuisine":"Unknown"}`, string(data))

	var decoded PredictResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SourceModel, decoded.Source)
	assert.True(t, decoded.Prediction.IsUnknown())
}
