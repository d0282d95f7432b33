package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictBatch(t *testing.T) {
	spy := &spyClassifier{}
	svc := newTestService(spy, Options{BatchConcurrency: 2})

	resp, err := svc.PredictBatch(context.Background(), []string{"flour, eggs", "durian", "  "})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, domain.StatusSuccess, resp.Results[0].Status)
	assert.Equal(t, domain.SourceDataset, resp.Results[0].Result.Source)

	assert.Equal(t, domain.StatusSuccess, resp.Results[1].Status)
	assert.True(t, resp.Results[1].Result.Prediction.IsUnknown())

	assert.Equal(t, domain.StatusFailed, resp.Results[2].Status)
	assert.Equal(t, "invalid_input", resp.Results[2].Error)
	assert.Nil(t, resp.Results[2].Result)

	for i, r := range resp.Results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, 2, resp.Summary.SuccessCount)
	assert.Equal(t, 1, resp.Summary.FailedCount)
	assert.NotEmpty(t, resp.Metadata.GeneratedAt)
}

func TestPredictBatchLimits(t *testing.T) {
	svc := newTestService(&spyClassifier{}, Options{BatchMaxQueries: 3})

	_, err := svc.PredictBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	queries := make([]string, 4)
	for i := range queries {
		queries[i] = fmt.Sprintf("flour %d", i)
	}
	_, err = svc.PredictBatch(context.Background(), queries)
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)

	resp, err := svc.PredictBatch(context.Background(), queries[:3])
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Summary.SuccessCount)
}
