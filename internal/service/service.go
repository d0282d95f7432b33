package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/actuallystonmai/recipe-predictor/internal/corpus"
	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/actuallystonmai/recipe-predictor/internal/matcher"
	"github.com/actuallystonmai/recipe-predictor/internal/metrics"
	"github.com/actuallystonmai/recipe-predictor/internal/model"
	"go.uber.org/zap"
)

const (
	defaultBatchConcurrency = 8
	defaultBatchMaxQueries  = 50
)

// Classifier predicts a category and cuisine for a raw ingredient string.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Prediction, error)
}

// PredictionCache memoizes classifier answers by the exact classifier input.
type PredictionCache interface {
	Get(ctx context.Context, text string) (domain.Prediction, bool, error)
	Set(ctx context.Context, text string, pred domain.Prediction) error
}

type Options struct {
	// Threshold is the minimum partial-ratio score for a dataset match.
	Threshold int
	// StrictClassifier surfaces classifier failures instead of answering
	// Unknown.
	StrictClassifier bool
	BatchConcurrency int
	BatchMaxQueries  int
}

type Service struct {
	corpus     *corpus.Corpus
	classifier Classifier
	cache      PredictionCache
	metrics    *metrics.Metrics
	logger     *zap.Logger
	opts       Options
}

// NewService wires the decision policy. cache and m may be nil.
func NewService(c *corpus.Corpus, classifier Classifier, cache PredictionCache, m *metrics.Metrics, logger *zap.Logger, opts Options) *Service {
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = defaultBatchConcurrency
	}
	if opts.BatchMaxQueries <= 0 {
		opts.BatchMaxQueries = defaultBatchMaxQueries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		corpus:     c,
		classifier: classifier,
		cache:      cache,
		metrics:    m,
		logger:     logger,
		opts:       opts,
	}
}

// Stats reports the size of the loaded corpus and its vocabulary.
func (s *Service) Stats() (recipes, vocabulary int) {
	return s.corpus.Len(), s.corpus.Vocabulary().Len()
}

// Predict answers one ingredient query: dataset matches first, then Unknown
// when no token is known to the corpus, then the classifier.
func (s *Service) Predict(ctx context.Context, ingredients string) (*domain.PredictResponse, error) {
	start := time.Now()

	raw := strings.TrimSpace(ingredients)
	tokens := domain.ParseIngredients(raw)
	if len(tokens) == 0 {
		return nil, domain.ErrInvalidInput
	}

	if matches := matcher.Match(tokens, s.corpus.Recipes(), s.opts.Threshold); len(matches) > 0 {
		s.metrics.ObserveMatches(len(matches))
		s.metrics.ObservePrediction(metrics.OutcomeDataset, time.Since(start))
		return domain.DatasetResponse(matches), nil
	}

	if !s.corpus.Vocabulary().IsAnyKnown(tokens) {
		s.metrics.ObservePrediction(metrics.OutcomeUnknown, time.Since(start))
		return domain.ModelResponse(domain.UnknownPrediction()), nil
	}

	pred, err := s.classify(ctx, raw)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.metrics.ObservePrediction(metrics.OutcomeError, time.Since(start))
			return nil, ctxErr
		}
		s.metrics.ClassifierFailure()
		s.logger.Error("classifier failed",
			zap.Strings("ingredients", tokens),
			zap.Error(err),
		)
		if s.opts.StrictClassifier {
			s.metrics.ObservePrediction(metrics.OutcomeError, time.Since(start))
			if !errors.Is(err, domain.ErrClassifierFailure) {
				err = fmt.Errorf("%w: %w", domain.ErrClassifierFailure, err)
			}
			return nil, err
		}
		s.metrics.ObservePrediction(metrics.OutcomeFallback, time.Since(start))
		return domain.ModelResponse(domain.UnknownPrediction()), nil
	}

	s.metrics.ObservePrediction(metrics.OutcomeModel, time.Since(start))
	return domain.ModelResponse(pred), nil
}

func (s *Service) classify(ctx context.Context, raw string) (domain.Prediction, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, raw)
		switch {
		case err != nil:
			s.metrics.CacheLookup(metrics.CacheError)
			s.logger.Warn("prediction cache get failed", zap.Error(err))
		case found:
			s.metrics.CacheLookup(metrics.CacheHit)
			return cached, nil
		default:
			s.metrics.CacheLookup(metrics.CacheMiss)
		}
	}

	pred, err := s.classifier.Classify(ctx, raw)
	if err != nil {
		return domain.Prediction{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, raw, pred); err != nil {
			s.logger.Warn("prediction cache set failed", zap.Error(err))
		}
	}
	return pred, nil
}

// PredictBatch runs Predict for every query on a bounded worker pool. A
// failing query is reported in its own result and does not fail the batch.
func (s *Service) PredictBatch(ctx context.Context, queries []string) (*domain.BatchResponse, error) {
	if len(queries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(queries) > s.opts.BatchMaxQueries {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrBatchTooLarge, len(queries), s.opts.BatchMaxQueries)
	}

	start := time.Now()
	results := make([]domain.BatchQueryResult, len(queries))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.BatchConcurrency) // semaphore

	for i, q := range queries {
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processQueryForBatch(ctx, idx, query)
		}(i, q)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Results: results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processQueryForBatch(ctx context.Context, idx int, query string) domain.BatchQueryResult {
	result, err := s.Predict(ctx, query)
	if err != nil {
		s.logger.Warn("batch query failed", zap.Int("index", idx), zap.Error(err))
		code, msg := categorizeError(err)
		return domain.BatchQueryResult{
			Index:       idx,
			Ingredients: query,
			Status:      domain.StatusFailed,
			Error:       code,
			Message:     msg,
		}
	}

	return domain.BatchQueryResult{
		Index:       idx,
		Ingredients: query,
		Result:      result,
		Status:      domain.StatusSuccess,
	}
}

// Handle response error
func categorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		return "invalid_input", "No ingredients provided"
	}
	if model.IsInferenceError(err) || errors.Is(err, domain.ErrClassifierFailure) {
		return "model_inference_error", "classifier failed to generate a prediction"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "request_timeout", "request timed out"
	}
	return "internal_error", "an unexpected error occurred"
}
