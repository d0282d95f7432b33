// Package model provides the fallback classifier: a text vectorizer and a
// trained predictor, loaded from exported artifacts or reached over HTTP.
package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
)

// Features is a sparse feature vector keyed by column index.
type Features map[int]float64

type Vectorizer interface {
	Vectorize(text string) (Features, error)
}

type Predictor interface {
	Predict(features Features) (domain.Prediction, error)
}

// InferenceError reports a failure inside vectorization or prediction.
type InferenceError struct {
	Op  string
	Msg string
	Err error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Is makes every InferenceError match domain.ErrClassifierFailure.
func (e *InferenceError) Is(target error) bool {
	return target == domain.ErrClassifierFailure
}

func IsInferenceError(err error) bool {
	var target *InferenceError
	return errors.As(err, &target)
}

// Pipeline chains a Vectorizer and a Predictor.
type Pipeline struct {
	vectorizer Vectorizer
	predictor  Predictor
}

func NewPipeline(v Vectorizer, p Predictor) *Pipeline {
	return &Pipeline{vectorizer: v, predictor: p}
}

// LoadPipeline reads the vectorizer and model artifacts from disk.
func LoadPipeline(vectorizerPath, modelPath string) (*Pipeline, error) {
	v, err := LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}
	m, err := LoadLinearModel(modelPath)
	if err != nil {
		return nil, err
	}
	if m.NumFeatures() != v.NumFeatures() {
		return nil, fmt.Errorf("model expects %d features, vectorizer produces %d", m.NumFeatures(), v.NumFeatures())
	}
	return NewPipeline(v, m), nil
}

// Classify vectorizes text and predicts its category and cuisine. The
// computation is local and ignores ctx.
func (p *Pipeline) Classify(_ context.Context, text string) (domain.Prediction, error) {
	features, err := p.vectorizer.Vectorize(text)
	if err != nil {
		if IsInferenceError(err) {
			return domain.Prediction{}, err
		}
		return domain.Prediction{}, &InferenceError{Op: "vectorize", Msg: "vectorizer failed", Err: err}
	}

	pred, err := p.predictor.Predict(features)
	if err != nil {
		if IsInferenceError(err) {
			return domain.Prediction{}, err
		}
		return domain.Prediction{}, &InferenceError{Op: "predict", Msg: "model failed", Err: err}
	}
	return pred, nil
}
