package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/actuallystonmai/recipe-predictor/internal/corpus"
	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/actuallystonmai/recipe-predictor/internal/handler"
	"github.com/actuallystonmai/recipe-predictor/internal/metrics"
	"github.com/actuallystonmai/recipe-predictor/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixedClassifier struct{}

func (fixedClassifier) Classify(context.Context, string) (domain.Prediction, error) {
	return domain.Prediction{Category: "Bread", Cuisine: "Moroccan"}, nil
}

func setupTestRouter(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	reg := prometheus.NewRegistry()
	c := corpus.New([]domain.Recipe{
		{Category: "Dessert", Cuisine: "French", Ingredients: []string{"flour", "sugar", "egg"}},
	})
	svc := service.NewService(c, fixedClassifier{}, nil, metrics.New(reg), logger, service.Options{Threshold: 80})

	return Setup(handler.NewHandler(svc, logger), Options{
		Logger:         logger,
		Gatherer:       reg,
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:   64,
	}), logs
}

func TestPredictRoute(t *testing.T) {
	r, logs := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"ingredients":"flour"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"source":"dataset"`)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/predict", entries[0].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestHealthRoute(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","recipes":1,"vocabulary":3}`, rr.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestBodySizeLimit(t *testing.T) {
	r, logs := setupTestRouter(t)

	body := `{"ingredients":"` + strings.Repeat("flour,", 20) + `"}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Len(t, logs.FilterMessage("client error").All(), 1)
}

func TestMetricsRoute(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"ingredients":"durian"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `recipe_predictions_total{outcome="unknown"} 1`)
}

type waitingClassifier struct{}

func (waitingClassifier) Classify(ctx context.Context, _ string) (domain.Prediction, error) {
	<-ctx.Done()
	return domain.Prediction{}, ctx.Err()
}

func TestRequestTimeout(t *testing.T) {
	c := corpus.New([]domain.Recipe{
		{Category: "Dessert", Cuisine: "French", Ingredients: []string{"flour", "sugar", "egg"}},
	})
	svc := service.NewService(c, waitingClassifier{}, nil, nil, nil, service.Options{Threshold: 101})
	r := Setup(handler.NewHandler(svc, nil), Options{RequestTimeout: 20 * time.Millisecond})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"ingredients":"flour"}`)))

	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
	assert.Empty(t, rr.Body.String())
}
