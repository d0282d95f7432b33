package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"go.uber.org/zap"
)

// POST /predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.Predict(r.Context(), req.Ingredients)
	if err != nil {
		// Missing or blank ingredients
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_input", "No ingredients provided")
			return
		}
		// Classifier failure in strict mode
		if errors.Is(err, domain.ErrClassifierFailure) {
			writeError(w, http.StatusServiceUnavailable, "model_unavailable",
				"Recipe classifier is temporarily unavailable")
			return
		}
		// Request timeout
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			if r.Context().Err() != nil {
				// the timeout middleware owns the response
				h.logger.Warn("predict aborted", zap.Error(err))
				return
			}
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		h.logger.Error("predict failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
