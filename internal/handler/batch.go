package handler

import (
	"errors"
	"net/http"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"go.uber.org/zap"
)

// POST /predict/batch
func (h *Handler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.PredictBatch(r.Context(), req.Queries)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "At least one query is required")
			return
		}
		if errors.Is(err, domain.ErrBatchTooLarge) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
		h.logger.Error("batch predict failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	if err := r.Context().Err(); err != nil {
		h.logger.Warn("batch predict aborted", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
