package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/actuallystonmai/recipe-predictor/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: svc, logger: logger}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// decodeBody reads a JSON request body, answering 413 or 400 itself when it
// cannot. It reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	return false
}

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	recipes, vocabulary := h.service.Stats()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Recipes:    recipes,
		Vocabulary: vocabulary,
	})
}
