package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"velvet-backend/internal/logger"
	"velvet-backend/internal/models"
	"velvet-backend/internal/service"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors onto the response taxonomy:
// constraint violations are 400s, absent rows are 404s, everything else is
// an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
