package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"socialsound_server/services"
)

// Store round trips can hang; handlers cap each request instead of
// waiting forever. Timeouts surface as retryable 500s.
const requestTimeout = 15 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondServiceError maps the workflow error taxonomy onto HTTP codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, services.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "not the addressee of this like"})
	case errors.Is(err, services.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, map[string]string{"error": "like already decided"})
	case errors.Is(err, services.ErrDecisionInFlight):
		respondJSON(w, http.StatusConflict, map[string]string{"error": "decision already in progress"})
	case errors.Is(err, services.ErrSelfLike):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot like your own broadcast"})
	default:
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// HealthCheckHandler reports service liveness
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
