package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pathfinder-backend/internal/middleware"
	"pathfinder-backend/internal/models"
	"pathfinder-backend/internal/services"
	"pathfinder-backend/internal/upstream"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// handleServiceError collapses every failure kind to the single
// client-visible shape. Diagnostic detail stays in the logs.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *services.ValidationError
	var cfgErr *upstream.ConfigurationError

	requestID := middleware.GetRequestID(r.Context())

	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, valErr.Message)
	case errors.As(err, &cfgErr):
		log.Printf("[%s] configuration error on %s: %v", requestID, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Service is not configured")
	default:
		log.Printf("[%s] AI request failed on %s: %v", requestID, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Failed to get AI response")
	}
}
