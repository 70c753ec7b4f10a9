package handlers

import (
	"encoding/json"
	"net/http"

	"pathfinder-backend/internal/models"
	"pathfinder-backend/internal/services"
)

type RecommendationHandler struct {
	advisor *services.AdvisorService
}

func NewRecommendationHandler(advisor *services.AdvisorService) *RecommendationHandler {
	return &RecommendationHandler{advisor: advisor}
}

// Recommend handles POST /api/recommendations.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.InterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.advisor.Recommend(r.Context(), req.Interests)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// The validated model output is the response body, unchanged.
	writeJSON(w, http.StatusOK, result)
}
