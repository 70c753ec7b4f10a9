package handlers

import (
	"encoding/json"
	"net/http"

	"pathfinder-backend/internal/models"
	"pathfinder-backend/internal/services"
)

type ChatHandler struct {
	advisor *services.AdvisorService
}

func NewChatHandler(advisor *services.AdvisorService) *ChatHandler {
	return &ChatHandler{advisor: advisor}
}

// Send handles POST /api/chat.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// History must be present; an empty conversation is valid.
	if req.History == nil {
		writeError(w, http.StatusBadRequest, "history is required")
		return
	}

	reply, err := h.advisor.Chat(r.Context(), req.History)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Message: reply})
}
