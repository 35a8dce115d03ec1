package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/trackfolio/trackfolio-be/internal/auth"
	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/services"
	"github.com/trackfolio/trackfolio-be/internal/shared"
)

// EventHandler handles HTTP requests for the activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the caller's most recent activity entries.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, shared.NewInvalidInput("limit", "must be an integer"))
			return
		}
		limit = parsed
	}

	events, err := h.service.GetRecentEvents(r.Context(), claims.UserID, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list events")
		writeError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}
