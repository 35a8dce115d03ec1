package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/trackfolio/trackfolio-be/internal/shared"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors onto the HTTP surface. Store failures and
// anything unrecognized come back as a generic 500 with no detail.
func writeError(w http.ResponseWriter, err error) {
	var iie *shared.InvalidInputError
	switch {
	case errors.As(err, &iie):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: iie.Error(), Field: iie.Field})
	case errors.Is(err, shared.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("Internal error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeValidationError reports the first failed field of a payload struct.
func writeValidationError(w http.ResponseWriter, field string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + field, Field: field})
}
