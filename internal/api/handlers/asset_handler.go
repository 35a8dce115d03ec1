package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/trackfolio/trackfolio-be/internal/auth"
	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/query"
	"github.com/trackfolio/trackfolio-be/internal/services"
)

// AssetHandler handles HTTP requests for asset management.
type AssetHandler struct {
	service  services.AssetServiceProvider
	validate *validator.Validate
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(service services.AssetServiceProvider) *AssetHandler {
	return &AssetHandler{service: service, validate: newValidator()}
}

// CreateAssetPayload defines the structure for asset creation requests.
type CreateAssetPayload struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Type        string   `json:"type" validate:"required,oneof=real_estate stock cryptocurrency vehicle other"`
	Value       *float64 `json:"value" validate:"required,gte=0"`
	Description string   `json:"description"`
}

// UpdateAssetPayload defines the structure for partial asset updates. Absent
// fields stay untouched.
type UpdateAssetPayload struct {
	Name        *string  `json:"name" validate:"omitempty,min=2"`
	Type        *string  `json:"type" validate:"omitempty,oneof=real_estate stock cryptocurrency vehicle other"`
	Value       *float64 `json:"value" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
}

// GetAll handles listing the caller's assets with optional filter/sort params.
func (h *AssetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	spec, err := query.ParseSpec(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	assets, err := h.service.List(r.Context(), claims.UserID, spec)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list assets")
		writeError(w, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	writeJSON(w, http.StatusOK, assets)
}

// Get handles retrieving a single asset by id.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	asset, err := h.service.Get(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

// Create handles creating a new asset owned by the caller.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	var payload CreateAssetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeValidationError(w, firstFailedField(err))
		return
	}

	asset, err := h.service.Create(r.Context(), claims.UserID, models.Asset{
		Name:        payload.Name,
		Type:        models.AssetType(payload.Type),
		Value:       *payload.Value,
		Description: payload.Description,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create asset")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, asset)
}

// Update handles a partial update of an asset owned by the caller.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	var payload UpdateAssetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeValidationError(w, firstFailedField(err))
		return
	}

	patch := models.AssetPatch{
		Name:        payload.Name,
		Value:       payload.Value,
		Description: payload.Description,
	}
	if payload.Type != nil {
		t := models.AssetType(*payload.Type)
		patch.Type = &t
	}

	asset, err := h.service.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

// Delete handles removing an asset owned by the caller.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
