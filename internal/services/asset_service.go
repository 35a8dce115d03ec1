package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/query"
	"github.com/trackfolio/trackfolio-be/internal/shared"
	"github.com/trackfolio/trackfolio-be/internal/store"
)

const minAssetNameLen = 2

// AssetServiceProvider defines the interface for asset services.
type AssetServiceProvider interface {
	List(ctx context.Context, userID string, spec query.Spec) ([]models.Asset, error)
	Get(ctx context.Context, userID, assetID string) (models.Asset, error)
	Create(ctx context.Context, userID string, draft models.Asset) (models.Asset, error)
	Update(ctx context.Context, userID, assetID string, patch models.AssetPatch) (models.Asset, error)
	Delete(ctx context.Context, userID, assetID string) error
}

// AssetService enforces the ownership boundary and data-integrity rules on
// top of the asset store and the filter engine.
type AssetService struct {
	assets store.AssetStore
	events EventServiceProvider
}

// NewAssetService creates a new AssetService.
func NewAssetService(assets store.AssetStore, events EventServiceProvider) *AssetService {
	return &AssetService{assets: assets, events: events}
}

// List returns the caller's assets narrowed and ordered by spec.
func (s *AssetService) List(ctx context.Context, userID string, spec query.Spec) ([]models.Asset, error) {
	assets, err := s.assets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return query.FilterAndSort(assets, spec), nil
}

// Get returns a single asset owned by the caller.
func (s *AssetService) Get(ctx context.Context, userID, assetID string) (models.Asset, error) {
	return s.assets.GetByOwner(ctx, userID, assetID)
}

// Create validates and stores a new asset owned by userID. Validation runs
// here even though the HTTP layer validates too: a negative value or unknown
// type must never reach the store.
func (s *AssetService) Create(ctx context.Context, userID string, draft models.Asset) (models.Asset, error) {
	if err := validateName(draft.Name); err != nil {
		return models.Asset{}, err
	}
	if err := validateType(draft.Type); err != nil {
		return models.Asset{}, err
	}
	if err := validateValue(draft.Value); err != nil {
		return models.Asset{}, err
	}

	draft.UserID = userID
	asset, err := s.assets.Insert(ctx, draft)
	if err != nil {
		return models.Asset{}, err
	}

	s.record(ctx, userID, "asset.create", fmt.Sprintf("Created asset %q", asset.Name))
	return asset, nil
}

// Update applies a partial update to an asset owned by the caller. Only the
// provided fields are validated and changed.
func (s *AssetService) Update(ctx context.Context, userID, assetID string, patch models.AssetPatch) (models.Asset, error) {
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return models.Asset{}, err
		}
	}
	if patch.Type != nil {
		if err := validateType(*patch.Type); err != nil {
			return models.Asset{}, err
		}
	}
	if patch.Value != nil {
		if err := validateValue(*patch.Value); err != nil {
			return models.Asset{}, err
		}
	}

	asset, err := s.assets.Update(ctx, userID, assetID, patch)
	if err != nil {
		return models.Asset{}, err
	}

	s.record(ctx, userID, "asset.update", fmt.Sprintf("Updated asset %q", asset.Name))
	return asset, nil
}

// Delete removes an asset owned by the caller.
func (s *AssetService) Delete(ctx context.Context, userID, assetID string) error {
	if err := s.assets.Delete(ctx, userID, assetID); err != nil {
		return err
	}
	s.record(ctx, userID, "asset.delete", fmt.Sprintf("Deleted asset %s", assetID))
	return nil
}

// record logs activity best-effort; a failed audit entry never fails the
// operation it describes.
func (s *AssetService) record(ctx context.Context, userID, eventType, message string) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, userID, eventType, message); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("type", eventType).Msg("Failed to record event")
	}
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < minAssetNameLen {
		return shared.NewInvalidInput("name", "must be at least 2 characters")
	}
	return nil
}

func validateType(t models.AssetType) error {
	if !t.IsValid() {
		return shared.NewInvalidInput("type", "unknown asset type")
	}
	return nil
}

func validateValue(v float64) error {
	if v < 0 {
		return shared.NewInvalidInput("value", "must not be negative")
	}
	return nil
}
