// Package store defines the persistence contract shared by the SQLite and
// flat-file backends. Every asset operation is scoped by the owning user id:
// a record that exists but belongs to someone else behaves exactly like a
// record that does not exist.
package store

import (
	"context"

	"github.com/trackfolio/trackfolio-be/internal/models"
)

// UserStore persists account credentials. Email lookups are case-insensitive.
type UserStore interface {
	// FindByEmail returns the user with the given email, including the
	// password hash. Returns shared.ErrNotFound if absent.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindByID returns the user with the given id, including the password
	// hash. Returns shared.ErrNotFound if absent.
	FindByID(ctx context.Context, id string) (models.User, error)
	// Insert stores a new user, assigning id and timestamps. Returns
	// shared.ErrDuplicateEmail if the normalized email is already taken.
	Insert(ctx context.Context, draft models.User) (models.User, error)
}

// AssetStore persists owner-scoped asset records.
type AssetStore interface {
	ListByOwner(ctx context.Context, userID string) ([]models.Asset, error)
	// GetByOwner returns shared.ErrNotFound when the asset is absent or
	// owned by a different user.
	GetByOwner(ctx context.Context, userID, assetID string) (models.Asset, error)
	// Insert stores a new asset, assigning id and timestamps.
	Insert(ctx context.Context, draft models.Asset) (models.Asset, error)
	// Update applies the non-nil patch fields and refreshes the update
	// timestamp, as a single conditional operation on (id, owner).
	Update(ctx context.Context, userID, assetID string, patch models.AssetPatch) (models.Asset, error)
	// Delete removes the asset, conditional on (id, owner).
	Delete(ctx context.Context, userID, assetID string) error
}

// EventStore persists per-user activity entries.
type EventStore interface {
	Insert(ctx context.Context, event models.Event) error
	// ListByUser returns the user's most recent events, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Event, error)
}
