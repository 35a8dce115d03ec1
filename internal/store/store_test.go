package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackfolio/trackfolio-be/internal/database"
	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/shared"
	"github.com/trackfolio/trackfolio-be/internal/store"
)

type backend struct {
	users  store.UserStore
	assets store.AssetStore
	events store.EventStore
}

// forEachBackend runs the same contract test against the SQLite and the
// flat-file implementations.
func forEachBackend(t *testing.T, fn func(t *testing.T, b backend)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		require.NoError(t, database.Migrate(db))

		fn(t, backend{
			users:  store.NewSQLiteUserStore(db),
			assets: store.NewSQLiteAssetStore(db),
			events: store.NewSQLiteEventStore(db),
		})
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		users, err := store.NewFileUserStore(dir)
		require.NoError(t, err)
		assets, err := store.NewFileAssetStore(dir)
		require.NoError(t, err)
		events, err := store.NewFileEventStore(dir)
		require.NoError(t, err)

		fn(t, backend{users: users, assets: assets, events: events})
	})
}

func TestUserStore_InsertAndFind(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		user, err := b.users.Insert(ctx, models.User{
			Email:        "A@X.com",
			PasswordHash: "hash",
			FirstName:    "Ada",
			LastName:     "Lovelace",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "a@x.com", user.Email, "email stored normalized")
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())

		byEmail, err := b.users.FindByEmail(ctx, "a@X.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		byID, err := b.users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", byID.Email)
	})
}

func TestFileUserStore_PasswordHashSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	users, err := store.NewFileUserStore(dir)
	require.NoError(t, err)

	created, err := users.Insert(ctx, models.User{Email: "a@x.com", PasswordHash: "hash"})
	require.NoError(t, err)

	found, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.PasswordHash)

	// The hash must be in the data file itself, not just in memory: a fresh
	// store reading the same directory still sees it.
	reopened, err := store.NewFileUserStore(dir)
	require.NoError(t, err)

	found, err = reopened.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", found.PasswordHash)

	raw, err := os.ReadFile(filepath.Join(dir, store.UsersFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"password": "hash"`)
}

func TestUserStore_NotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		_, err := b.users.FindByEmail(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = b.users.FindByID(ctx, "no-such-id")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		first, err := b.users.Insert(ctx, models.User{Email: "a@x.com", PasswordHash: "hash1"})
		require.NoError(t, err)

		_, err = b.users.Insert(ctx, models.User{Email: "A@X.COM", PasswordHash: "hash2"})
		assert.ErrorIs(t, err, shared.ErrDuplicateEmail)

		// First user's hash is untouched by the failed insert.
		stored, err := b.users.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash1", stored.PasswordHash)
	})
}

func TestAssetStore_InsertListScopedByOwner(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		mine, err := b.assets.Insert(ctx, models.Asset{
			UserID: "u1", Name: "House", Type: models.AssetRealEstate, Value: 500000,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, mine.ID)

		_, err = b.assets.Insert(ctx, models.Asset{
			UserID: "u2", Name: "Boat", Type: models.AssetOther, Value: 90000,
		})
		require.NoError(t, err)

		listed, err := b.assets.ListByOwner(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "House", listed[0].Name)
	})
}

func TestAssetStore_GetByOwner_OtherOwnerLooksMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		asset, err := b.assets.Insert(ctx, models.Asset{
			UserID: "u1", Name: "House", Type: models.AssetRealEstate, Value: 500000,
		})
		require.NoError(t, err)

		got, err := b.assets.GetByOwner(ctx, "u1", asset.ID)
		require.NoError(t, err)
		assert.Equal(t, asset.ID, got.ID)

		_, err = b.assets.GetByOwner(ctx, "u2", asset.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = b.assets.GetByOwner(ctx, "u1", "no-such-asset")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAssetStore_UpdateAppliesOnlyProvidedFields(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		asset, err := b.assets.Insert(ctx, models.Asset{
			UserID: "u1", Name: "House", Type: models.AssetRealEstate, Value: 500000,
			Description: "Family home",
		})
		require.NoError(t, err)

		time.Sleep(2 * time.Millisecond)

		newValue := 550000.0
		updated, err := b.assets.Update(ctx, "u1", asset.ID, models.AssetPatch{Value: &newValue})
		require.NoError(t, err)

		assert.Equal(t, 550000.0, updated.Value)
		assert.Equal(t, "House", updated.Name)
		assert.Equal(t, models.AssetRealEstate, updated.Type)
		assert.Equal(t, "Family home", updated.Description)
		assert.True(t, updated.UpdatedAt.After(asset.UpdatedAt), "updatedAt must increase")
		assert.Equal(t, asset.CreatedAt.Unix(), updated.CreatedAt.Unix())
	})
}

func TestAssetStore_UpdateAndDelete_OwnershipIsNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		asset, err := b.assets.Insert(ctx, models.Asset{
			UserID: "u1", Name: "House", Type: models.AssetRealEstate, Value: 500000,
		})
		require.NoError(t, err)

		name := "Mansion"
		_, err = b.assets.Update(ctx, "u2", asset.ID, models.AssetPatch{Name: &name})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		err = b.assets.Delete(ctx, "u2", asset.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		// The record is untouched by the failed cross-user mutations.
		got, err := b.assets.GetByOwner(ctx, "u1", asset.ID)
		require.NoError(t, err)
		assert.Equal(t, "House", got.Name)

		require.NoError(t, b.assets.Delete(ctx, "u1", asset.ID))
		_, err = b.assets.GetByOwner(ctx, "u1", asset.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		err = b.assets.Delete(ctx, "u1", asset.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestEventStore_InsertAndListNewestFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		for _, msg := range []string{"first", "second", "third"} {
			require.NoError(t, b.events.Insert(ctx, models.Event{
				UserID: "u1", Type: "asset.create", Message: msg,
			}))
			time.Sleep(2 * time.Millisecond)
		}
		require.NoError(t, b.events.Insert(ctx, models.Event{
			UserID: "u2", Type: "asset.create", Message: "not mine",
		}))

		events, err := b.events.ListByUser(ctx, "u1", 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "third", events[0].Message)
		assert.Equal(t, "second", events[1].Message)
	})
}
