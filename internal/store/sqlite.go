package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/shared"
)

// SQLiteUserStore is the SQLite-backed credential store.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore creates a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

func (s *SQLiteUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, first_name, last_name, created_at, updated_at FROM users WHERE email = ?",
		strings.ToLower(email))
	return scanUser(row)
}

func (s *SQLiteUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, first_name, last_name, created_at, updated_at FROM users WHERE id = ?",
		id)
	return scanUser(row)
}

func (s *SQLiteUserStore) Insert(ctx context.Context, draft models.User) (models.User, error) {
	now := time.Now().UTC()
	draft.ID = uuid.New().String()
	draft.Email = strings.ToLower(draft.Email)
	draft.CreatedAt = now
	draft.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		draft.ID, draft.Email, draft.PasswordHash, draft.FirstName, draft.LastName, draft.CreatedAt, draft.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, shared.ErrDuplicateEmail
		}
		return models.User{}, storeErr(err)
	}
	return draft, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, shared.ErrNotFound
		}
		return models.User{}, storeErr(err)
	}
	return user, nil
}

// SQLiteAssetStore is the SQLite-backed asset store.
type SQLiteAssetStore struct {
	db *sql.DB
}

// NewSQLiteAssetStore creates a new SQLiteAssetStore.
func NewSQLiteAssetStore(db *sql.DB) *SQLiteAssetStore {
	return &SQLiteAssetStore{db: db}
}

const assetColumns = "id, user_id, name, type, value, description, created_at, updated_at"

func (s *SQLiteAssetStore) ListByOwner(ctx context.Context, userID string) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Value, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, storeErr(err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return assets, nil
}

func (s *SQLiteAssetStore) GetByOwner(ctx context.Context, userID, assetID string) (models.Asset, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE id = ? AND user_id = ?", assetID, userID)
	var a models.Asset
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Value, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Asset{}, shared.ErrNotFound
		}
		return models.Asset{}, storeErr(err)
	}
	return a, nil
}

func (s *SQLiteAssetStore) Insert(ctx context.Context, draft models.Asset) (models.Asset, error) {
	now := time.Now().UTC()
	draft.ID = uuid.New().String()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO assets ("+assetColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		draft.ID, draft.UserID, draft.Name, draft.Type, draft.Value, draft.Description, draft.CreatedAt, draft.UpdatedAt)
	if err != nil {
		return models.Asset{}, storeErr(err)
	}
	return draft, nil
}

// Update mutates the row in a single conditional statement keyed on both id
// and owner, so an asset owned by someone else is indistinguishable from a
// missing one and no check-then-act window exists.
func (s *SQLiteAssetStore) Update(ctx context.Context, userID, assetID string, patch models.AssetPatch) (models.Asset, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *patch.Type)
	}
	if patch.Value != nil {
		sets = append(sets, "value = ?")
		args = append(args, *patch.Value)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	args = append(args, assetID, userID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE assets SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return models.Asset{}, storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Asset{}, storeErr(err)
	}
	if affected == 0 {
		return models.Asset{}, shared.ErrNotFound
	}
	return s.GetByOwner(ctx, userID, assetID)
}

func (s *SQLiteAssetStore) Delete(ctx context.Context, userID, assetID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM assets WHERE id = ? AND user_id = ?", assetID, userID)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SQLiteEventStore is the SQLite-backed activity log.
type SQLiteEventStore struct {
	db *sql.DB
}

// NewSQLiteEventStore creates a new SQLiteEventStore.
func NewSQLiteEventStore(db *sql.DB) *SQLiteEventStore {
	return &SQLiteEventStore{db: db}
}

func (s *SQLiteEventStore) Insert(ctx context.Context, event models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, user_id, type, message, created_at) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.UserID, event.Type, event.Message, event.CreatedAt)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *SQLiteEventStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, type, message, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Message, &e.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return events, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
}
