package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/shared"
)

// File names of the flat-file collections inside the data directory.
const (
	UsersFile  = "users.json"
	AssetsFile = "assets.json"
	EventsFile = "events.json"
)

// storedUser is the on-disk shape of a user record. The API model hides the
// password hash from JSON, but the data file must keep it.
type storedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toStoredUser(u models.User) storedUser {
	return storedUser{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (s storedUser) user() models.User {
	return models.User{
		ID:           s.ID,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FileUserStore is the flat-file credential store.
type FileUserStore struct {
	file *jsonFile[storedUser]
}

// NewFileUserStore creates a FileUserStore rooted at dataDir.
func NewFileUserStore(dataDir string) (*FileUserStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, storeErr(err)
	}
	return &FileUserStore{file: newJSONFile[storedUser](filepath.Join(dataDir, UsersFile))}, nil
}

func (s *FileUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	email = strings.ToLower(email)
	var found models.User
	err := s.file.view(func(users []storedUser) error {
		for _, u := range users {
			if strings.ToLower(u.Email) == email {
				found = u.user()
				return nil
			}
		}
		return shared.ErrNotFound
	})
	return found, err
}

func (s *FileUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	var found models.User
	err := s.file.view(func(users []storedUser) error {
		for _, u := range users {
			if u.ID == id {
				found = u.user()
				return nil
			}
		}
		return shared.ErrNotFound
	})
	return found, err
}

func (s *FileUserStore) Insert(ctx context.Context, draft models.User) (models.User, error) {
	now := time.Now().UTC()
	draft.ID = uuid.New().String()
	draft.Email = strings.ToLower(draft.Email)
	draft.CreatedAt = now
	draft.UpdatedAt = now

	err := s.file.mutate(func(users []storedUser) ([]storedUser, error) {
		for _, u := range users {
			if strings.ToLower(u.Email) == draft.Email {
				return nil, shared.ErrDuplicateEmail
			}
		}
		return append(users, toStoredUser(draft)), nil
	})
	if err != nil {
		return models.User{}, err
	}
	return draft, nil
}

// FileAssetStore is the flat-file asset store.
type FileAssetStore struct {
	file *jsonFile[models.Asset]
}

// NewFileAssetStore creates a FileAssetStore rooted at dataDir.
func NewFileAssetStore(dataDir string) (*FileAssetStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, storeErr(err)
	}
	return &FileAssetStore{file: newJSONFile[models.Asset](filepath.Join(dataDir, AssetsFile))}, nil
}

func (s *FileAssetStore) ListByOwner(ctx context.Context, userID string) ([]models.Asset, error) {
	var owned []models.Asset
	err := s.file.view(func(assets []models.Asset) error {
		for _, a := range assets {
			if a.UserID == userID {
				owned = append(owned, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owned, nil
}

func (s *FileAssetStore) GetByOwner(ctx context.Context, userID, assetID string) (models.Asset, error) {
	var found models.Asset
	err := s.file.view(func(assets []models.Asset) error {
		for _, a := range assets {
			if a.ID == assetID && a.UserID == userID {
				found = a
				return nil
			}
		}
		return shared.ErrNotFound
	})
	return found, err
}

func (s *FileAssetStore) Insert(ctx context.Context, draft models.Asset) (models.Asset, error) {
	now := time.Now().UTC()
	draft.ID = uuid.New().String()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	err := s.file.mutate(func(assets []models.Asset) ([]models.Asset, error) {
		return append(assets, draft), nil
	})
	if err != nil {
		return models.Asset{}, err
	}
	return draft, nil
}

// Update finds and mutates the record inside a single locked mutate cycle, so
// the ownership check and the write cannot be split by a concurrent request.
func (s *FileAssetStore) Update(ctx context.Context, userID, assetID string, patch models.AssetPatch) (models.Asset, error) {
	var updated models.Asset
	err := s.file.mutate(func(assets []models.Asset) ([]models.Asset, error) {
		for i, a := range assets {
			if a.ID != assetID || a.UserID != userID {
				continue
			}
			if patch.Name != nil {
				a.Name = *patch.Name
			}
			if patch.Type != nil {
				a.Type = *patch.Type
			}
			if patch.Value != nil {
				a.Value = *patch.Value
			}
			if patch.Description != nil {
				a.Description = *patch.Description
			}
			a.UpdatedAt = time.Now().UTC()
			assets[i] = a
			updated = a
			return assets, nil
		}
		return nil, shared.ErrNotFound
	})
	if err != nil {
		return models.Asset{}, err
	}
	return updated, nil
}

func (s *FileAssetStore) Delete(ctx context.Context, userID, assetID string) error {
	return s.file.mutate(func(assets []models.Asset) ([]models.Asset, error) {
		for i, a := range assets {
			if a.ID == assetID && a.UserID == userID {
				return append(assets[:i], assets[i+1:]...), nil
			}
		}
		return nil, shared.ErrNotFound
	})
}

// FileEventStore is the flat-file activity log.
type FileEventStore struct {
	file *jsonFile[models.Event]
}

// NewFileEventStore creates a FileEventStore rooted at dataDir.
func NewFileEventStore(dataDir string) (*FileEventStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, storeErr(err)
	}
	return &FileEventStore{file: newJSONFile[models.Event](filepath.Join(dataDir, EventsFile))}, nil
}

func (s *FileEventStore) Insert(ctx context.Context, event models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return s.file.mutate(func(events []models.Event) ([]models.Event, error) {
		return append(events, event), nil
	})
}

func (s *FileEventStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.Event, error) {
	var mine []models.Event
	err := s.file.view(func(events []models.Event) error {
		for _, e := range events {
			if e.UserID == userID {
				mine = append(mine, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	if limit > 0 && len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}
