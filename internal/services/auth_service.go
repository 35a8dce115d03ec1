package services

import (
	"context"
	"errors"
	"strings"

	"github.com/trackfolio/trackfolio-be/internal/auth"
	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/shared"
	"github.com/trackfolio/trackfolio-be/internal/store"
)

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// AuthService orchestrates registration, login and identity lookup.
type AuthService struct {
	users  store.UserStore
	hasher *auth.Hasher
	tokens *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, hasher *auth.Hasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new account and returns a token plus the sanitized user.
// A taken email comes back as shared.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (string, models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", models.User{}, shared.NewInvalidInput("email", "must not be empty")
	}
	if len(password) < 6 {
		return "", models.User{}, shared.NewInvalidInput("password", "must be at least 6 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", models.User{}, err
	}

	user, err := s.users.Insert(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		return "", models.User{}, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user.Sanitized(), nil
}

// Login authenticates a user. An unknown email and a wrong password produce
// the same shared.ErrInvalidCredentials so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", models.User{}, shared.ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", models.User{}, shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user.Sanitized(), nil
}

// GetUserByID returns the sanitized user for an id.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
