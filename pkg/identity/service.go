// Package identity implements user registration and credential verification.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
)

// Service manages user accounts on top of the identity store.
type Service struct {
	store      *identitystore.Store
	bcryptCost int
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost overrides the password hashing cost, mainly for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// NewService creates an identity service.
func NewService(store *identitystore.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		bcryptCost: models.DefaultBcryptCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new account. The email is stored as given after
// trimming surrounding whitespace; lookups are exact, so "A@x.com" and
// "a@x.com" are distinct accounts. Returns models.ErrDuplicateEmail when the
// email is already taken.
func (s *Service) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := models.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
// Returns models.ErrUserNotFound for an unknown email and
// models.ErrWrongPassword for a bad password; callers decide whether to
// collapse the two for presentation.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	if err := user.CheckPassword(password); err != nil {
		if errors.Is(err, models.ErrWrongPassword) {
			logger.Debug("failed login attempt", "email", email)
		}
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}
