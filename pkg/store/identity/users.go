package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// GetUserByEmail retrieves a user by exact email match.
// Returns models.ErrUserNotFound if no such user exists.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, convertNotFoundError(err, models.ErrUserNotFound)
	}
	return &user, nil
}

// GetUserByID retrieves a user by id.
// Returns models.ErrUserNotFound if no such user exists.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, convertNotFoundError(err, models.ErrUserNotFound)
	}
	return &user, nil
}

// CreateUser persists a new user. A fresh UUID is assigned when the record
// has no id yet. Unique-constraint violations on email are reported as
// models.ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// ListUsers returns all registered users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
