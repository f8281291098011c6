package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(&Config{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	return store
}

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hash, err := models.HashPassword("pw123", models.DefaultBcryptCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: hash,
	}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NotEmpty(t, user.ID)

	byEmail, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.Equal(t, "alice", byEmail.Username)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &models.User{Email: "a@x.com", Username: "alice", PasswordHash: "h1"}
	require.NoError(t, store.CreateUser(ctx, first))

	second := &models.User{Email: "a@x.com", Username: "impostor", PasswordHash: "h2"}
	err := store.CreateUser(ctx, second)
	require.True(t, errors.Is(err, models.ErrDuplicateEmail), "expected ErrDuplicateEmail, got %v", err)

	// First record untouched.
	got, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "alice", got.Username)
}

func TestEmailMatchIsCaseSensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Email: "Alice@X.com", Username: "alice", PasswordHash: "h"}
	require.NoError(t, store.CreateUser(ctx, user))

	_, err := store.GetUserByEmail(ctx, "alice@x.com")
	require.True(t, errors.Is(err, models.ErrUserNotFound))
}

func TestGetUserNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetUserByEmail(ctx, "nobody@x.com")
	require.True(t, errors.Is(err, models.ErrUserNotFound))

	_, err = store.GetUserByID(ctx, "no-such-id")
	require.True(t, errors.Is(err, models.ErrUserNotFound))
}
