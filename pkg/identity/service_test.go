package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := identitystore.New(&identitystore.Config{
		Type:   identitystore.DatabaseTypeSQLite,
		SQLite: identitystore.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)

	return NewService(store, WithBcryptCost(bcrypt.MinCost))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "s3cret", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	require.True(t, errors.Is(err, models.ErrWrongPassword))
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "pw")
	require.True(t, errors.Is(err, models.ErrUserNotFound))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "impostor", "pw2")
	require.True(t, errors.Is(err, models.ErrDuplicateEmail))

	// Original credentials still work.
	got, err := svc.Authenticate(ctx, "alice@example.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
}

func TestRegisterTrimsEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  alice@example.com  ", "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "alice", "pw")
	require.Error(t, err)

	_, err = svc.Register(ctx, "a@x.com", "alice", "")
	require.Error(t, err)
}
