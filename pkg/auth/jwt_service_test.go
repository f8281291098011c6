package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSecretLengthEnforced(t *testing.T) {
	_, err := NewService(Config{Secret: "short"})
	require.ErrorIs(t, err, ErrInvalidSecretLength)

	_, err = NewService(Config{Secret: testSecret})
	require.NoError(t, err)
}

func TestIssueAndValidateSession(t *testing.T) {
	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)

	user := &models.User{ID: "user-1", Username: "alice"}
	token, err := svc.IssueSession(user)
	require.NoError(t, err)

	claims, err := svc.ValidateSession(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "user-1", claims.Subject)
}

func TestValidateGarbageToken(t *testing.T) {
	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)

	_, err = svc.ValidateSession("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	verifier, err := NewService(Config{Secret: "another-secret-another-secret-32ch"})
	require.NoError(t, err)

	token, err := issuer.IssueSession(&models.User{ID: "u", Username: "x"})
	require.NoError(t, err)

	_, err = verifier.ValidateSession(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredSession(t *testing.T) {
	svc, err := NewService(Config{
		Secret:          testSecret,
		SessionDuration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := svc.IssueSession(&models.User{ID: "u", Username: "x"})
	require.NoError(t, err)

	_, err = svc.ValidateSession(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestDefaultSessionDuration(t *testing.T) {
	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, svc.SessionDuration())
}
