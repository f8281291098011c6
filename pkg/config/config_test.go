package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teddexter0/simple-file-uploader/internal/bytesize"
	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	require.Equal(t, "INFO", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, identitystore.DatabaseTypeSQLite, cfg.Database.Type)
	require.Equal(t, BlobBackendFS, cfg.Blob.Backend)
	require.Equal(t, 10*bytesize.MiB, cfg.Blob.Policy.MaxSize)
	require.Equal(t, 24*time.Hour, cfg.Session.SessionDuration)
	require.GreaterOrEqual(t, len(cfg.Session.Secret), 32)

	require.NoError(t, Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: json
shutdown_timeout: 10s
server:
  port: 9999
database:
  type: sqlite
  sqlite:
    path: ` + filepath.Join(dir, "users.db") + `
blob:
  policy:
    max_size: 2Mi
    allowed_extensions: [".csv", ".txt"]
session:
  secret: "0123456789abcdef0123456789abcdef"
  session_duration: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "DEBUG", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, 2*bytesize.MiB, cfg.Blob.Policy.MaxSize)
	require.Equal(t, []string{".csv", ".txt"}, cfg.Blob.Policy.AllowedExtensions)
	require.Equal(t, time.Hour, cfg.Session.SessionDuration)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  secret: tooshort\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "secret")
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Server.Port = 1234
	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1234, reloaded.Server.Port)
	require.Equal(t, cfg.Session.Secret, reloaded.Session.Secret)
}
