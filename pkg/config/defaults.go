package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	cfg.Database.ApplyDefaults()
	if cfg.Database.Type == identitystore.DatabaseTypeSQLite && cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = filepath.Join(getDataDir(), "users.db")
	}

	if cfg.Namespace.Path == "" {
		cfg.Namespace.Path = filepath.Join(getDataDir(), "namespace")
	}

	if cfg.Blob.Backend == "" {
		cfg.Blob.Backend = BlobBackendFS
	}
	if cfg.Blob.Backend == BlobBackendFS && cfg.Blob.FS.BasePath == "" {
		cfg.Blob.FS.BasePath = filepath.Join(getDataDir(), "blobs")
	}
	cfg.Blob.Policy.ApplyDefaults()

	if cfg.Session.Secret == "" {
		cfg.Session.Secret = generateSecret()
	}
	if cfg.Session.SessionDuration == 0 {
		cfg.Session.SessionDuration = 24 * time.Hour
	}
}

// applyLoggingDefaults sets logging defaults and normalizes the level.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// GetDefaultConfig returns the configuration used when no config file
// exists. The generated session secret is ephemeral; sessions do not survive
// a restart until `uploader init` persists one.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// generateSecret produces a random session signing key.
func generateSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// getDataDir returns the data directory: $XDG_DATA_HOME/uploader,
// ~/.local/share/uploader, or the current directory as a last resort.
func getDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "uploader")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "uploader")
}
