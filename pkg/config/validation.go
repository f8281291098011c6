package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for structural problems beyond what the
// individual store constructors verify.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if len(cfg.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}

	if cfg.Blob.Backend == BlobBackendS3 && cfg.Blob.S3.Bucket == "" {
		return fmt.Errorf("s3 blob backend requires a bucket")
	}

	return nil
}
