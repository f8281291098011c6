package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/api"
	"github.com/teddexter0/simple-file-uploader/pkg/auth"
	"github.com/teddexter0/simple-file-uploader/pkg/config"
	"github.com/teddexter0/simple-file-uploader/pkg/identity"
	"github.com/teddexter0/simple-file-uploader/pkg/metrics"
	"github.com/teddexter0/simple-file-uploader/pkg/namespace"
	"github.com/teddexter0/simple-file-uploader/pkg/store/blob"
	blobfs "github.com/teddexter0/simple-file-uploader/pkg/store/blob/fs"
	blobs3 "github.com/teddexter0/simple-file-uploader/pkg/store/blob/s3"
	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
	nsbadger "github.com/teddexter0/simple-file-uploader/pkg/store/namespace/badger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the uploader server",
	Long: `Start the uploader server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/uploader/config.yaml.

Examples:
  # Start with default config location
  uploader start

  # Start with custom config file
  uploader start --config /etc/uploader/config.yaml

  # Start with environment variable overrides
  UPLOADER_LOGGING_LEVEL=DEBUG uploader start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("configuration loaded",
		"log_level", cfg.Logging.Level, "database", cfg.Database.Type, "blob_backend", cfg.Blob.Backend)

	users, err := identitystore.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize user store: %w", err)
	}

	meta, err := nsbadger.New(cfg.Namespace)
	if err != nil {
		return fmt.Errorf("failed to initialize namespace store: %w", err)
	}
	defer func() {
		if err := meta.Close(); err != nil {
			logger.Error("namespace store close error", "error", err)
		}
	}()

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			logger.Error("blob store close error", "error", err)
		}
	}()

	sessions, err := auth.NewService(cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize session service: %w", err)
	}

	server := api.NewServer(cfg.Server, api.Deps{
		Identity:      identity.NewService(users),
		IdentityStore: users,
		Engine:        namespace.NewEngine(meta, blobs, cfg.Blob.Policy),
		Sessions:      sessions,
		Metrics:       metrics.New(),
	})
	server.SetShutdownTimeout(cfg.ShutdownTimeout)

	return server.Start(ctx)
}

// newBlobStore builds the configured content backend.
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.Blob.Backend {
	case config.BlobBackendS3:
		return blobs3.NewFromConfig(ctx, cfg.Blob.S3)
	case config.BlobBackendFS, "":
		return blobfs.New(cfg.Blob.FS)
	default:
		return nil, fmt.Errorf("unsupported blob backend: %s", cfg.Blob.Backend)
	}
}
