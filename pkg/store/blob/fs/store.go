// Package fs provides a filesystem-backed blob store.
//
// Each blob lives as a single file named by a random UUID directly under the
// base directory. Writes go to a temporary file first and are renamed into
// place, so readers never observe a partially written blob.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// Config holds configuration for the filesystem blob store.
type Config struct {
	// BasePath is the directory blobs are stored in.
	BasePath string `mapstructure:"base_path" yaml:"base_path"`

	// DirMode is the permission mode for the created directory.
	// Default: 0755
	DirMode os.FileMode `mapstructure:"-" yaml:"-"`

	// FileMode is the permission mode for created blob files.
	// Default: 0644
	FileMode os.FileMode `mapstructure:"-" yaml:"-"`
}

// Store is a filesystem-backed blob store. Safe for concurrent use: distinct
// handles map to distinct files, and writes are atomic renames.
type Store struct {
	basePath string
	fileMode os.FileMode
}

// New creates a filesystem blob store, creating the base directory if needed.
func New(cfg Config) (*Store, error) {
	if cfg.BasePath == "" {
		return nil, errors.New("base path is required")
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}

	if err := os.MkdirAll(cfg.BasePath, cfg.DirMode); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	return &Store{basePath: cfg.BasePath, fileMode: cfg.FileMode}, nil
}

// validHandle rejects anything that could escape the base directory. Handles
// are UUIDs we generated ourselves, so anything else is a caller bug.
func validHandle(handle string) bool {
	if handle == "" || handle == "." || handle == ".." {
		return false
	}
	return !strings.ContainsAny(handle, "/\\")
}

func (s *Store) blobPath(handle string) string {
	return filepath.Join(s.basePath, handle)
}

// Put stores content under a fresh UUID handle. The temporary file is
// removed on any failure so aborted uploads leave nothing behind.
func (s *Store) Put(ctx context.Context, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	handle := uuid.New().String()
	path := s.blobPath(handle)
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.fileMode)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create blob file: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("failed to close blob file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("failed to finalize blob: %w", err)
	}

	return handle, size, nil
}

// Open returns a reader for the blob stored under handle.
func (s *Store) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validHandle(handle) {
		return nil, models.ErrBlobNotFound
	}

	f, err := os.Open(s.blobPath(handle))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", handle, err)
	}
	return f, nil
}

// Remove deletes the blob stored under handle. Missing blobs are ignored.
func (s *Store) Remove(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validHandle(handle) {
		return nil
	}

	if err := os.Remove(s.blobPath(handle)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove blob %s: %w", handle, err)
	}
	return nil
}

// Close is a no-op for the filesystem store.
func (s *Store) Close() error {
	return nil
}
