// Package namespace defines the metadata store for per-user folder trees and
// file records.
//
// The store only deals in records; it knows nothing about blob contents or
// upload policy. All lookups are scoped by owner id, so one user's records are
// unreachable from another user's requests by construction.
package namespace

import (
	"context"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// Store persists folder and file metadata for all users.
//
// Implementations must be safe for concurrent use. Get, List and Delete
// operations take the owner id alongside the record id: a record that exists
// but belongs to a different owner is reported as not found.
type Store interface {
	// CreateFolder persists a new folder record.
	CreateFolder(ctx context.Context, folder *models.Folder) error

	// GetFolder retrieves a folder owned by ownerID.
	// Returns models.ErrFolderNotFound if no such folder exists for that owner.
	GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error)

	// ListFolders returns the folders owned by ownerID whose parent is
	// parentID (nil for root-level folders), sorted by name.
	ListFolders(ctx context.Context, ownerID string, parentID *string) ([]*models.Folder, error)

	// CountFolders returns the total number of folders owned by ownerID.
	CountFolders(ctx context.Context, ownerID string) (int, error)

	// CreateFile persists a new file record.
	CreateFile(ctx context.Context, file *models.File) error

	// GetFile retrieves a file owned by ownerID.
	// Returns models.ErrFileNotFound if no such file exists for that owner.
	GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error)

	// ListFiles returns the files owned by ownerID located in folderID
	// (nil for the namespace root), sorted by upload time, newest first.
	ListFiles(ctx context.Context, ownerID string, folderID *string) ([]*models.File, error)

	// DeleteFile removes a file record. Returns models.ErrFileNotFound if
	// the record does not exist for that owner.
	DeleteFile(ctx context.Context, ownerID, fileID string) error

	// Close releases the underlying database resources.
	Close() error
}
