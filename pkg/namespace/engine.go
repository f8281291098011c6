// Package namespace implements the per-user folder and file operations.
//
// The engine composes the metadata store and the blob store: metadata
// decides what a user may see, blobs hold the bytes. Every operation is
// scoped to one owner; there is no cross-user sharing.
package namespace

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
	"github.com/teddexter0/simple-file-uploader/pkg/store/blob"
	nsstore "github.com/teddexter0/simple-file-uploader/pkg/store/namespace"
)

// Engine coordinates namespace metadata and blob content for all users.
type Engine struct {
	meta   nsstore.Store
	blobs  blob.Store
	policy blob.UploadPolicy
}

// NewEngine creates a namespace engine.
func NewEngine(meta nsstore.Store, blobs blob.Store, policy blob.UploadPolicy) *Engine {
	policy.ApplyDefaults()
	return &Engine{meta: meta, blobs: blobs, policy: policy}
}

// Policy returns the upload policy in effect.
func (e *Engine) Policy() blob.UploadPolicy {
	return e.policy
}

// FolderView is a folder together with its direct contents.
type FolderView struct {
	Folder     *models.Folder   `json:"folder,omitempty"`
	Subfolders []*models.Folder `json:"subfolders"`
	Files      []*models.File   `json:"files"`
}

// CreateFolder creates a folder for ownerID under parentID (nil for root).
//
// The name is whitespace-trimmed and must be non-empty. When a parent is
// given it must exist and belong to the same owner, and its chain up to the
// root must be acyclic; a folder is never attached below a broken chain.
func (e *Engine) CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	normalized, err := models.NormalizeFolderName(name)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := e.checkFolderChain(ctx, ownerID, *parentID); err != nil {
			return nil, err
		}
	}

	folder := &models.Folder{
		OwnerID:  ownerID,
		Name:     normalized,
		ParentID: parentID,
	}
	if err := e.meta.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}

	logger.Info("folder created", "user_id", ownerID, "folder_id", folder.ID, "name", folder.Name)
	return folder, nil
}

// checkFolderChain verifies that folderID exists for ownerID and that the
// walk from it to the root terminates.
//
// An acyclic chain visits each folder at most once, so the owner's total
// folder count bounds the walk; any walk longer than that has revisited a
// folder.
func (e *Engine) checkFolderChain(ctx context.Context, ownerID, folderID string) error {
	total, err := e.meta.CountFolders(ctx, ownerID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	current := folderID
	for steps := 0; steps <= total; steps++ {
		if seen[current] {
			return models.ErrFolderCycle
		}
		seen[current] = true

		folder, err := e.meta.GetFolder(ctx, ownerID, current)
		if err != nil {
			return err
		}
		if folder.ParentID == nil {
			return nil
		}
		current = *folder.ParentID
	}
	return models.ErrFolderCycle
}

// ListRoot returns the root-level folders and files of ownerID.
func (e *Engine) ListRoot(ctx context.Context, ownerID string) (*FolderView, error) {
	folders, err := e.meta.ListFolders(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	files, err := e.meta.ListFiles(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	return &FolderView{Subfolders: folders, Files: files}, nil
}

// ListFolder returns one folder of ownerID with its direct contents.
func (e *Engine) ListFolder(ctx context.Context, ownerID, folderID string) (*FolderView, error) {
	folder, err := e.meta.GetFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}
	subfolders, err := e.meta.ListFolders(ctx, ownerID, &folderID)
	if err != nil {
		return nil, err
	}
	files, err := e.meta.ListFiles(ctx, ownerID, &folderID)
	if err != nil {
		return nil, err
	}
	return &FolderView{Folder: folder, Subfolders: subfolders, Files: files}, nil
}

// Upload stores content for ownerID and records it as filename, optionally
// inside folderID.
//
// The target folder is validated before any bytes are stored, so a rejected
// upload never leaves a blob behind. Blob write happens before the metadata
// write; if recording the metadata fails afterwards the blob is removed on a
// best-effort basis and the failure is returned.
func (e *Engine) Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader, folderID *string) (*models.File, error) {
	if err := e.policy.CheckFilename(filename); err != nil {
		return nil, err
	}
	if folderID != nil {
		if _, err := e.meta.GetFolder(ctx, ownerID, *folderID); err != nil {
			return nil, err
		}
	}

	handle, size, err := e.blobs.Put(ctx, e.policy.LimitReader(r))
	if err != nil {
		if errors.Is(err, models.ErrFileTooLarge) {
			return nil, models.ErrFileTooLarge
		}
		return nil, fmt.Errorf("failed to store content: %w", err)
	}

	file := &models.File{
		OwnerID:     ownerID,
		Filename:    filename,
		BlobHandle:  handle,
		Size:        size,
		ContentType: contentType,
		FolderID:    folderID,
	}
	if err := e.meta.CreateFile(ctx, file); err != nil {
		if rmErr := e.blobs.Remove(ctx, handle); rmErr != nil {
			logger.Warn("orphaned blob after failed metadata write",
				"blob_handle", handle, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	logger.Info("file uploaded",
		"user_id", ownerID, "file_id", file.ID, "filename", filename, "size", size)
	return file, nil
}

// OpenFile returns the metadata and a content reader for one file.
//
// A record whose blob has gone missing is reported as models.ErrFileNotFound;
// the caller cannot tell a half-deleted file from one that never existed.
func (e *Engine) OpenFile(ctx context.Context, ownerID, fileID string) (*models.File, io.ReadCloser, error) {
	file, err := e.meta.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := e.blobs.Open(ctx, file.BlobHandle)
	if err != nil {
		if errors.Is(err, models.ErrBlobNotFound) {
			logger.Warn("file record without blob",
				"user_id", ownerID, "file_id", fileID, "blob_handle", file.BlobHandle)
			return nil, nil, models.ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to open content: %w", err)
	}
	return file, rc, nil
}

// DeleteFile removes a file's content and its record.
//
// Blob removal runs first but a blob-side failure does not keep the record
// alive: the metadata delete always runs, so the file disappears from
// listings even if the bytes linger. The blob error is logged, not returned.
func (e *Engine) DeleteFile(ctx context.Context, ownerID, fileID string) error {
	file, err := e.meta.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return err
	}

	if err := e.blobs.Remove(ctx, file.BlobHandle); err != nil {
		logger.Warn("failed to remove blob, deleting record anyway",
			"user_id", ownerID, "file_id", fileID, "blob_handle", file.BlobHandle, "error", err)
	}

	if err := e.meta.DeleteFile(ctx, ownerID, fileID); err != nil {
		return err
	}

	logger.Info("file deleted", "user_id", ownerID, "file_id", fileID)
	return nil
}
