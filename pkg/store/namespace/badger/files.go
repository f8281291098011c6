package badger

import (
	"context"
	"errors"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// CreateFile persists a new file record. A fresh UUID is assigned when the
// record has no id yet.
func (s *Store) CreateFile(ctx context.Context, file *models.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}

	data, err := encodeFile(file)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyFile(file.OwnerID, file.ID), data)
	})
}

// GetFile retrieves a file owned by ownerID. A file id that exists under a
// different owner yields models.ErrFileNotFound.
func (s *Store) GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file *models.File
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyFile(ownerID, fileID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return models.ErrFileNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			file, err = decodeFile(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles returns the files owned by ownerID located in folderID, sorted
// by upload time, newest first. A nil folderID selects root-level files.
func (s *Store) ListFiles(ctx context.Context, ownerID string, folderID *string) ([]*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []*models.File
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyFilePrefix(ownerID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				file, err := decodeFile(val)
				if err != nil {
					return err
				}
				if sameParent(file.FolderID, folderID) {
					files = append(files, file)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	return files, nil
}

// DeleteFile removes a file record. The existence check and the delete run
// inside one transaction so a concurrent delete of the same record is
// reported as not found rather than silently succeeding twice.
func (s *Store) DeleteFile(ctx context.Context, ownerID, fileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := keyFile(ownerID, fileID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return models.ErrFileNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}
