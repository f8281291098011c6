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

// CreateFolder persists a new folder record. A fresh UUID is assigned when
// the record has no id yet.
func (s *Store) CreateFolder(ctx context.Context, folder *models.Folder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if folder.ID == "" {
		folder.ID = uuid.New().String()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}

	data, err := encodeFolder(folder)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyFolder(folder.OwnerID, folder.ID), data)
	})
}

// GetFolder retrieves a folder owned by ownerID. A folder id that exists
// under a different owner yields models.ErrFolderNotFound.
func (s *Store) GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var folder *models.Folder
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyFolder(ownerID, folderID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return models.ErrFolderNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			folder, err = decodeFolder(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// ListFolders returns the folders owned by ownerID whose parent is parentID,
// sorted by name. A nil parentID selects root-level folders.
func (s *Store) ListFolders(ctx context.Context, ownerID string, parentID *string) ([]*models.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var folders []*models.Folder
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyFolderPrefix(ownerID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				folder, err := decodeFolder(val)
				if err != nil {
					return err
				}
				if sameParent(folder.ParentID, parentID) {
					folders = append(folders, folder)
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

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})
	return folders, nil
}

// CountFolders returns the total number of folders owned by ownerID.
func (s *Store) CountFolders(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyFolderPrefix(ownerID)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// sameParent reports whether two optional parent ids refer to the same
// location (both nil, or both set to the same id).
func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
