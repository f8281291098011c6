package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func strPtr(s string) *string {
	return &s
}

func TestCreateAndGetFolder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	folder := &models.Folder{OwnerID: "owner-1", Name: "photos"}
	require.NoError(t, store.CreateFolder(ctx, folder))
	require.NotEmpty(t, folder.ID)
	require.False(t, folder.CreatedAt.IsZero())

	got, err := store.GetFolder(ctx, "owner-1", folder.ID)
	require.NoError(t, err)
	require.Equal(t, "photos", got.Name)
	require.Nil(t, got.ParentID)
}

func TestFolderOwnershipIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	folder := &models.Folder{OwnerID: "owner-1", Name: "secret"}
	require.NoError(t, store.CreateFolder(ctx, folder))

	// Another owner cannot see the folder even with the right id.
	_, err := store.GetFolder(ctx, "owner-2", folder.ID)
	require.True(t, errors.Is(err, models.ErrFolderNotFound))

	folders, err := store.ListFolders(ctx, "owner-2", nil)
	require.NoError(t, err)
	require.Empty(t, folders)
}

func TestListFoldersByParent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	parent := &models.Folder{OwnerID: "owner-1", Name: "docs"}
	require.NoError(t, store.CreateFolder(ctx, parent))

	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		OwnerID: "owner-1", Name: "work", ParentID: strPtr(parent.ID),
	}))
	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		OwnerID: "owner-1", Name: "archive", ParentID: strPtr(parent.ID),
	}))
	require.NoError(t, store.CreateFolder(ctx, &models.Folder{
		OwnerID: "owner-1", Name: "music",
	}))

	root, err := store.ListFolders(ctx, "owner-1", nil)
	require.NoError(t, err)
	require.Len(t, root, 2)
	require.Equal(t, "docs", root[0].Name)
	require.Equal(t, "music", root[1].Name)

	children, err := store.ListFolders(ctx, "owner-1", strPtr(parent.ID))
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, "archive", children[0].Name)
	require.Equal(t, "work", children[1].Name)

	count, err := store.CountFolders(ctx, "owner-1")
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestCreateGetDeleteFile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	file := &models.File{
		OwnerID:     "owner-1",
		Filename:    "report.pdf",
		BlobHandle:  "blob-abc",
		Size:        1234,
		ContentType: "application/pdf",
	}
	require.NoError(t, store.CreateFile(ctx, file))
	require.NotEmpty(t, file.ID)

	got, err := store.GetFile(ctx, "owner-1", file.ID)
	require.NoError(t, err)
	require.Equal(t, "report.pdf", got.Filename)
	require.Equal(t, "blob-abc", got.BlobHandle)
	require.Equal(t, int64(1234), got.Size)

	require.NoError(t, store.DeleteFile(ctx, "owner-1", file.ID))

	_, err = store.GetFile(ctx, "owner-1", file.ID)
	require.True(t, errors.Is(err, models.ErrFileNotFound))

	// Second delete reports not found.
	err = store.DeleteFile(ctx, "owner-1", file.ID)
	require.True(t, errors.Is(err, models.ErrFileNotFound))
}

func TestFileOwnershipIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	file := &models.File{OwnerID: "owner-1", Filename: "a.txt", BlobHandle: "h1"}
	require.NoError(t, store.CreateFile(ctx, file))

	_, err := store.GetFile(ctx, "owner-2", file.ID)
	require.True(t, errors.Is(err, models.ErrFileNotFound))

	err = store.DeleteFile(ctx, "owner-2", file.ID)
	require.True(t, errors.Is(err, models.ErrFileNotFound))

	// The record survives the foreign delete attempt.
	_, err = store.GetFile(ctx, "owner-1", file.ID)
	require.NoError(t, err)
}

func TestListFilesNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateFile(ctx, &models.File{
			OwnerID:    "owner-1",
			Filename:   fmt.Sprintf("file-%d.txt", i),
			BlobHandle: fmt.Sprintf("h-%d", i),
		}))
	}

	files, err := store.ListFiles(ctx, "owner-1", nil)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for i := 1; i < len(files); i++ {
		require.False(t, files[i].UploadedAt.After(files[i-1].UploadedAt))
	}
}

func TestConcurrentFileCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.CreateFile(ctx, &models.File{
				OwnerID:    "owner-1",
				Filename:   fmt.Sprintf("upload-%d.bin", i),
				BlobHandle: fmt.Sprintf("handle-%d", i),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "upload %d failed", i)
	}

	files, err := store.ListFiles(ctx, "owner-1", nil)
	require.NoError(t, err)
	require.Len(t, files, n)

	seen := make(map[string]bool, n)
	for _, f := range files {
		require.False(t, seen[f.Filename], "duplicate record for %s", f.Filename)
		seen[f.Filename] = true
	}
}

func TestCancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.CreateFolder(ctx, &models.Folder{OwnerID: "owner-1", Name: "x"})
	require.ErrorIs(t, err, context.Canceled)

	_, err = store.ListFiles(ctx, "owner-1", nil)
	require.ErrorIs(t, err, context.Canceled)
}
