package namespace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teddexter0/simple-file-uploader/internal/bytesize"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
	"github.com/teddexter0/simple-file-uploader/pkg/store/blob"
	blobfs "github.com/teddexter0/simple-file-uploader/pkg/store/blob/fs"
	nsbadger "github.com/teddexter0/simple-file-uploader/pkg/store/namespace/badger"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	meta, err := nsbadger.New(nsbadger.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, meta.Close()) })

	blobs, err := blobfs.New(blobfs.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	return NewEngine(meta, blobs, blob.UploadPolicy{
		MaxSize:           bytesize.KiB,
		AllowedExtensions: []string{".txt", ".pdf"},
	})
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	content := "round trip payload"
	file, err := engine.Upload(ctx, "owner-1", "notes.txt", "text/plain",
		strings.NewReader(content), nil)
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), file.Size)
	require.NotEqual(t, "notes.txt", file.BlobHandle)

	got, rc, err := engine.OpenFile(ctx, "owner-1", file.ID)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "notes.txt", got.Filename)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Upload(context.Background(), "owner-1", "virus.exe", "application/octet-stream",
		strings.NewReader("x"), nil)
	require.ErrorIs(t, err, models.ErrFileTypeNotAllowed)
}

func TestUploadSizeBoundary(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	atLimit := strings.Repeat("a", 1024)
	file, err := engine.Upload(ctx, "owner-1", "exact.txt", "text/plain",
		strings.NewReader(atLimit), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1024), file.Size)

	_, err = engine.Upload(ctx, "owner-1", "over.txt", "text/plain",
		strings.NewReader(atLimit+"b"), nil)
	require.ErrorIs(t, err, models.ErrFileTooLarge)
}

func TestUploadIntoForeignFolderFails(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	folder, err := engine.CreateFolder(ctx, "owner-1", "private", nil)
	require.NoError(t, err)

	_, err = engine.Upload(ctx, "owner-2", "sneaky.txt", "text/plain",
		strings.NewReader("x"), &folder.ID)
	require.ErrorIs(t, err, models.ErrFolderNotFound)

	// The rejected upload stored nothing.
	view, err := engine.ListFolder(ctx, "owner-1", folder.ID)
	require.NoError(t, err)
	require.Empty(t, view.Files)
}

func TestCreateFolderValidation(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateFolder(ctx, "owner-1", "   ", nil)
	require.ErrorIs(t, err, models.ErrInvalidFolderName)

	folder, err := engine.CreateFolder(ctx, "owner-1", "  docs  ", nil)
	require.NoError(t, err)
	require.Equal(t, "docs", folder.Name)

	missing := "no-such-folder"
	_, err = engine.CreateFolder(ctx, "owner-1", "child", &missing)
	require.ErrorIs(t, err, models.ErrFolderNotFound)

	// Parent owned by someone else is invisible.
	_, err = engine.CreateFolder(ctx, "owner-2", "child", &folder.ID)
	require.ErrorIs(t, err, models.ErrFolderNotFound)
}

func TestCreateFolderDeepChain(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	parent, err := engine.CreateFolder(ctx, "owner-1", "level-0", nil)
	require.NoError(t, err)
	for i := 1; i < 100; i++ {
		parent, err = engine.CreateFolder(ctx, "owner-1", fmt.Sprintf("level-%d", i), &parent.ID)
		require.NoError(t, err)
	}

	leaf, err := engine.CreateFolder(ctx, "owner-1", "leaf", &parent.ID)
	require.NoError(t, err)
	require.Equal(t, parent.ID, *leaf.ParentID)
}

func TestNestedFolderListing(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	parent, err := engine.CreateFolder(ctx, "owner-1", "docs", nil)
	require.NoError(t, err)
	child, err := engine.CreateFolder(ctx, "owner-1", "work", &parent.ID)
	require.NoError(t, err)

	_, err = engine.Upload(ctx, "owner-1", "in-child.txt", "text/plain",
		strings.NewReader("x"), &child.ID)
	require.NoError(t, err)
	_, err = engine.Upload(ctx, "owner-1", "at-root.txt", "text/plain",
		strings.NewReader("y"), nil)
	require.NoError(t, err)

	root, err := engine.ListRoot(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, root.Subfolders, 1)
	require.Len(t, root.Files, 1)
	require.Equal(t, "at-root.txt", root.Files[0].Filename)

	view, err := engine.ListFolder(ctx, "owner-1", parent.ID)
	require.NoError(t, err)
	require.Len(t, view.Subfolders, 1)
	require.Equal(t, "work", view.Subfolders[0].Name)
	require.Empty(t, view.Files)

	leaf, err := engine.ListFolder(ctx, "owner-1", child.ID)
	require.NoError(t, err)
	require.Len(t, leaf.Files, 1)
	require.Equal(t, "in-child.txt", leaf.Files[0].Filename)
}

func TestDeleteFileRemovesContent(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	file, err := engine.Upload(ctx, "owner-1", "gone.txt", "text/plain",
		strings.NewReader("bye"), nil)
	require.NoError(t, err)

	require.NoError(t, engine.DeleteFile(ctx, "owner-1", file.ID))

	_, _, err = engine.OpenFile(ctx, "owner-1", file.ID)
	require.ErrorIs(t, err, models.ErrFileNotFound)

	err = engine.DeleteFile(ctx, "owner-1", file.ID)
	require.ErrorIs(t, err, models.ErrFileNotFound)
}

func TestDeleteForeignFileFails(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	file, err := engine.Upload(ctx, "owner-1", "mine.txt", "text/plain",
		strings.NewReader("keep"), nil)
	require.NoError(t, err)

	err = engine.DeleteFile(ctx, "owner-2", file.ID)
	require.ErrorIs(t, err, models.ErrFileNotFound)

	// Still downloadable by the owner.
	_, rc, err := engine.OpenFile(ctx, "owner-1", file.ID)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
}

func TestOpenFileMissingBlob(t *testing.T) {
	meta, err := nsbadger.New(nsbadger.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, meta.Close()) })

	blobs, err := blobfs.New(blobfs.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	engine := NewEngine(meta, blobs, blob.DefaultUploadPolicy())
	ctx := context.Background()

	// Record pointing at a blob that never existed.
	record := &models.File{OwnerID: "owner-1", Filename: "ghost.txt", BlobHandle: "missing"}
	require.NoError(t, meta.CreateFile(ctx, record))

	_, _, err = engine.OpenFile(ctx, "owner-1", record.ID)
	require.True(t, errors.Is(err, models.ErrFileNotFound))
}
