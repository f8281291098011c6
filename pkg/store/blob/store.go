// Package blob defines the content store for uploaded file bytes.
//
// Blob stores hold opaque content under internally generated handles. User
// supplied filenames never appear here; mapping a handle back to a filename
// is the namespace layer's job.
package blob

import (
	"context"
	"io"
)

// Store persists raw file content under random internal handles.
//
// Implementations must be safe for concurrent use. Handles are opaque to
// callers and never derived from user input.
type Store interface {
	// Put stores the content read from r under a freshly generated handle
	// and returns the handle together with the number of bytes written.
	Put(ctx context.Context, r io.Reader) (handle string, size int64, err error)

	// Open returns a reader for the content stored under handle.
	// Returns models.ErrBlobNotFound if no such blob exists.
	Open(ctx context.Context, handle string) (io.ReadCloser, error)

	// Remove deletes the content stored under handle. Removing a handle
	// that does not exist is not an error.
	Remove(ctx context.Context, handle string) error

	// Close releases any resources held by the store.
	Close() error
}
