package models

import "time"

// File is the metadata record for one uploaded object.
//
// Filename is what the user supplied; BlobHandle is the random internal name
// the blob is stored under. The two are always distinct so user input never
// reaches the blob layer as a path component. FolderID is nil for files at
// the root of the owner's namespace.
type File struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Filename    string    `json:"filename"`
	BlobHandle  string    `json:"blob_handle"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	FolderID    *string   `json:"folder_id,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
