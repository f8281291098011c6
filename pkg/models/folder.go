package models

import (
	"strings"
	"time"
)

// Folder is a named container in a user's namespace.
//
// Folders form a forest per owner: ParentID is nil for root-level folders.
// A folder's parent always belongs to the same owner; the namespace engine
// enforces this at creation time.
type Folder struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeFolderName trims surrounding whitespace from a requested folder
// name. Returns ErrInvalidFolderName if nothing remains.
func NormalizeFolderName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrInvalidFolderName
	}
	return trimmed, nil
}
