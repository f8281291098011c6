package models

import "errors"

// Domain errors shared across stores, services and the HTTP layer.
//
// Stores convert backend-specific failures (gorm.ErrRecordNotFound,
// unique-constraint violations, badger.ErrKeyNotFound) into these values so
// callers can branch with errors.Is without knowing the backend.
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrWrongPassword  = errors.New("wrong password")

	// Namespace errors
	ErrFolderNotFound    = errors.New("folder not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidFolderName = errors.New("invalid folder name")
	ErrFolderCycle       = errors.New("folder parent chain does not terminate at a root")

	// Blob errors
	ErrBlobNotFound       = errors.New("blob not found")
	ErrFileTooLarge       = errors.New("file exceeds upload size limit")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)
