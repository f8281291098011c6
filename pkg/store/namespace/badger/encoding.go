package badger

import (
	"encoding/json"
	"fmt"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// Key namespace design.
//
// Every key starts with the owner id, so a single prefix scan yields exactly
// one user's records and nothing else. Cross-tenant isolation is a property
// of the key layout, not of filtering code.
//
// Data Type   Key Format                 Value Type
// ====================================================
// Folder      u:<ownerID>:d:<folderID>   Folder (JSON)
// File        u:<ownerID>:f:<fileID>     File (JSON)

const (
	prefixOwner  = "u:"
	prefixFolder = ":d:"
	prefixFile   = ":f:"
)

// keyFolder generates the key for a folder record: "u:<ownerID>:d:<folderID>"
func keyFolder(ownerID, folderID string) []byte {
	return []byte(prefixOwner + ownerID + prefixFolder + folderID)
}

// keyFolderPrefix generates the scan prefix for all folders of one owner.
func keyFolderPrefix(ownerID string) []byte {
	return []byte(prefixOwner + ownerID + prefixFolder)
}

// keyFile generates the key for a file record: "u:<ownerID>:f:<fileID>"
func keyFile(ownerID, fileID string) []byte {
	return []byte(prefixOwner + ownerID + prefixFile + fileID)
}

// keyFilePrefix generates the scan prefix for all files of one owner.
func keyFilePrefix(ownerID string) []byte {
	return []byte(prefixOwner + ownerID + prefixFile)
}

// encodeFolder serializes a folder record to JSON.
func encodeFolder(folder *models.Folder) ([]byte, error) {
	data, err := json.Marshal(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to encode folder %s: %w", folder.ID, err)
	}
	return data, nil
}

// decodeFolder deserializes a folder record from JSON.
func decodeFolder(data []byte) (*models.Folder, error) {
	var folder models.Folder
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, fmt.Errorf("failed to decode folder record: %w", err)
	}
	return &folder, nil
}

// encodeFile serializes a file record to JSON.
func encodeFile(file *models.File) ([]byte, error) {
	data, err := json.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode file %s: %w", file.ID, err)
	}
	return data, nil
}

// decodeFile deserializes a file record from JSON.
func decodeFile(data []byte) (*models.File, error) {
	var file models.File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode file record: %w", err)
	}
	return &file, nil
}
