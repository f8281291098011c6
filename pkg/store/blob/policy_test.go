package blob

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teddexter0/simple-file-uploader/internal/bytesize"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

func TestCheckFilename(t *testing.T) {
	policy := DefaultUploadPolicy()

	tests := []struct {
		filename string
		wantErr  error
	}{
		{"photo.jpg", nil},
		{"photo.JPG", nil},
		{"Report.PDF", nil},
		{"archive.zip", nil},
		{"notes.txt", nil},
		{"script.sh", models.ErrFileTypeNotAllowed},
		{"binary.exe", models.ErrFileTypeNotAllowed},
		{"noextension", models.ErrFileTypeNotAllowed},
		{"", models.ErrFileTypeNotAllowed},
		{"double.tar.gz", models.ErrFileTypeNotAllowed},
		{"trick.zip.exe", models.ErrFileTypeNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := policy.CheckFilename(tt.filename)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLimitReaderBoundary(t *testing.T) {
	policy := UploadPolicy{MaxSize: 8, AllowedExtensions: []string{".txt"}}

	// Exactly at the limit reads cleanly.
	data, err := io.ReadAll(policy.LimitReader(strings.NewReader("12345678")))
	require.NoError(t, err)
	require.Len(t, data, 8)

	// One byte over fails.
	_, err = io.ReadAll(policy.LimitReader(strings.NewReader("123456789")))
	require.ErrorIs(t, err, models.ErrFileTooLarge)
}

func TestApplyDefaults(t *testing.T) {
	var policy UploadPolicy
	policy.ApplyDefaults()

	require.Equal(t, 10*bytesize.MiB, policy.MaxSize)
	require.NotEmpty(t, policy.AllowedExtensions)

	custom := UploadPolicy{MaxSize: bytesize.MiB, AllowedExtensions: []string{".csv"}}
	custom.ApplyDefaults()
	require.Equal(t, bytesize.MiB, custom.MaxSize)
	require.Equal(t, []string{".csv"}, custom.AllowedExtensions)
}
