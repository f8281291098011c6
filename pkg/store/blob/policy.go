package blob

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/teddexter0/simple-file-uploader/internal/bytesize"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// DefaultMaxSize is the upload size limit applied when none is configured.
const DefaultMaxSize = 10 * bytesize.MiB

// DefaultAllowedExtensions lists the file extensions accepted by default.
var DefaultAllowedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".pdf", ".txt", ".doc", ".docx", ".zip",
}

// UploadPolicy constrains what may be uploaded. The size limit is inclusive:
// a file of exactly MaxSize bytes is accepted, one byte more is rejected.
type UploadPolicy struct {
	MaxSize           bytesize.ByteSize `mapstructure:"max_size" yaml:"max_size"`
	AllowedExtensions []string          `mapstructure:"allowed_extensions" yaml:"allowed_extensions"`
}

// DefaultUploadPolicy returns the policy used when nothing is configured.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSize:           DefaultMaxSize,
		AllowedExtensions: DefaultAllowedExtensions,
	}
}

// ApplyDefaults fills in zero-valued fields with defaults.
func (p *UploadPolicy) ApplyDefaults() {
	if p.MaxSize == 0 {
		p.MaxSize = DefaultMaxSize
	}
	if len(p.AllowedExtensions) == 0 {
		p.AllowedExtensions = DefaultAllowedExtensions
	}
}

// CheckFilename validates the extension of a user supplied filename against
// the allowlist. Matching is case-insensitive. Returns
// models.ErrFileTypeNotAllowed on rejection.
func (p *UploadPolicy) CheckFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range p.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return models.ErrFileTypeNotAllowed
}

// MaxBytes returns the size limit as an int64 for use with io.LimitReader.
func (p *UploadPolicy) MaxBytes() int64 {
	return p.MaxSize.Int64()
}

// LimitReader wraps r so reading more than MaxSize bytes fails with
// models.ErrFileTooLarge. A stream of exactly MaxSize bytes reads cleanly.
func (p *UploadPolicy) LimitReader(r io.Reader) io.Reader {
	return &limitReader{r: r, remaining: p.MaxBytes()}
}

type limitReader struct {
	r         io.Reader
	remaining int64
}

func (lr *limitReader) Read(b []byte) (int, error) {
	if lr.remaining < 0 {
		return 0, models.ErrFileTooLarge
	}
	n, err := lr.r.Read(b)
	lr.remaining -= int64(n)
	if lr.remaining < 0 {
		return 0, models.ErrFileTooLarge
	}
	return n, err
}
