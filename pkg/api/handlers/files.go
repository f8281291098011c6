package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/metrics"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
	"github.com/teddexter0/simple-file-uploader/pkg/namespace"
)

// multipartMemory is the in-memory threshold for multipart form parsing;
// larger parts spill to disk.
const multipartMemory = 4 << 20

// FileHandler serves upload, download and delete.
type FileHandler struct {
	engine  *namespace.Engine
	metrics *metrics.Metrics
}

// NewFileHandler creates a file handler.
func NewFileHandler(engine *namespace.Engine, m *metrics.Metrics) *FileHandler {
	return &FileHandler{engine: engine, metrics: m}
}

// Upload stores one multipart file, optionally into the folder named in the
// URL. The redirect goes back to where the user was: the folder view for
// folder uploads, the dashboard otherwise.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := mustSession(r)
	folderID := chi.URLParam(r, "folderID")
	back := "/dashboard"
	if folderID != "" {
		back = "/folder/" + folderID
	}

	// Bound the whole request body; the exact per-file limit is enforced
	// while streaming into the blob store.
	policy := h.engine.Policy()
	r.Body = http.MaxBytesReader(w, r.Body, policy.MaxBytes()+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			redirectError(w, r, back, OutcomeFileTooLarge)
			return
		}
		redirectError(w, r, back, OutcomeNoFile)
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		redirectError(w, r, back, OutcomeNoFile)
		return
	}
	defer part.Close()

	var target *string
	if folderID != "" {
		target = &folderID
	}

	contentType := header.Header.Get("Content-Type")
	_, err = h.engine.Upload(r.Context(), user.UserID, header.Filename, contentType, part, target)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrFileTooLarge):
			redirectError(w, r, back, OutcomeFileTooLarge)
		case errors.Is(err, models.ErrFileTypeNotAllowed):
			redirectError(w, r, back, OutcomeFileTypeNotAllowed)
		case errors.Is(err, models.ErrFolderNotFound):
			redirectError(w, r, "/dashboard", OutcomeFolderNotFound)
		default:
			logger.Error("upload failed", "user_id", user.UserID, "error", err)
			redirectError(w, r, back, OutcomeUploadFailed)
		}
		return
	}

	h.metrics.Uploads.Inc()
	redirectSuccess(w, r, back, OutcomeUploaded)
}

// Download streams a file back with its original filename. A file that is
// missing, foreign, or has lost its blob is a plain 404.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := mustSession(r)
	fileID := chi.URLParam(r, "id")

	file, rc, err := h.engine.OpenFile(r.Context(), user.UserID, fileID)
	if err != nil {
		if errors.Is(err, models.ErrFileNotFound) {
			NotFound(w, "file not found")
			return
		}
		logger.Error("download failed", "user_id", user.UserID, "file_id", fileID, "error", err)
		InternalServerError(w, "download failed")
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": file.Filename}))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; all we can do is log the broken transfer.
		logger.Warn("download interrupted",
			"user_id", user.UserID, "file_id", fileID, "error", err)
		return
	}
	h.metrics.Downloads.Inc()
}

// Delete removes a file.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := mustSession(r)
	fileID := chi.URLParam(r, "id")

	if err := h.engine.DeleteFile(r.Context(), user.UserID, fileID); err != nil {
		if errors.Is(err, models.ErrFileNotFound) {
			redirectError(w, r, "/dashboard", OutcomeFileNotFound)
			return
		}
		logger.Error("delete failed", "user_id", user.UserID, "file_id", fileID, "error", err)
		InternalServerError(w, "delete failed")
		return
	}

	h.metrics.Deletes.Inc()
	redirectSuccess(w, r, "/dashboard", OutcomeDeleted)
}
