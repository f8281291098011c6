package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/metrics"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
	"github.com/teddexter0/simple-file-uploader/pkg/namespace"
)

// FolderHandler serves folder creation and folder views.
type FolderHandler struct {
	engine  *namespace.Engine
	metrics *metrics.Metrics
}

// NewFolderHandler creates a folder handler.
func NewFolderHandler(engine *namespace.Engine, m *metrics.Metrics) *FolderHandler {
	return &FolderHandler{engine: engine, metrics: m}
}

// Create makes a new folder, optionally under a parent given in the form.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := mustSession(r)

	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "/dashboard", OutcomeInvalidFolderName)
		return
	}
	name := r.PostFormValue("name")

	var parentID *string
	back := "/dashboard"
	if parent := r.PostFormValue("parent_id"); parent != "" {
		parentID = &parent
		back = "/folder/" + parent
	}

	folder, err := h.engine.CreateFolder(r.Context(), user.UserID, name, parentID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidFolderName), errors.Is(err, models.ErrFolderCycle):
			redirectError(w, r, back, OutcomeInvalidFolderName)
		case errors.Is(err, models.ErrFolderNotFound):
			redirectError(w, r, "/dashboard", OutcomeFolderNotFound)
		default:
			logger.Error("folder creation failed", "user_id", user.UserID, "error", err)
			InternalServerError(w, "failed to create folder")
		}
		return
	}

	h.metrics.FoldersCreated.Inc()
	logger.Debug("folder created via api", "folder_id", folder.ID)
	redirectSuccess(w, r, back, OutcomeFolderCreated)
}

// View renders one folder with its contents.
func (h *FolderHandler) View(w http.ResponseWriter, r *http.Request) {
	user := mustSession(r)
	folderID := chi.URLParam(r, "id")

	view, err := h.engine.ListFolder(r.Context(), user.UserID, folderID)
	if err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			if WantsJSON(r) {
				NotFound(w, "folder not found")
				return
			}
			redirectError(w, r, "/dashboard", OutcomeFolderNotFound)
			return
		}
		logger.Error("folder view failed", "user_id", user.UserID, "folder_id", folderID, "error", err)
		InternalServerError(w, "failed to load folder")
		return
	}

	WriteJSONOK(w, folderView{
		Page:       "folder",
		Success:    r.URL.Query().Get("success"),
		Error:      r.URL.Query().Get("error"),
		Username:   user.Username,
		Folder:     view.Folder,
		Subfolders: view.Subfolders,
		Files:      view.Files,
	})
}

// folderView is the JSON rendition of the dashboard and folder pages.
type folderView struct {
	Page       string           `json:"page"`
	Success    string           `json:"success,omitempty"`
	Error      string           `json:"error,omitempty"`
	Username   string           `json:"username"`
	Folder     *models.Folder   `json:"folder,omitempty"`
	Subfolders []*models.Folder `json:"subfolders"`
	Files      []*models.File   `json:"files"`
}
