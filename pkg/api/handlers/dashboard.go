package handlers

import (
	"net/http"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/auth"
	"github.com/teddexter0/simple-file-uploader/pkg/namespace"
)

// DashboardHandler serves the landing page and the dashboard view.
type DashboardHandler struct {
	engine *namespace.Engine
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(engine *namespace.Engine) *DashboardHandler {
	return &DashboardHandler{engine: engine}
}

// Root sends authenticated users to their dashboard and everyone else a
// small landing document.
func (h *DashboardHandler) Root(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.ClaimsFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	WriteJSONOK(w, map[string]string{
		"service":  "simple-file-uploader",
		"login":    "/login",
		"register": "/register",
	})
}

// Dashboard renders the root of the user's namespace.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := mustSession(r)

	view, err := h.engine.ListRoot(r.Context(), user.UserID)
	if err != nil {
		logger.Error("dashboard failed", "user_id", user.UserID, "error", err)
		InternalServerError(w, "failed to load dashboard")
		return
	}

	WriteJSONOK(w, folderView{
		Page:       "dashboard",
		Success:    r.URL.Query().Get("success"),
		Error:      r.URL.Query().Get("error"),
		Username:   user.Username,
		Subfolders: view.Subfolders,
		Files:      view.Files,
	})
}
