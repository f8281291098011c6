package handlers

import (
	"net/http"
	"time"

	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Can the server reach its stores?
type HealthHandler struct {
	identity *identitystore.Store
}

// NewHealthHandler creates a new health handler. The store may be nil, in
// which case readiness reports unhealthy.
func NewHealthHandler(identity *identitystore.Store) *HealthHandler {
	return &HealthHandler{identity: identity}
}

// healthResponse is the body of health endpoints.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Liveness handles GET /health. Succeeds whenever the HTTP server is
// responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// Readiness handles GET /health/ready. Verifies the relational store
// answers a trivial query.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.identity == nil {
		WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     "identity store not initialized",
		})
		return
	}

	if _, err := h.identity.ListUsers(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     err.Error(),
		})
		return
	}

	WriteJSONOK(w, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
