package handlers

import (
	"net/http"

	"github.com/teddexter0/simple-file-uploader/pkg/auth"
)

// mustSession returns the session claims for a request that passed the
// RequireSession middleware. Routes that call it are never reachable
// without a session, so a missing one is a wiring bug.
func mustSession(r *http.Request) *auth.Claims {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		panic("handler reached without session; missing RequireSession middleware")
	}
	return claims
}
