// Package middleware provides session authentication for the HTTP API.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/teddexter0/simple-file-uploader/pkg/api/handlers"
	"github.com/teddexter0/simple-file-uploader/pkg/auth"
)

// tokenFromRequest extracts the session token from the cookie or the
// Authorization header. Returns "" when neither is present.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(auth.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Session attaches valid session claims to the request context without
// requiring them. Handlers behind it decide what anonymous callers see.
func Session(sessions *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := tokenFromRequest(r); token != "" {
				if claims, err := sessions.ValidateSession(token); err == nil {
					r = r.WithContext(auth.ContextWithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects requests without a valid session. Browsers are
// redirected to the login page with the original URL preserved in return_to;
// API callers get a 401 problem response.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.ClaimsFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if handlers.WantsJSON(r) {
			handlers.Unauthorized(w, "authentication required")
			return
		}

		returnTo := r.URL.Path
		if r.URL.RawQuery != "" {
			returnTo += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, "/login?return_to="+url.QueryEscape(returnTo), http.StatusSeeOther)
	})
}
