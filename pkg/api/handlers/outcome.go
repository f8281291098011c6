package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

// Outcome tokens carried in the query string after a redirect. The frontend
// maps each token to a banner; the server never sends free-form messages.
const (
	// Success tokens.
	OutcomeUploaded      = "uploaded"
	OutcomeDeleted       = "deleted"
	OutcomeFolderCreated = "folder-created"

	// Error tokens.
	OutcomeNoFile             = "no-file"
	OutcomeFileNotFound       = "file-not-found"
	OutcomeInvalidFolderName  = "invalid-folder-name"
	OutcomeFolderNotFound     = "folder-not-found"
	OutcomeFileTooLarge       = "file-too-large"
	OutcomeFileTypeNotAllowed = "file-type-not-allowed"
	OutcomeUploadFailed       = "upload-failed"
	OutcomeEmailTaken         = "email-taken"
	OutcomeInvalidCredentials = "invalid-credentials"
	OutcomeRegisterFailed     = "register-failed"
)

// redirectSuccess redirects to path with a single success token.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path, token string) {
	redirectOutcome(w, r, path, "success", token)
}

// redirectError redirects to path with a single error token.
func redirectError(w http.ResponseWriter, r *http.Request, path, token string) {
	redirectOutcome(w, r, path, "error", token)
}

func redirectOutcome(w http.ResponseWriter, r *http.Request, path, kind, token string) {
	http.Redirect(w, r, path+"?"+kind+"="+url.QueryEscape(token), http.StatusSeeOther)
}

// WantsJSON reports whether the caller is an API client rather than a
// browser. API clients get problem+json errors instead of redirects.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// safeReturnTo validates a post-login redirect target. Only relative paths
// within the service are allowed; anything else falls back to the dashboard.
func safeReturnTo(raw string) string {
	if raw == "" {
		return "/dashboard"
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/dashboard"
	}
	if strings.Contains(raw, "\\") {
		return "/dashboard"
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return "/dashboard"
	}
	return raw
}
