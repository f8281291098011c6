package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/auth"
	"github.com/teddexter0/simple-file-uploader/pkg/identity"
	"github.com/teddexter0/simple-file-uploader/pkg/metrics"
	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	identity *identity.Service
	sessions *auth.Service
	metrics  *metrics.Metrics
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(identitySvc *identity.Service, sessions *auth.Service, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{identity: identitySvc, sessions: sessions, metrics: m}
}

// pageView is the JSON rendition of a page: the outcome tokens from the
// query string, ready for the frontend to map to banners.
type pageView struct {
	Page     string `json:"page"`
	Success  string `json:"success,omitempty"`
	Error    string `json:"error,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
}

// LoginPage renders the login view.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, pageView{
		Page:     "login",
		Success:  r.URL.Query().Get("success"),
		Error:    r.URL.Query().Get("error"),
		ReturnTo: r.URL.Query().Get("return_to"),
	})
}

// RegisterPage renders the registration view.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, pageView{
		Page:  "register",
		Error: r.URL.Query().Get("error"),
	})
}

// Login verifies credentials and establishes a session. Unknown email and
// wrong password produce the same outcome token, so the response does not
// reveal which emails are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "/login", OutcomeInvalidCredentials)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	returnTo := r.PostFormValue("return_to")

	user, err := h.identity.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) || errors.Is(err, models.ErrWrongPassword) {
			h.metrics.FailedLogins.Inc()
			if returnTo != "" {
				http.Redirect(w, r,
					"/login?return_to="+url.QueryEscape(returnTo)+"&error="+OutcomeInvalidCredentials,
					http.StatusSeeOther)
				return
			}
			redirectError(w, r, "/login", OutcomeInvalidCredentials)
			return
		}
		logger.Error("login failed", "error", err)
		InternalServerError(w, "login failed")
		return
	}

	if !h.establishSession(w, user) {
		return
	}
	http.Redirect(w, r, safeReturnTo(returnTo), http.StatusSeeOther)
}

// Register creates an account and logs the new user straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "/register", OutcomeRegisterFailed)
		return
	}

	user, err := h.identity.Register(r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
	)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			redirectError(w, r, "/register", OutcomeEmailTaken)
			return
		}
		redirectError(w, r, "/register", OutcomeRegisterFailed)
		return
	}

	h.metrics.Registrations.Inc()
	if !h.establishSession(w, user) {
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// establishSession issues a token and sets the session cookie. Reports
// false after writing an error response when signing fails.
func (h *AuthHandler) establishSession(w http.ResponseWriter, user *models.User) bool {
	token, err := h.sessions.IssueSession(user)
	if err != nil {
		logger.Error("failed to issue session token", "user_id", user.ID, "error", err)
		InternalServerError(w, "failed to create session")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.SessionDuration()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}
