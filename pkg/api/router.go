package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/teddexter0/simple-file-uploader/internal/logger"
	"github.com/teddexter0/simple-file-uploader/pkg/api/handlers"
	"github.com/teddexter0/simple-file-uploader/pkg/api/middleware"
	"github.com/teddexter0/simple-file-uploader/pkg/auth"
	"github.com/teddexter0/simple-file-uploader/pkg/identity"
	"github.com/teddexter0/simple-file-uploader/pkg/metrics"
	"github.com/teddexter0/simple-file-uploader/pkg/namespace"
	identitystore "github.com/teddexter0/simple-file-uploader/pkg/store/identity"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Identity      *identity.Service
	IdentityStore *identitystore.Store
	Engine        *namespace.Engine
	Sessions      *auth.Service
	Metrics       *metrics.Metrics
}

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Middleware stack, in order: request id, real IP extraction, request
// logging, panic recovery, per-request timeout, session decoding. Protected
// routes additionally require a session.
func NewRouter(config Config, deps Deps) http.Handler {
	config.applyDefaults()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.RequestTimeout))
	r.Use(middleware.Session(deps.Sessions))

	authHandler := handlers.NewAuthHandler(deps.Identity, deps.Sessions, deps.Metrics)
	dashboardHandler := handlers.NewDashboardHandler(deps.Engine)
	fileHandler := handlers.NewFileHandler(deps.Engine, deps.Metrics)
	folderHandler := handlers.NewFolderHandler(deps.Engine, deps.Metrics)
	healthHandler := handlers.NewHealthHandler(deps.IdentityStore)

	// Public routes.
	r.Get("/", dashboardHandler.Root)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	if config.MetricsEnabled && deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Protected routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Get("/dashboard", dashboardHandler.Dashboard)
		r.Get("/logout", authHandler.Logout)
		r.Post("/upload", fileHandler.Upload)
		r.Post("/upload/{folderID}", fileHandler.Upload)
		r.Get("/download/{id}", fileHandler.Download)
		r.Post("/delete/{id}", fileHandler.Delete)
		r.Post("/folder", folderHandler.Create)
		r.Get("/folder/{id}", folderHandler.View)
	})

	return r
}

// requestLogger logs request start at DEBUG and completion at INFO using the
// internal logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		logger.Debug("request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}
