package handler

import (
	"net/http"

	"github.com/folio/backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Handler  *Handler
	Contacts *ContactHandler
	// Metrics, when set, instruments every route and serves GET /metrics.
	Metrics *metrics.Metrics
	// AllowedOrigins defaults to every origin.
	AllowedOrigins []string
}

// NewRouter builds the HTTP routes of the contact API.
func NewRouter(cfg RouterConfig) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	if cfg.Metrics != nil {
		r.Use(Instrument(cfg.Metrics))
	}
	r.Use(middleware.Recoverer)

	// The contact form is public; no credentials are sent cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(SecurityHeaders)

	r.Get("/api/health", cfg.Handler.Health)
	r.Post("/api/contact", cfg.Contacts.Submit)
	r.Get("/api/contacts", cfg.Contacts.List)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	return r
}
