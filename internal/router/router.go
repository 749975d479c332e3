// Package router sets up the HTTP routes for the brand content pipeline
// API. The surface is intentionally small: config reads and edits,
// credential status, template publishing, and caption generation.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"brandpress/internal/handlers"
)

// New creates and returns the configured Chi router.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/brands/{slug}", func(r chi.Router) {
			r.Get("/config", api.BrandConfig)
			r.Put("/config/overrides", api.MergeOverride)
			r.Get("/credentials/status", api.CredentialsStatus)
			r.Post("/prompts/caption", api.GenerateCaption)
		})

		r.Post("/templates/{category}", api.PublishTemplate)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
