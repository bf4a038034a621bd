// Package router sets up all HTTP routes and middleware chains for the
// deckforge API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"deckforge/internal/handlers"
	"deckforge/internal/metrics"
	"deckforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. limiter guards slideshow creation and may be nil.
func New(slideshows *handlers.Slideshows, limiter *middleware.RateLimiter, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(m))
	r.Use(middleware.SecureHeaders)

	r.Get("/", handlers.Home)
	r.Get("/health", handlers.Health)
	r.Get("/themes", handlers.Themes)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/slideshow", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/{theme}", slideshows.Create)
		})
		r.Get("/{id}/{theme}", slideshows.Download)
	})

	return r
}
