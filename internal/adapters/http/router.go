package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/streamforge/media-access-service/internal/application"
	"github.com/streamforge/media-access-service/internal/ports"
)

// Handler is the HTTP adapter entrypoint for media access use-cases.
// Keeping only application and verifier dependencies here preserves clean adapter boundaries.
type Handler struct {
	service  *application.Service
	verifier ports.TokenVerifier
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service, verifier ports.TokenVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

// NewRouter registers media HTTP routes and the middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/media/v1", func(r chi.Router) {
		r.Get("/player-settings", handler.playerSettings)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/content/{content_id}/stream", handler.getStreamingURL)
			r.Put("/content/{content_id}/progress", handler.saveProgress)
			r.Get("/content/{content_id}/progress", handler.getProgress)
			r.Get("/library", handler.listLibrary)
			r.Delete("/player-settings/cache", handler.invalidatePlayerSettings)
		})
	})

	return r
}
