package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the trip-proxy HTTP router.
//
// This is intentionally a thin adapter: handlers decode/validate the wire
// shapes and delegate to the app services injected into Server.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint for infra checks; not part of the proxy's API surface.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/trip", s.handleTrip)
	r.Post("/data", s.handleInsertPlace)
	r.Delete("/data", s.handleDeletePlace)
	r.Get("/remaining-places", s.handleRemainingPlaces)

	return r
}
