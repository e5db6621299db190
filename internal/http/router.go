package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/iss-spotter/internal/http/handlers"
	"github.com/preston-bernstein/iss-spotter/internal/http/middleware"
	"github.com/preston-bernstein/iss-spotter/internal/metrics"
)

// NewRouter registers HTTP routes. stream may be nil when live push is off.
func NewRouter(handler *handlers.Handler, stream nethttp.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger, recorder))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/spots", func(sr chi.Router) {
		sr.Get("/", handler.Spots)
		sr.Get("/current", handler.Current)
		sr.Get("/upcoming", handler.Upcoming)
		if stream != nil {
			sr.Method(nethttp.MethodGet, "/stream", stream)
		}
	})
	return r
}
