package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter creates a chi.Mux with all routes, middleware, and handlers
// configured. runner executes dispatch cycles; pinger checks queue
// connectivity for readiness.
func NewRouter(runner CycleRunner, pinger Pinger, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CorrelationIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(RecoverMiddleware(log))

	r.Get("/", RootHandler())
	r.Get("/process-emails", ProcessEmailsHandler(runner, log))

	r.Get("/healthz", HealthzHandler())
	r.Get("/readyz", ReadyzHandler(pinger))
	r.Handle("/metrics", promhttp.Handler())

	return r
}
