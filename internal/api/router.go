package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/calc-core/internal/calc"
)

// healthCheckTimeout bounds the dependency checks behind /health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "Method not allowed.")
	})

	for _, spec := range calc.Specs() {
		r.Get("/"+string(spec.Op), s.handleOperation(spec))
	}
	r.Get("/history", s.handleHistory)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	return r
}

// handleHealth reports "ok" unless the history store fails its check.
// Optional components are listed but never change the status code.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	body := map[string]any{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int64(s.metrics.uptime().Seconds()),
	}

	components := make(map[string]string, len(s.checks)+1)
	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Warn("database health check failed", "error", err)
			components["database"] = "unavailable"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			components["database"] = "ok"
		}
	}
	for name, check := range s.checks {
		if check == nil {
			continue
		}
		if err := check.HealthCheck(ctx); err != nil {
			components[name] = "unavailable"
		} else {
			components[name] = "ok"
		}
	}
	if len(components) > 0 {
		body["components"] = components
	}

	writeJSON(w, status, body)
}
