package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skywatch-go/skywatch/monitoring"
)

// opsRouter builds the ops-only HTTP surface: /metrics and /healthz.
// There is no inbound business API in this pipeline, so the middleware
// stack is deliberately thin next to the teacher's full api subrouter.
func opsRouter(alive func() bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(monitoring.TracingMiddleware)
	r.Use(monitoring.MetricsMiddleware)
	r.Use(monitoring.LoggingMiddleware)

	r.Handle("/metrics", monitoring.PrometheusHandler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if !alive() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
