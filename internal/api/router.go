// Package api exposes the tip splitter over HTTP: a chi router with JSON
// handlers for the employee directory, calculations, history and
// statistics, plus health and metrics endpoints.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lenregele/tipsplit/internal/metrics"
	"github.com/lenregele/tipsplit/internal/service"
	"github.com/lenregele/tipsplit/internal/storage"
)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(
	store storage.Store,
	employees *service.EmployeeService,
	tips *service.TipService,
	logger *slog.Logger,
	reg *prometheus.Registry,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))
	r.Use(Metrics(metrics.NewHTTP(reg)))

	// Handlers
	healthH := NewHealthHandler(store)
	employeeH := NewEmployeeHandler(employees)
	calculationH := NewCalculationHandler(tips)

	r.Get("/health", healthH.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeH.List)
			r.Post("/", employeeH.Create)
			r.Get("/{id}", employeeH.Get)
			r.Delete("/{id}", employeeH.Delete)
		})

		r.Route("/tip-calculations", func(r chi.Router) {
			r.Get("/", calculationH.List)
			r.Post("/", calculationH.Create)
			r.Get("/{id}", calculationH.Get)
		})

		r.Get("/statistics", calculationH.Statistics)
	})

	return r
}
