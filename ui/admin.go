package ui

import (
	"context"
	"net/http"
	"sort"
	"time"

	"chartlab/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

// AdminServer serves health, metrics and profiling endpoints on a separate port
type AdminServer struct {
	router  *chi.Mux
	checks  map[string]HealthCheck
	logger  *internal.Logger
	timeout time.Duration
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewAdminServer creates the admin application. gatherer backs /metrics.
func NewAdminServer(gatherer prometheus.Gatherer, checks map[string]HealthCheck, logger *internal.Logger) *AdminServer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &AdminServer{
		router:  chi.NewRouter(),
		checks:  checks,
		logger:  logger,
		timeout: 5 * time.Second,
	}

	a.setupMiddleware()
	a.setupRoutes(gatherer)
	return a
}

// setupMiddleware configures HTTP middleware
func (a *AdminServer) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures the admin routes
func (a *AdminServer) setupRoutes(gatherer prometheus.Gatherer) {
	a.router.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(middleware.Timeout(a.timeout))
		r.Get("/healthz", a.handleHealth)
	})

	a.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	a.router.Mount("/debug", middleware.Profiler())
}

// Handler exposes the router, mainly for tests
func (a *AdminServer) Handler() http.Handler {
	return a.router
}

// Run serves addr until ctx is cancelled
func (a *AdminServer) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.logger.Info("Starting admin server on http://localhost%s (healthz, metrics, debug/pprof)", addr)
	return serve(ctx, srv, shutdownTimeout, a.logger)
}

// handleHealth runs every check; any failure answers 503
func (a *AdminServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	names := make([]string, 0, len(a.checks))
	for name := range a.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := a.checks[name](r.Context()); err != nil {
			a.logger.Warn("[Admin] Health check %s failed: %v", name, err)
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ok" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, resp)
}
