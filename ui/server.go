// Package ui serves the chart API over gin and the admin endpoints over chi.
package ui

import (
	"context"
	"net/http"

	"chartlab/app"
	"chartlab/internal"
	"chartlab/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	service  *app.ChartService
	validate *validator.Validate
	config   config.ServerConfig
	upload   config.UploadConfig
	logger   *internal.Logger
}

// NewServer creates the API server with its routes
func NewServer(service *app.ChartService, cfg *config.Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.New(),
		service:  service,
		validate: validator.New(),
		config:   cfg.Server,
		upload:   cfg.Upload,
		logger:   logger,
	}
	s.router.MaxMultipartMemory = cfg.Upload.MaxBytes
	s.validate.RegisterTagNameFunc(jsonFieldName)

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	// Stored datasets
	api.POST("/datasets", s.handleFileUpload)
	api.GET("/datasets", s.handleListDatasets)
	api.GET("/datasets/:id", s.handleGetDataset)
	api.DELETE("/datasets/:id", s.handleDeleteDataset)
	api.GET("/datasets/:id/analysis", s.handleAnalysis)
	api.GET("/datasets/:id/report", s.handleReport)
	api.POST("/datasets/:id/charts/prepare", s.handlePrepareChart)
	api.POST("/datasets/:id/charts/batch", s.handlePrepareBatch)

	// Stateless endpoints working on inline rows
	api.POST("/analyze", s.handleAnalyzeInline)
	api.POST("/charts/prepare", s.handlePrepareInline)
	api.GET("/charts/kinds", s.handleChartKinds)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.logger.Info("Starting chartlab API on http://localhost%s", addr)
	return serve(ctx, srv, s.config.ShutdownTimeout, s.logger)
}
