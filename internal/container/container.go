package container

import (
	"context"
	"fmt"

	"chartlab/adapters/memory"
	"chartlab/adapters/postgres"
	"chartlab/app"
	"chartlab/internal"
	"chartlab/internal/config"
	ingest "chartlab/internal/dataset"
	"chartlab/internal/metrics"
	"chartlab/ports"
	"chartlab/ui"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB       *sqlx.DB // nil when running on the in-memory repository
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder

	// Repositories (data access layer)
	DatasetRepo ports.DatasetRepository
	FileStorage ingest.FileStorage

	// Services
	Processor    *ingest.Processor
	ChartService *app.ChartService
}

// New creates a container backed by the in-memory dataset repository.
// Call Connect to switch to PostgreSQL when a database URL is configured.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Registry:    registry,
		Metrics:     metrics.NewRecorder(registry),
		DatasetRepo: memory.NewDatasetRepository(),
	}
	if cfg.Upload.ArchiveDir != "" {
		c.FileStorage = ingest.NewLocalFileStorage(cfg.Upload.ArchiveDir)
	}

	c.initServices()
	return c, nil
}

// Connect opens the configured database. Without a URL the container keeps
// the in-memory repository.
func (c *Container) Connect(ctx context.Context) error {
	if !c.Config.UsesDatabase() {
		c.Logger.Warn("No database URL configured, datasets are kept in memory only")
		return nil
	}

	db, err := postgres.Open(ctx, c.Config.Database)
	if err != nil {
		return err
	}
	return c.InitWithDatabase(ctx, db)
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.DatasetRepo = postgres.NewDatasetRepository(db)
	c.initServices()

	c.Logger.Info("Container initialized successfully with database connection")
	return nil
}

// initServices wires the services onto the current repository
func (c *Container) initServices() {
	c.Processor = ingest.NewProcessor(c.DatasetRepo, c.FileStorage, c.Config.Upload, c.Metrics, c.Logger)
	c.ChartService = app.NewChartService(c.DatasetRepo, c.Processor, c.Config.Charts, c.Metrics, c.Logger)
}

// APIServer builds the gin API on the chart service
func (c *Container) APIServer() *ui.Server {
	return ui.NewServer(c.ChartService, c.Config, c.Logger)
}

// AdminServer builds the health, metrics and pprof server
func (c *Container) AdminServer() *ui.AdminServer {
	return ui.NewAdminServer(c.Registry, c.HealthChecks(), c.Logger)
}

// HealthChecks returns the checks reported by /healthz
func (c *Container) HealthChecks() map[string]ui.HealthCheck {
	checks := map[string]ui.HealthCheck{}
	if c.DB != nil {
		checks["database"] = c.DB.PingContext
	}
	if storage, ok := c.FileStorage.(*ingest.LocalFileStorage); ok {
		// the directory is created by the first upload, so only stat failures count
		checks["archive"] = func(ctx context.Context) error {
			_, err := storage.Exists(ctx, storage.BasePath())
			return err
		}
	}
	return checks
}

// Close releases the database connection
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
