package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chartlab/internal"
	"chartlab/internal/config"
	"chartlab/internal/container"

	"golang.org/x/sync/errgroup"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(appConfig.Logging.Level), appConfig.Logging.Format == "json")
	internal.DefaultLogger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	if err := c.Connect(ctx); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer c.Close()

	g, gctx := errgroup.WithContext(ctx)

	api := c.APIServer()
	g.Go(func() error {
		return api.Run(gctx, appConfig.ServerAddr())
	})

	if appConfig.Admin.Enabled {
		admin := c.AdminServer()
		g.Go(func() error {
			return admin.Run(gctx, appConfig.AdminAddr(), appConfig.Server.ShutdownTimeout)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error: %v", err)
		c.Close()
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
