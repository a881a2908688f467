package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"rns-image/internal/config"
	"rns-image/internal/domain"
	"rns-image/internal/http/server"
	"rns-image/internal/infra/assets"
	"rns-image/internal/infra/logging"
	"rns-image/internal/metrics"
	"rns-image/internal/render"
)

func main() {
	cfg := config.Load()
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	if err := run(cfg); err != nil {
		logging.Error("Startup failed", "error", err)
		os.Exit(1)
	}
}

// run loads the assets, then serves until SIGINT/SIGTERM. Nothing listens
// unless both assets load.
func run(cfg config.Config) error {
	a, err := assets.Load(cfg.Assets)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	metrics.AssetsLoaded.Set(1)

	level, err := render.ParseCompression(cfg.Render.PNGCompression)
	if err != nil {
		return err
	}
	composer, err := render.New(a,
		render.WithLabelPolicy(domain.LabelPolicy{MaxNameRunes: cfg.Render.MaxNameRunes}),
		render.WithCompression(level),
	)
	if err != nil {
		return err
	}

	app := newApp(cfg, composer)

	idleConnsClosed := make(chan struct{})
	if err := startServer(app, cfg, idleConnsClosed); err != nil {
		return err
	}
	<-idleConnsClosed
	return nil
}

// newApp builds the Fiber app. /ops/ready reports ready only while the
// listener is bound.
func newApp(cfg config.Config, r *render.Composer) *fiber.App {
	var listening atomic.Bool
	app := server.New(server.Deps{
		Config:   cfg,
		Renderer: r,
		Ready:    listening.Load,
	})
	app.Hooks().OnListen(func(fiber.ListenData) error {
		listening.Store(true)
		return nil
	})
	app.Hooks().OnShutdown(func() error {
		listening.Store(false)
		return nil
	})
	return app
}

// startServer starts the Fiber app and listens for shutdown signals. It
// returns the listen error if the address cannot be bound.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) error {
	// Listen for OS termination signals
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)

	listenErr := make(chan error, 1)
	go func() {
		logging.Info("Listening", "addr", cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		close(idleConnsClosed)
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	case <-sigint:
	}

	logging.Warn("Shutdown signal received, closing server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
	return nil
}
