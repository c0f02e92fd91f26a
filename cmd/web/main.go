package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stonelantern/delvegen/internal/config"
	"github.com/stonelantern/delvegen/internal/database"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/server"
)

func main() {
	configFile := flag.String("config", "data/config.yaml", "Path to config YAML file")
	addr := flag.String("addr", "", "Listen address (default: config value)")
	seed := flag.Int64("seed", 0, "Master seed for the initial dungeon (default: config value, then current time)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger.Initialize(cfg.Logging)
	logger.Info("Starting dungeon explorer")

	var archive *database.Database
	if cfg.Database.Enabled {
		archive, err = database.Open(database.Config{
			Driver: cfg.Database.Driver,
			Path:   cfg.Database.Path,
			DSN:    cfg.Database.DSN,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer archive.Close()
		logger.Info("Run archive enabled", "driver", cfg.Database.Driver)
	}

	manager := server.NewManager(cfg, archive)
	if _, err := manager.Regenerate(*seed); err != nil {
		// The explorer can still start; the first regenerate request may
		// succeed with a different seed.
		logger.Error("initial generation failed", "error", err)
	}

	srv := server.New(cfg.Server, manager)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}
}
