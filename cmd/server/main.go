package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"centermap/internal/center"
	"centermap/internal/config"
	"centermap/internal/dataset"
	"centermap/internal/logging"
	"centermap/internal/source"
	"centermap/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"snapshot", cfg.Data.SnapshotRef,
		"csv_fallback", cfg.Data.CSVRef,
		"admin_enabled", cfg.Admin.AdminEnabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	jurisdiction := center.Bounds{
		West:  cfg.Bounds.West,
		South: cfg.Bounds.South,
		East:  cfg.Bounds.East,
		North: cfg.Bounds.North,
	}

	service := dataset.New(jurisdiction, cfg.View.Padding)
	resolver := source.New(source.Config{
		SnapshotRef: cfg.Data.SnapshotRef,
		CSVRef:      cfg.Data.CSVRef,
		Timeout:     cfg.Data.FetchTimeout,
		CacheTTL:    cfg.Data.CacheTTL,
	})

	// Initial public load runs off the serving path so a slow or
	// missing snapshot never delays startup; the map is simply empty
	// until it lands.
	loadCtx, cancelLoad := context.WithCancel(context.Background())
	go func() {
		res := resolver.Load(loadCtx)
		service.Replace(res.Centers)
		slog.Info("initial dataset loaded", "origin", res.Origin, "centers", len(res.Centers))
	}()

	server := web.NewServer(service, resolver, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelLoad()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
