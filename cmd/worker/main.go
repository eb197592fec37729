package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/satishccy/splitrix/internal/config"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/queue"
	"github.com/satishccy/splitrix/internal/refresh"
	"github.com/satishccy/splitrix/internal/snapshot"
	"github.com/satishccy/splitrix/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		slog.Error("Worker requires AMQP_URL")
		os.Exit(1)
	}

	store, cleanup, err := snapshot.Open(snapshot.Config{
		Backend:     snapshot.Backend(cfg.SnapshotBackend),
		SQLitePath:  cfg.SQLiteDBPath,
		PostgresURL: cfg.PostgresURL,
	}, slog.Default())
	if err != nil {
		slog.Error("Failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	broker, err := queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer broker.Close()

	client := ledger.NewClient(cfg.NodeURL, cfg.ContractAddress, cfg.ModuleName)
	refresher := refresh.New(client, store, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// On-demand refreshes requested by the API.
	g.Go(func() error {
		return broker.ConsumeRefresh(ctx, func(msg *queue.RefreshMessage) error {
			_, err := refresher.Refresh(ctx, msg.Viewer)
			return err
		})
	})

	// Periodic sweep keeps idle viewers from going stale.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := refresher.RefreshAll(ctx); err != nil {
					slog.Error("Sweep failed", "error", err)
				}
			}
		}
	})

	slog.Info("Worker started", "queue", cfg.AMQPQueue, "interval", cfg.RefreshInterval)
	if err := g.Wait(); err != nil && err != context.Canceled {
		slog.Error("Worker stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker shut down")
}
