package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/satishccy/splitrix/internal/config"
	"github.com/satishccy/splitrix/internal/expense"
	"github.com/satishccy/splitrix/internal/group"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/queue"
	"github.com/satishccy/splitrix/internal/refresh"
	"github.com/satishccy/splitrix/internal/settlement"
	"github.com/satishccy/splitrix/internal/snapshot"
	"github.com/satishccy/splitrix/internal/split"
	"github.com/satishccy/splitrix/pkg/logging"
	mw "github.com/satishccy/splitrix/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
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

	// Refresh queue is optional; without a broker the API refreshes inline.
	var publisher *queue.Client
	if cfg.AMQPURL != "" {
		publisher, err = queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("Failed to connect to AMQP, continuing without refresh queue", "error", err)
		} else {
			defer publisher.Close()
		}
	}

	client := ledger.NewClient(cfg.NodeURL, cfg.ContractAddress, cfg.ModuleName)
	builder := ledger.NewPayloadBuilder(cfg.ContractAddress, cfg.ModuleName)
	refresher := refresh.New(client, store, slog.Default())
	splitFactory := split.NewNormalizerFactory()

	// A nil *queue.Client must not hide behind a non-nil interface.
	var refreshPublisher expense.RefreshPublisher
	var settlePublisher settlement.RefreshPublisher
	if publisher != nil {
		refreshPublisher = publisher
		settlePublisher = publisher
	}

	groupHandler := group.NewHandler(group.NewService(store, refresher, client, builder))
	expenseHandler := expense.NewHandler(expense.NewService(splitFactory, builder, refreshPublisher, slog.Default()))
	settlementHandler := settlement.NewHandler(settlement.NewService(store, builder, settlePublisher, slog.Default()))

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.ViewerMiddleware)

		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
	})

	slog.Info("Server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
