package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/stubspot/stubspot/internal/api"
	"github.com/stubspot/stubspot/internal/api/associations"
	"github.com/stubspot/stubspot/internal/api/oauth"
	"github.com/stubspot/stubspot/internal/api/objects"
	"github.com/stubspot/stubspot/internal/api/system"
	"github.com/stubspot/stubspot/internal/config"
	"github.com/stubspot/stubspot/internal/database"
	"github.com/stubspot/stubspot/internal/seed"
	"github.com/stubspot/stubspot/internal/store"
	"github.com/stubspot/stubspot/internal/webhook"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := seed.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	notifier := webhook.NewSender(cfg.WebhookURL, cfg.AppID)
	s := store.New(db, notifier, cfg.PortalID)

	mux := http.NewServeMux()

	// CRM API routes
	objects.RegisterRoutes(mux, s)
	associations.RegisterRoutes(mux, s)

	// OAuth stubs and harness endpoints
	oauth.RegisterRoutes(mux, cfg.PortalID, cfg.AppID)
	system.RegisterRoutes(mux, db)

	// Catch-all: return 404 in HubSpot error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting stubspot server", "addr", cfg.Addr, "webhook", cfg.WebhookURL != "")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
