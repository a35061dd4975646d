package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-publishing-api/internal/api"
	"github.com/blog-publishing-api/internal/metrics"
	"github.com/blog-publishing-api/internal/repository"
	"github.com/blog-publishing-api/internal/service"
	"github.com/blog-publishing-api/internal/session"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve subcommand
func NewServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  `Run the HTTP server. Pending migrations are applied first unless --skip-migrate is set.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), skipMigrate)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on start-up")

	return cmd
}

func runServe(ctx context.Context, skipMigrate bool) error {
	cfg, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Msg("Starting blog publishing API server...")

	// Run migrations
	if !skipMigrate {
		if err := db.RunMigrations(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
		}
	}

	// Initialize session store
	store, closeStore, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		return err
	}
	defer closeStore()
	sessions := session.NewManager(cfg.Session, store, log)
	log.Info().Str("store", cfg.Session.Store).Dur("idle_timeout", cfg.Session.IdleTimeout).Msg("Session store ready")

	// Initialize repositories and services
	repos := repository.New(db)
	services, err := service.NewServices(repos, sessions, cfg, log)
	if err != nil {
		return err
	}

	// Initialize router
	handler := api.NewRouter(api.RouterDeps{
		Services: services,
		Sessions: sessions,
		Health:   db,
		Metrics:  metrics.New(),
	}, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-serverErr:
		return oops.Code("SERVER_FAILED").With("operation", "listen").Wrap(err)
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").With("operation", "shutdown").Wrap(err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
