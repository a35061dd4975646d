package main

import (
	"context"

	"github.com/blog-publishing-api/internal/config"
	"github.com/blog-publishing-api/internal/database"
	"github.com/blog-publishing-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the blogd CLI
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogd",
		Short: "Blog publishing API server",
		Long: `blogd serves the credential-gated blog publishing API and
manages its PostgreSQL schema.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// bootstrap loads configuration, builds the logger and connects to the database
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, oops.Code("CONFIG_INVALID").With("operation", "load configuration").Wrap(err)
	}

	log := logger.New(cfg.Log)

	db, err := database.New(ctx, &cfg.Database, log)
	if err != nil {
		return nil, log, nil, oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}

	return cfg, log, db, nil
}
