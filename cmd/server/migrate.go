package main

import (
	"strconv"

	"github.com/blog-publishing-api/internal/database"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Apply, roll back or pin the embedded PostgreSQL migrations.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, func(db *database.DB) error {
				return db.RunMigrations()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, func(db *database.DB) error {
				return db.MigrateDown()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return withDatabase(cmd, func(db *database.DB) error {
				return db.MigrateToVersion(version)
			})
		},
	})

	return cmd
}

func parseVersion(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, oops.Code("INVALID_ARGUMENT").With("version", s).Errorf("version must be a non-negative integer")
	}
	return uint(v), nil
}

func withDatabase(cmd *cobra.Command, fn func(db *database.DB) error) error {
	_, _, db, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", cmd.Name()).Wrap(err)
	}
	cmd.Println("Migration completed successfully")
	return nil
}
