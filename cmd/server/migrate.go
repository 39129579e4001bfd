package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
)

//nolint:gochecknoglobals // Cobra boilerplate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database migrations and exit",
	RunE:  runMigrate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.CloseLogging()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pg, err := store.NewPostgresStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := store.Migrate(ctx, pg.Pool()); err != nil {
		return err
	}

	logging.GetGlobalLogger().Info("Migrations applied", map[string]interface{}{
		"count": len(store.Migrations()),
	})
	return nil
}
