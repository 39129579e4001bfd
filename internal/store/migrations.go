package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

// Migration is one idempotent schema step
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS jobs (
			id          BIGSERIAL PRIMARY KEY,
			user_id     TEXT NOT NULL,
			company     TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			link        TEXT NOT NULL DEFAULT '',
			posted_at   TIMESTAMPTZ,
			tech_stack  TEXT[] NOT NULL DEFAULT '{}',
			salary_min  INTEGER,
			salary_max  INTEGER,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "index_jobs_user",
		SQL:  `CREATE INDEX IF NOT EXISTS jobs_user_id_idx ON jobs (user_id)`,
	},
	{
		Name: "create_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
			user_id    TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "create_resumes",
		SQL: `CREATE TABLE IF NOT EXISTS resumes (
			id         BIGSERIAL PRIMARY KEY,
			job_id     BIGINT NOT NULL UNIQUE REFERENCES jobs (id) ON DELETE CASCADE,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
}

// Migrations lists the schema steps in the order Migrate applies them
func Migrations() []Migration {
	return migrations
}

// Migrate applies every migration in order. Each step is safe to rerun.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	logger := logging.GetGlobalLogger().WithField("component", "migrations")
	logger.Info("Starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error("Migration failed", map[string]interface{}{
				"name":  m.Name,
				"error": err.Error(),
			})
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		logger.Debug("Migration completed", map[string]interface{}{"name": m.Name})
	}

	logger.Info("All migrations completed successfully", map[string]interface{}{
		"count": len(migrations),
	})
	return nil
}
