package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations returns the render-log migrations in the order they run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_render_jobs", Up: createRenderJobs},
		{Name: "add_render_jobs_created_at_index", Up: addCreatedAtIndex},
	}
}

func createRenderJobs(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS render_jobs (
			id          UUID PRIMARY KEY,
			filename    TEXT NOT NULL,
			template    TEXT NOT NULL DEFAULT '',
			font        TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL,
			size_bytes  BIGINT NOT NULL DEFAULT 0,
			warnings    JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return err
	}
	slog.Info("render_jobs table ready")
	return nil
}

// addCreatedAtIndex is best-effort: a missing index only slows listing.
func addCreatedAtIndex(ctx context.Context, pool *pgxpool.Pool) error {
	query := `CREATE INDEX IF NOT EXISTS render_jobs_created_at_idx ON render_jobs (created_at DESC);`

	if _, err := pool.Exec(ctx, query); err != nil {
		slog.Warn("Error creating render_jobs created_at index", "error", err)
		return nil
	}
	return nil
}
