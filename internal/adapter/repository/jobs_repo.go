package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ErrJobNotFound is returned by Get for an unknown id, and for every id
// when the render log is disabled.
var ErrJobNotFound = errors.New("render job not found")

// JobsRepo stores render job metadata in Postgres. A repo built with a nil
// pool is disabled: Save does nothing and Get finds nothing.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

// Enabled reports whether the repo is backed by a database.
func (r *JobsRepo) Enabled() bool {
	return r != nil && r.pool != nil
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.RenderJob) error {
	if !r.Enabled() {
		return nil
	}

	warnings := j.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warnB, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("jobs_repo: marshal warnings: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO render_jobs (id, filename, template, font, status, size_bytes, warnings, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET filename = EXCLUDED.filename, template = EXCLUDED.template, font = EXCLUDED.font, status = EXCLUDED.status, size_bytes = EXCLUDED.size_bytes, warnings = EXCLUDED.warnings, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Filename, j.Template, j.Font, j.Status, j.SizeBytes, warnB, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobs_repo: save %s: %w", j.ID, err)
	}
	return nil
}

func (r *JobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error) {
	if !r.Enabled() {
		return nil, ErrJobNotFound
	}

	var (
		j     domain.RenderJob
		warnB []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, filename, template, font, status, size_bytes, warnings, created_at, updated_at
		FROM render_jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Filename, &j.Template, &j.Font, &j.Status, &j.SizeBytes, &warnB, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("jobs_repo: get %s: %w", id, err)
	}
	if len(warnB) > 0 {
		if err := json.Unmarshal(warnB, &j.Warnings); err != nil {
			return nil, fmt.Errorf("jobs_repo: decode warnings: %w", err)
		}
	}
	return &j, nil
}
