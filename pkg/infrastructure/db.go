package infrastructure

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewRenderLogPool connects to the render-log database. An empty dsn
// disables the render log and returns a nil pool.
func NewRenderLogPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, nil
	}
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
