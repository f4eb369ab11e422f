package reveal

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the admin reveal override.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a reveal repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetOverride returns whether the admin has force-enabled the reveal.
func (r *Repository) GetOverride(ctx context.Context) (bool, error) {
	const query = `SELECT reveal_override FROM game_state WHERE id = 1`
	var override bool
	err := r.pool.QueryRow(ctx, query).Scan(&override)
	return override, err
}

// SetOverride toggles the admin reveal override.
func (r *Repository) SetOverride(ctx context.Context, override bool) error {
	const query = `UPDATE game_state SET reveal_override = $1, updated_at = NOW() WHERE id = 1`
	_, err := r.pool.Exec(ctx, query, override)
	return err
}
