package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the admin-published prediction answer key.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SetCorrectAnswers replaces the prediction answer key with the given
// giver-to-receiver mapping, atomically.
func (r *Repository) SetCorrectAnswers(ctx context.Context, answers map[string]string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM correct_answers`); err != nil {
			return fmt.Errorf("clear answer key: %w", err)
		}
		for giver, receiver := range answers {
			if _, err := tx.Exec(ctx,
				`INSERT INTO correct_answers (giver, receiver) VALUES ($1, $2)`,
				giver, receiver); err != nil {
				return fmt.Errorf("insert answer for %s: %w", giver, err)
			}
		}
		return nil
	})
}
