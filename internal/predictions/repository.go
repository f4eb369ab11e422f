package predictions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
)

// Repository handles prediction persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a predictions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert stores or replaces p's mapping. The latest submission wins;
// created_at is preserved across updates.
func (r *Repository) Upsert(ctx context.Context, p *models.Prediction) error {
	raw, err := json.Marshal(p.Predictions)
	if err != nil {
		return fmt.Errorf("marshal predictions: %w", err)
	}
	const query = `INSERT INTO predictions (user_name, predictions)
		VALUES ($1, $2)
		ON CONFLICT (user_name) DO UPDATE SET predictions = EXCLUDED.predictions, updated_at = NOW()
		RETURNING id, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query, p.UserName, raw).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.Timestamp = p.UpdatedAt
	return nil
}

// GetByUserName returns a user's prediction, or domain.ErrNotFound when none
// has been submitted yet.
func (r *Repository) GetByUserName(ctx context.Context, userName string) (*models.Prediction, error) {
	const query = `SELECT id, user_name, predictions, created_at, updated_at
		FROM predictions WHERE user_name = $1`
	p, err := scanPrediction(r.pool.QueryRow(ctx, query, userName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListAll returns every submitted prediction, oldest submission first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Prediction, error) {
	const query = `SELECT id, user_name, predictions, created_at, updated_at
		FROM predictions ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// Status returns per-participant submission state for the given roster.
func (r *Repository) Status(ctx context.Context, roster models.Participants) (*models.SubmissionStatus, error) {
	const query = `SELECT user_name, created_at FROM predictions`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submitted := make(map[string]time.Time)
	for rows.Next() {
		var name string
		var at time.Time
		if err := rows.Scan(&name, &at); err != nil {
			return nil, err
		}
		submitted[name] = at
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	status := &models.SubmissionStatus{
		TotalParticipants: len(roster),
		Participants:      make([]models.ParticipantStatus, 0, len(roster)),
	}
	for _, name := range roster {
		ps := models.ParticipantStatus{UserName: name}
		if at, ok := submitted[name]; ok {
			ps.HasSubmitted = true
			ps.SubmittedAt = &at
			status.SubmittedCount++
		}
		status.Participants = append(status.Participants, ps)
	}
	return status, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*models.Prediction, error) {
	var p models.Prediction
	var raw []byte
	if err := row.Scan(&p.ID, &p.UserName, &raw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.Predictions); err != nil {
		return nil, fmt.Errorf("unmarshal predictions: %w", err)
	}
	p.Timestamp = p.UpdatedAt
	return &p, nil
}
