package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
)

// Repository handles quiz question and answer persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a quiz repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetQuestion returns a question by ID, including its correct answer when
// the admin has published one.
func (r *Repository) GetQuestion(ctx context.Context, id string) (*models.QuizQuestion, error) {
	const query = `SELECT id, question, options, COALESCE(correct_answer, ''), position
		FROM quiz_questions WHERE id = $1`
	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnknownQuestion
		}
		return nil, err
	}
	return q, nil
}

// ListQuestions returns all questions in quiz order.
func (r *Repository) ListQuestions(ctx context.Context) ([]models.QuizQuestion, error) {
	const query = `SELECT id, question, options, COALESCE(correct_answer, ''), position
		FROM quiz_questions ORDER BY position`
	return r.queryQuestions(ctx, query)
}

// ListUnanswered returns the questions userName has not answered yet, in quiz
// order.
func (r *Repository) ListUnanswered(ctx context.Context, userName string) ([]models.QuizQuestion, error) {
	const query = `SELECT q.id, q.question, q.options, COALESCE(q.correct_answer, ''), q.position
		FROM quiz_questions q
		LEFT JOIN quiz_answers a ON a.question_id = q.id AND a.user_name = $1
		WHERE a.question_id IS NULL
		ORDER BY q.position`
	return r.queryQuestions(ctx, query, userName)
}

// InsertAnswer records a user's answer. Answers are immutable: a second
// answer for the same (user, question) pair returns domain.ErrAlreadyAnswered.
func (r *Repository) InsertAnswer(ctx context.Context, a *models.QuizAnswer) error {
	const query = `INSERT INTO quiz_answers (user_name, question_id, answer)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_name, question_id) DO NOTHING
		RETURNING answered_at`
	err := r.pool.QueryRow(ctx, query, a.UserName, a.QuestionID, a.Answer).Scan(&a.AnsweredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAlreadyAnswered
	}
	return err
}

// ListAnswers returns all of a user's answers.
func (r *Repository) ListAnswers(ctx context.Context, userName string) ([]models.QuizAnswer, error) {
	const query = `SELECT user_name, question_id, answer, answered_at
		FROM quiz_answers WHERE user_name = $1 ORDER BY answered_at`
	rows, err := r.pool.Query(ctx, query, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.QuizAnswer
	for rows.Next() {
		var a models.QuizAnswer
		if err := rows.Scan(&a.UserName, &a.QuestionID, &a.Answer, &a.AnsweredAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// SetCorrectAnswers publishes the correct options for the given questions,
// atomically: either the whole key lands or none of it does.
func (r *Repository) SetCorrectAnswers(ctx context.Context, answers map[string]string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `UPDATE quiz_questions SET correct_answer = $2 WHERE id = $1`
		for questionID, answer := range answers {
			tag, err := tx.Exec(ctx, query, questionID, answer)
			if err != nil {
				return fmt.Errorf("set answer for %s: %w", questionID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%s: %w", questionID, domain.ErrUnknownQuestion)
			}
		}
		return nil
	})
}

func (r *Repository) queryQuestions(ctx context.Context, query string, args ...any) ([]models.QuizQuestion, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.QuizQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *q)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.QuizQuestion, error) {
	var q models.QuizQuestion
	var options []byte
	if err := row.Scan(&q.ID, &q.Question, &options, &q.CorrectAnswer, &q.Position); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &q.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	return &q, nil
}
