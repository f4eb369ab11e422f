package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-bingo/backend/internal/models"
)

// UserSubmission gathers everything one user has submitted, for grading.
type UserSubmission struct {
	UserName      string
	Predictions   map[string]string
	QuizAnswers   []models.QuizAnswer
	FirstActivity time.Time
}

// Repository loads the answer key and submitted material for score
// computation. Scores themselves are never stored; they are derived on read.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a scores repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LoadAnswerKey returns the published correct answers of both kinds.
func (r *Repository) LoadAnswerKey(ctx context.Context) (AnswerKey, error) {
	key := AnswerKey{
		Predictions: make(map[string]string),
		Quiz:        make(map[string]string),
	}

	rows, err := r.pool.Query(ctx, `SELECT giver, receiver FROM correct_answers`)
	if err != nil {
		return key, err
	}
	defer rows.Close()
	for rows.Next() {
		var giver, receiver string
		if err := rows.Scan(&giver, &receiver); err != nil {
			return key, err
		}
		key.Predictions[giver] = receiver
	}
	if err := rows.Err(); err != nil {
		return key, err
	}

	quizRows, err := r.pool.Query(ctx,
		`SELECT id, correct_answer FROM quiz_questions WHERE correct_answer IS NOT NULL`)
	if err != nil {
		return key, err
	}
	defer quizRows.Close()
	for quizRows.Next() {
		var id, answer string
		if err := quizRows.Scan(&id, &answer); err != nil {
			return key, err
		}
		key.Quiz[id] = answer
	}
	return key, quizRows.Err()
}

// LoadSubmissions returns one entry per user who has submitted at least one
// prediction or quiz answer, ordered by their first submission.
func (r *Repository) LoadSubmissions(ctx context.Context) ([]UserSubmission, error) {
	byUser := make(map[string]*UserSubmission)
	touch := func(userName string, at time.Time) *UserSubmission {
		s, ok := byUser[userName]
		if !ok {
			s = &UserSubmission{UserName: userName, FirstActivity: at}
			byUser[userName] = s
		} else if at.Before(s.FirstActivity) {
			s.FirstActivity = at
		}
		return s
	}

	rows, err := r.pool.Query(ctx, `SELECT user_name, predictions, created_at FROM predictions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var userName string
		var raw []byte
		var createdAt time.Time
		if err := rows.Scan(&userName, &raw, &createdAt); err != nil {
			return nil, err
		}
		var predictions map[string]string
		if err := json.Unmarshal(raw, &predictions); err != nil {
			return nil, fmt.Errorf("unmarshal predictions for %s: %w", userName, err)
		}
		touch(userName, createdAt).Predictions = predictions
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	answerRows, err := r.pool.Query(ctx,
		`SELECT user_name, question_id, answer, answered_at FROM quiz_answers ORDER BY answered_at`)
	if err != nil {
		return nil, err
	}
	defer answerRows.Close()
	for answerRows.Next() {
		var a models.QuizAnswer
		if err := answerRows.Scan(&a.UserName, &a.QuestionID, &a.Answer, &a.AnsweredAt); err != nil {
			return nil, err
		}
		s := touch(a.UserName, a.AnsweredAt)
		s.QuizAnswers = append(s.QuizAnswers, a)
	}
	if err := answerRows.Err(); err != nil {
		return nil, err
	}

	list := make([]UserSubmission, 0, len(byUser))
	for _, s := range byUser {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].FirstActivity.Equal(list[j].FirstActivity) {
			return list[i].UserName < list[j].UserName
		}
		return list[i].FirstActivity.Before(list[j].FirstActivity)
	})
	return list, nil
}
