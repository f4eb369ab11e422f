package models

import "time"

// QuizQuestion is a quiz prompt with its allowed options. CorrectAnswer is
// empty until the admin publishes the answer key and is never sent to players.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Position      int      `json:"-"`
}

// HasOption reports whether answer is one of the question's options.
func (q QuizQuestion) HasOption(answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}

// Public returns the question without the correct answer, for player-facing
// responses.
func (q QuizQuestion) Public() QuizQuestion {
	q.CorrectAnswer = ""
	return q
}

// QuizAnswer is one user's chosen option for one question. Immutable once
// written.
type QuizAnswer struct {
	UserName   string    `json:"userName"`
	QuestionID string    `json:"questionId"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answeredAt"`
}
