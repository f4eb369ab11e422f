package models

// QuizScore is the quiz-only slice of a user's score.
type QuizScore struct {
	UserName    string  `json:"userName"`
	QuizCorrect int     `json:"quizCorrect"`
	QuizTotal   int     `json:"quizTotal"`
	Score       float64 `json:"score"`
}

// CombinedScore merges prediction and quiz correctness into one percentage.
// Score is 0 when TotalQuestions is 0. HasAdminAnswers gates whether the
// number is meaningful: until the admin publishes at least one correct answer,
// clients must not present the score to end users.
type CombinedScore struct {
	UserName           string  `json:"userName"`
	QuizCorrect        int     `json:"quizCorrect"`
	QuizTotal          int     `json:"quizTotal"`
	PredictionsCorrect int     `json:"predictionsCorrect"`
	PredictionsTotal   int     `json:"predictionsTotal"`
	TotalCorrect       int     `json:"totalCorrect"`
	TotalQuestions     int     `json:"totalQuestions"`
	Score              float64 `json:"score"`
	HasAdminAnswers    bool    `json:"hasAdminAnswers"`
}

// ScoreboardEntry is one row of the scoreboard.
type ScoreboardEntry struct {
	UserName           string  `json:"userName"`
	QuizCorrect        int     `json:"quizCorrect"`
	QuizTotal          int     `json:"quizTotal"`
	PredictionsCorrect int     `json:"predictionsCorrect"`
	PredictionsTotal   int     `json:"predictionsTotal"`
	TotalCorrect       int     `json:"totalCorrect"`
	TotalQuestions     int     `json:"totalQuestions"`
	Score              float64 `json:"score"`
}

// Scoreboard is the full ranked scoreboard response.
type Scoreboard struct {
	HasAdminAnswers bool              `json:"hasAdminAnswers"`
	Data            []ScoreboardEntry `json:"data"`
}
