package scores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigo-bingo/backend/internal/models"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 100.0, Percentage(3, 3))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 66.67, Percentage(2, 3))
}

func TestPercentageBounds(t *testing.T) {
	for correct := 0; correct <= 10; correct++ {
		for total := 0; total <= 10; total++ {
			if correct > total {
				continue
			}
			p := Percentage(correct, total)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
}

func TestAnswerKeyHasAny(t *testing.T) {
	assert.False(t, AnswerKey{}.HasAny())
	assert.True(t, AnswerKey{Predictions: map[string]string{"A": "B"}}.HasAny())
	assert.True(t, AnswerKey{Quiz: map[string]string{"q1": "x"}}.HasAny())
}

func TestQuizOnly(t *testing.T) {
	key := AnswerKey{Quiz: map[string]string{"q1": "China", "q2": "1989"}}
	answers := []models.QuizAnswer{
		{UserName: "Paula", QuestionID: "q1", Answer: "China"},
		{UserName: "Paula", QuestionID: "q2", Answer: "1991"},
	}

	s := QuizOnly("Paula", answers, key)
	assert.Equal(t, 1, s.QuizCorrect)
	assert.Equal(t, 2, s.QuizTotal)
	assert.Equal(t, 50.0, s.Score)
}

func TestQuizOnly_UnkeyedQuestionsNotGraded(t *testing.T) {
	// q3 has no published key: answering it must affect neither numerator
	// nor denominator.
	key := AnswerKey{Quiz: map[string]string{"q1": "China"}}
	answers := []models.QuizAnswer{
		{QuestionID: "q1", Answer: "China"},
		{QuestionID: "q3", Answer: "Pacífico"},
	}

	s := QuizOnly("Paula", answers, key)
	assert.Equal(t, 1, s.QuizCorrect)
	assert.Equal(t, 1, s.QuizTotal)
	assert.Equal(t, 100.0, s.Score)
}

func TestCombined_WorkedExample(t *testing.T) {
	// Three participants; the user predicted {A:B, B:C, C:A} and the admin
	// published {A:B, B:A, C:A}: two prediction entries match.
	predicted := map[string]string{"A": "B", "B": "C", "C": "A"}
	key := AnswerKey{Predictions: map[string]string{"A": "B", "B": "A", "C": "A"}}

	s := Combined("A", predicted, nil, key)
	assert.Equal(t, 2, s.PredictionsCorrect)
	assert.Equal(t, 3, s.PredictionsTotal)
	assert.Equal(t, 0, s.QuizTotal)
	assert.Equal(t, 2, s.TotalCorrect)
	assert.Equal(t, 3, s.TotalQuestions)
	assert.Equal(t, 66.67, s.Score)
	assert.True(t, s.HasAdminAnswers)
}

func TestCombined_NoAdminAnswers(t *testing.T) {
	predicted := map[string]string{"A": "B", "B": "C", "C": "A"}
	answers := []models.QuizAnswer{{QuestionID: "q1", Answer: "China"}}

	s := Combined("A", predicted, answers, AnswerKey{})
	assert.False(t, s.HasAdminAnswers)
	assert.Equal(t, 0, s.TotalQuestions)
	assert.Equal(t, 0.0, s.Score)
}

func TestCombined_MergesBothSlices(t *testing.T) {
	predicted := map[string]string{"A": "B", "B": "A"}
	answers := []models.QuizAnswer{
		{QuestionID: "q1", Answer: "China"},
		{QuestionID: "q2", Answer: "1989"},
	}
	key := AnswerKey{
		Predictions: map[string]string{"A": "B", "B": "C"},
		Quiz:        map[string]string{"q1": "China", "q2": "1989"},
	}

	s := Combined("A", predicted, answers, key)
	assert.Equal(t, 1, s.PredictionsCorrect)
	assert.Equal(t, 2, s.QuizCorrect)
	assert.Equal(t, 3, s.TotalCorrect)
	assert.Equal(t, 4, s.TotalQuestions)
	assert.Equal(t, 75.0, s.Score)
}

func TestSortByScore(t *testing.T) {
	entries := []models.ScoreboardEntry{
		{UserName: "first", Score: 50},
		{UserName: "second", Score: 50},
		{UserName: "top", Score: 90},
		{UserName: "last", Score: 10},
	}
	SortByScore(entries)

	require.Len(t, entries, 4)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
	}
	// stable: tied entries keep their submission order
	assert.Equal(t, "first", entries[1].UserName)
	assert.Equal(t, "second", entries[2].UserName)
}

func TestSortByPredictionsCorrect(t *testing.T) {
	entries := []models.ScoreboardEntry{
		{UserName: "quizzer", PredictionsCorrect: 0, Score: 90},
		{UserName: "guesser", PredictionsCorrect: 5, Score: 40},
		{UserName: "middle", PredictionsCorrect: 3, Score: 60},
	}
	SortByPredictionsCorrect(entries)

	assert.Equal(t, "guesser", entries[0].UserName)
	assert.Equal(t, "middle", entries[1].UserName)
	assert.Equal(t, "quizzer", entries[2].UserName)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].PredictionsCorrect, entries[i].PredictionsCorrect)
	}
}
