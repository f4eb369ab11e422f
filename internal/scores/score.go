package scores

import (
	"math"
	"sort"

	"github.com/amigo-bingo/backend/internal/models"
)

// AnswerKey is the admin-published ground truth: the real giver-to-receiver
// assignments and the correct quiz options. Either part may be empty until
// the admin publishes it.
type AnswerKey struct {
	Predictions map[string]string // giver -> receiver
	Quiz        map[string]string // question ID -> correct option
}

// HasAny reports whether at least one correct answer of either kind has been
// published. Scores are not meaningful before that.
func (k AnswerKey) HasAny() bool {
	return len(k.Predictions) > 0 || len(k.Quiz) > 0
}

// Percentage returns 100*correct/total rounded to two decimals, and 0 when
// total is 0.
func Percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}

// QuizOnly grades a user's quiz answers against the key. Only questions that
// carry a published correct answer are gradable.
func QuizOnly(userName string, answers []models.QuizAnswer, key AnswerKey) models.QuizScore {
	correct := 0
	for _, a := range answers {
		if want, ok := key.Quiz[a.QuestionID]; ok && a.Answer == want {
			correct++
		}
	}
	return models.QuizScore{
		UserName:    userName,
		QuizCorrect: correct,
		QuizTotal:   len(key.Quiz),
		Score:       Percentage(correct, len(key.Quiz)),
	}
}

// Combined grades both slices of a user's submission. The denominators count
// only entries that carry a published correct answer, so a partially
// published key never deflates anyone's percentage.
func Combined(userName string, predictions map[string]string, answers []models.QuizAnswer, key AnswerKey) models.CombinedScore {
	quiz := QuizOnly(userName, answers, key)

	predictionsCorrect := 0
	for giver, receiver := range predictions {
		if want, ok := key.Predictions[giver]; ok && receiver == want {
			predictionsCorrect++
		}
	}

	totalCorrect := quiz.QuizCorrect + predictionsCorrect
	totalQuestions := quiz.QuizTotal + len(key.Predictions)
	return models.CombinedScore{
		UserName:           userName,
		QuizCorrect:        quiz.QuizCorrect,
		QuizTotal:          quiz.QuizTotal,
		PredictionsCorrect: predictionsCorrect,
		PredictionsTotal:   len(key.Predictions),
		TotalCorrect:       totalCorrect,
		TotalQuestions:     totalQuestions,
		Score:              Percentage(totalCorrect, totalQuestions),
		HasAdminAnswers:    key.HasAny(),
	}
}

// SortByScore orders entries by descending combined score. The sort is
// stable: ties keep their submission order.
func SortByScore(entries []models.ScoreboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// SortByPredictionsCorrect orders entries strictly by descending prediction
// correctness, independent of the combined score, for the predictions-only
// reveal view.
func SortByPredictionsCorrect(entries []models.ScoreboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PredictionsCorrect > entries[j].PredictionsCorrect
	})
}
