package scores

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
	"github.com/amigo-bingo/backend/internal/predictions"
	"github.com/amigo-bingo/backend/internal/quiz"
	"github.com/amigo-bingo/backend/pkg/cache"
	"github.com/amigo-bingo/backend/pkg/response"
)

// Handler handles score and scoreboard HTTP endpoints.
type Handler struct {
	repo     *Repository
	quizRepo *quiz.Repository
	predRepo *predictions.Repository
	roster   models.Participants
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewHandler creates a scores handler.
func NewHandler(repo *Repository, quizRepo *quiz.Repository, predRepo *predictions.Repository, roster models.Participants, c *cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, quizRepo: quizRepo, predRepo: predRepo, roster: roster, cache: c, logger: logger}
}

// QuizScore handles GET /api/quiz/score/:userName.
func (h *Handler) QuizScore(c *gin.Context) {
	userName := c.Param("userName")
	if !h.roster.Contains(userName) {
		response.BadRequest(c, "userName must be one of the participants")
		return
	}
	answers, err := h.quizRepo.ListAnswers(c.Request.Context(), userName)
	if err != nil {
		h.logger.Error("list answers", zap.String("user", userName), zap.Error(err))
		response.Internal(c, "failed to load answers")
		return
	}
	key, err := h.repo.LoadAnswerKey(c.Request.Context())
	if err != nil {
		h.logger.Error("load answer key", zap.Error(err))
		response.Internal(c, "failed to load answer key")
		return
	}
	response.OK(c, QuizOnly(userName, answers, key))
}

// CombinedScore handles GET /api/combined-score/:userName. The response
// carries hasAdminAnswers; until it is true the score must not be presented
// as meaningful.
func (h *Handler) CombinedScore(c *gin.Context) {
	userName := c.Param("userName")
	if !h.roster.Contains(userName) {
		response.BadRequest(c, "userName must be one of the participants")
		return
	}
	ctx := c.Request.Context()

	var predicted map[string]string
	if p, err := h.predRepo.GetByUserName(ctx, userName); err == nil {
		predicted = p.Predictions
	} else if !errors.Is(err, domain.ErrNotFound) {
		h.logger.Error("get prediction", zap.String("user", userName), zap.Error(err))
		response.Internal(c, "failed to load predictions")
		return
	}

	answers, err := h.quizRepo.ListAnswers(ctx, userName)
	if err != nil {
		h.logger.Error("list answers", zap.String("user", userName), zap.Error(err))
		response.Internal(c, "failed to load answers")
		return
	}
	key, err := h.repo.LoadAnswerKey(ctx)
	if err != nil {
		h.logger.Error("load answer key", zap.Error(err))
		response.Internal(c, "failed to load answer key")
		return
	}
	response.OK(c, Combined(userName, predicted, answers, key))
}

// Scoreboard handles GET /api/scoreboard: every user with at least one
// submission, ranked by descending combined score.
func (h *Handler) Scoreboard(c *gin.Context) {
	board, err := h.loadScoreboard(c.Request.Context())
	if err != nil {
		h.logger.Error("build scoreboard", zap.Error(err))
		response.Internal(c, "failed to build scoreboard")
		return
	}
	response.OK(c, board)
}

// ScoreboardPredictions handles GET /api/scoreboard/predictions: the same
// rows ordered strictly by prediction correctness, so the reveal can
// highlight prediction-guessing skill separately from quiz trivia.
func (h *Handler) ScoreboardPredictions(c *gin.Context) {
	board, err := h.loadScoreboard(c.Request.Context())
	if err != nil {
		h.logger.Error("build scoreboard", zap.Error(err))
		response.Internal(c, "failed to build scoreboard")
		return
	}
	SortByPredictionsCorrect(board.Data)
	response.OK(c, board)
}

// loadScoreboard returns the primary-ordered scoreboard, serving from the
// Redis cache when fresh and recomputing from Postgres otherwise.
func (h *Handler) loadScoreboard(ctx context.Context) (*models.Scoreboard, error) {
	var board models.Scoreboard
	if h.cache.Get(ctx, cache.KeyScoreboard, &board) {
		return &board, nil
	}

	submissions, err := h.repo.LoadSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	key, err := h.repo.LoadAnswerKey(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ScoreboardEntry, 0, len(submissions))
	for _, s := range submissions {
		combined := Combined(s.UserName, s.Predictions, s.QuizAnswers, key)
		entries = append(entries, models.ScoreboardEntry{
			UserName:           combined.UserName,
			QuizCorrect:        combined.QuizCorrect,
			QuizTotal:          combined.QuizTotal,
			PredictionsCorrect: combined.PredictionsCorrect,
			PredictionsTotal:   combined.PredictionsTotal,
			TotalCorrect:       combined.TotalCorrect,
			TotalQuestions:     combined.TotalQuestions,
			Score:              combined.Score,
		})
	}
	SortByScore(entries)

	board = models.Scoreboard{HasAdminAnswers: key.HasAny(), Data: entries}
	if err := h.cache.Set(ctx, cache.KeyScoreboard, &board); err != nil {
		h.logger.Warn("cache scoreboard", zap.Error(err))
	}
	return &board, nil
}
