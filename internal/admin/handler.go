package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
	"github.com/amigo-bingo/backend/internal/quiz"
	"github.com/amigo-bingo/backend/internal/reveal"
	"github.com/amigo-bingo/backend/pkg/cache"
	"github.com/amigo-bingo/backend/pkg/response"
)

// SetCorrectAnswersRequest is the body for POST /api/admin/set-correct-answers.
type SetCorrectAnswersRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// SetQuizAnswersRequest is the body for POST /api/admin/quiz-answers.
type SetQuizAnswersRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// RevealRequest is the body for POST /api/admin/reveal.
type RevealRequest struct {
	Reveal *bool `json:"reveal" binding:"required"`
}

// Handler handles admin endpoints. All of them sit behind JWT+role
// middleware: publishing an answer key silently rewrites every computed
// score, so it must not be open to arbitrary callers.
type Handler struct {
	repo       *Repository
	quizRepo   *quiz.Repository
	revealRepo *reveal.Repository
	roster     models.Participants
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(repo *Repository, quizRepo *quiz.Repository, revealRepo *reveal.Repository, roster models.Participants, c *cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, quizRepo: quizRepo, revealRepo: revealRepo, roster: roster, cache: c, logger: logger}
}

// SetCorrectAnswers handles POST /api/admin/set-correct-answers. The key is
// validated like a prediction set: every participant covered, receivers in
// the roster, no self-giving.
func (h *Handler) SetCorrectAnswers(c *gin.Context) {
	var req SetCorrectAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := models.ValidateAssignments(h.roster, req.Answers); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.repo.SetCorrectAnswers(c.Request.Context(), req.Answers); err != nil {
		h.logger.Error("set correct answers", zap.Error(err))
		response.Internal(c, "failed to save correct answers")
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyScoreboard)
	response.OK(c, gin.H{"answers": req.Answers})
}

// SetQuizAnswers handles POST /api/admin/quiz-answers. Each entry must name
// an existing question and one of its options.
func (h *Handler) SetQuizAnswers(c *gin.Context) {
	var req SetQuizAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ctx := c.Request.Context()

	for questionID, answer := range req.Answers {
		question, err := h.quizRepo.GetQuestion(ctx, questionID)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownQuestion) {
				response.BadRequest(c, "unknown question: "+questionID)
				return
			}
			h.logger.Error("get question", zap.String("question", questionID), zap.Error(err))
			response.Internal(c, "failed to load question")
			return
		}
		if !question.HasOption(answer) {
			response.BadRequest(c, "answer for "+questionID+" is not one of its options")
			return
		}
	}

	if err := h.quizRepo.SetCorrectAnswers(ctx, req.Answers); err != nil {
		h.logger.Error("set quiz answers", zap.Error(err))
		response.Internal(c, "failed to save quiz answers")
		return
	}
	h.cache.Invalidate(ctx, cache.KeyScoreboard)
	response.OK(c, gin.H{"answers": req.Answers})
}

// QuizQuestions handles GET /api/admin/quiz-questions: the full question
// bank including any published correct answers, for the admin editor.
func (h *Handler) QuizQuestions(c *gin.Context) {
	questions, err := h.quizRepo.ListQuestions(c.Request.Context())
	if err != nil {
		h.logger.Error("list questions", zap.Error(err))
		response.Internal(c, "failed to load questions")
		return
	}
	response.OK(c, questions)
}

// Reveal handles POST /api/admin/reveal: toggles the reveal override so the
// admin can open the results ahead of the calendar date.
func (h *Handler) Reveal(c *gin.Context) {
	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.revealRepo.SetOverride(c.Request.Context(), *req.Reveal); err != nil {
		h.logger.Error("set reveal override", zap.Error(err))
		response.Internal(c, "failed to update reveal state")
		return
	}
	response.OK(c, gin.H{"reveal": *req.Reveal})
}
