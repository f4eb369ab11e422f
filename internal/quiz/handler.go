package quiz

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
	"github.com/amigo-bingo/backend/pkg/cache"
	"github.com/amigo-bingo/backend/pkg/response"
)

// AnswerRequest is the body for POST /api/quiz/answer.
type AnswerRequest struct {
	UserName   string `json:"userName" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// AnswerResult is the response for POST /api/quiz/answer. IsCorrect is false
// until the admin has published a key for the question.
type AnswerResult struct {
	QuestionID string `json:"questionId"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Handler handles quiz HTTP endpoints.
type Handler struct {
	repo   *Repository
	roster models.Participants
	cache  *cache.Cache
	logger *zap.Logger
}

// NewHandler creates a quiz handler.
func NewHandler(repo *Repository, roster models.Participants, c *cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, roster: roster, cache: c, logger: logger}
}

// Questions handles GET /api/quiz/questions/:userName. Only questions the
// user has not answered yet are returned, and never with the correct answer.
func (h *Handler) Questions(c *gin.Context) {
	userName := c.Param("userName")
	if !h.roster.Contains(userName) {
		response.BadRequest(c, "userName must be one of the participants")
		return
	}
	questions, err := h.repo.ListUnanswered(c.Request.Context(), userName)
	if err != nil {
		h.logger.Error("list unanswered", zap.String("user", userName), zap.Error(err))
		response.Internal(c, "failed to load questions")
		return
	}
	public := make([]models.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}
	response.OK(c, public)
}

// Answer handles POST /api/quiz/answer. A repeat answer for the same question
// gets a 409 whose message the client recognizes as a cue to advance; the
// stored answer is never changed.
func (h *Handler) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !h.roster.Contains(req.UserName) {
		response.BadRequest(c, "userName must be one of the participants")
		return
	}

	question, err := h.repo.GetQuestion(c.Request.Context(), req.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownQuestion) {
			response.NotFound(c, "question not found")
			return
		}
		h.logger.Error("get question", zap.String("question", req.QuestionID), zap.Error(err))
		response.Internal(c, "failed to load question")
		return
	}
	if !question.HasOption(req.Answer) {
		response.BadRequest(c, domain.ErrInvalidOption.Error())
		return
	}

	answer := &models.QuizAnswer{
		UserName:   req.UserName,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
	}
	if err := h.repo.InsertAnswer(c.Request.Context(), answer); err != nil {
		if errors.Is(err, domain.ErrAlreadyAnswered) {
			response.Conflict(c, fmt.Sprintf("question %s has already been answered", req.QuestionID))
			return
		}
		h.logger.Error("insert answer", zap.String("user", req.UserName), zap.Error(err))
		response.Internal(c, "failed to save answer")
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyScoreboard)

	isCorrect := question.CorrectAnswer != "" && question.CorrectAnswer == req.Answer
	response.OK(c, AnswerResult{QuestionID: req.QuestionID, IsCorrect: isCorrect})
}
