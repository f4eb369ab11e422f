package predictions

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
	"github.com/amigo-bingo/backend/internal/reveal"
	"github.com/amigo-bingo/backend/pkg/cache"
	"github.com/amigo-bingo/backend/pkg/response"
)

// SubmitRequest is the body for POST /api/predictions.
type SubmitRequest struct {
	UserName    string            `json:"userName" binding:"required"`
	Predictions map[string]string `json:"predictions" binding:"required"`
}

// Handler handles prediction HTTP endpoints.
type Handler struct {
	repo   *Repository
	roster models.Participants
	gate   *reveal.Gate
	cache  *cache.Cache
	logger *zap.Logger
}

// NewHandler creates a predictions handler.
func NewHandler(repo *Repository, roster models.Participants, gate *reveal.Gate, c *cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, roster: roster, gate: gate, cache: c, logger: logger}
}

// Submit handles POST /api/predictions. Latest submission overwrites prior
// state; the stored record is echoed back so the client can rely on
// read-your-write without a follow-up fetch.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !h.roster.Contains(req.UserName) {
		response.BadRequest(c, "userName must be one of the participants")
		return
	}
	if err := models.ValidateAssignments(h.roster, req.Predictions); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p := &models.Prediction{UserName: req.UserName, Predictions: req.Predictions}
	if err := h.repo.Upsert(c.Request.Context(), p); err != nil {
		h.logger.Error("upsert prediction", zap.String("user", req.UserName), zap.Error(err))
		response.Internal(c, "failed to save predictions")
		return
	}
	h.cache.Invalidate(c.Request.Context(), cache.KeyScoreboard)
	response.Created(c, p)
}

// GetByUserName handles GET /api/predictions/:userName. A 404 means the user
// simply has not submitted yet; it is a valid empty state, not a failure.
func (h *Handler) GetByUserName(c *gin.Context) {
	userName := c.Param("userName")
	if !h.roster.Contains(userName) {
		response.BadRequest(c, "userName must be one of the participants")
		return
	}
	p, err := h.repo.GetByUserName(c.Request.Context(), userName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(c, "no predictions found for this user")
			return
		}
		h.logger.Error("get prediction", zap.String("user", userName), zap.Error(err))
		response.Internal(c, "failed to load predictions")
		return
	}
	response.OK(c, p)
}

// Status handles GET /api/predictions/status.
func (h *Handler) Status(c *gin.Context) {
	status, err := h.repo.Status(c.Request.Context(), h.roster)
	if err != nil {
		h.logger.Error("load status", zap.Error(err))
		response.Internal(c, "failed to load participants status")
		return
	}
	response.OK(c, status)
}

// All handles GET /api/predictions/all. Peer-to-peer predictions stay hidden
// until the reveal condition holds; before that the endpoint answers with an
// explicit not-yet-revealed state.
func (h *Handler) All(c *gin.Context) {
	ok, err := h.gate.CanReveal(c.Request.Context())
	if err != nil {
		h.logger.Error("check reveal", zap.Error(err))
		response.Internal(c, "failed to check reveal state")
		return
	}
	if !ok {
		response.NotRevealed(c, "results cannot be revealed yet")
		return
	}
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list predictions", zap.Error(err))
		response.Internal(c, "failed to load predictions")
		return
	}
	if list == nil {
		list = []models.Prediction{}
	}
	response.Revealed(c, list)
}
