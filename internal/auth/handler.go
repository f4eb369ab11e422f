package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/pkg/response"
	"github.com/amigo-bingo/backend/pkg/utils"
)

// RoleAdmin is the role embedded in admin session tokens.
const RoleAdmin = "admin"

// LoginRequest is the body for POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handler handles admin authentication. There are no end-user accounts:
// regular players are identified by their roster name alone, and only the
// answer-publishing admin holds a credential.
type Handler struct {
	passwordHash string
	jwt          *JWTService
	logger       *zap.Logger
}

// NewHandler creates an auth handler. passwordHash is a bcrypt hash of the
// admin password.
func NewHandler(passwordHash string, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{passwordHash: passwordHash, jwt: jwt, logger: logger}
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if h.passwordHash == "" {
		h.logger.Warn("admin login attempted but no admin password configured")
		response.Unauthorized(c, "admin access is not configured")
		return
	}

	if !utils.CheckPassword(req.Password, h.passwordHash) {
		response.Unauthorized(c, "invalid password")
		return
	}

	token, err := h.jwt.Generate(RoleAdmin)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, TokenResponse{Token: token})
}
