package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigo-bingo/backend/internal/auth"
)

func protectedRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/admin")
	group.Use(JWT(svc), RequireRole("admin"))
	group.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter(auth.NewJWTService("secret", 1))
	assert.Equal(t, http.StatusUnauthorized, get(router, "").Code)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	router := protectedRouter(auth.NewJWTService("secret", 1))
	assert.Equal(t, http.StatusUnauthorized, get(router, "Basic abc").Code)
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	router := protectedRouter(auth.NewJWTService("secret", 1))
	assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer garbage").Code)
}

func TestJWTMiddleware_ValidAdminToken(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate("admin")
	require.NoError(t, err)

	router := protectedRouter(svc)
	assert.Equal(t, http.StatusOK, get(router, "Bearer "+token).Code)
}

func TestJWTMiddleware_WrongRole(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate("player")
	require.NoError(t, err)

	router := protectedRouter(svc)
	assert.Equal(t, http.StatusForbidden, get(router, "Bearer "+token).Code)
}
