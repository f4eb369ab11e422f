// Package main runs the gift-exchange party game HTTP API with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amigo-bingo/backend/config"
	"github.com/amigo-bingo/backend/internal/admin"
	"github.com/amigo-bingo/backend/internal/auth"
	"github.com/amigo-bingo/backend/internal/middleware"
	"github.com/amigo-bingo/backend/internal/models"
	"github.com/amigo-bingo/backend/internal/predictions"
	"github.com/amigo-bingo/backend/internal/quiz"
	"github.com/amigo-bingo/backend/internal/reveal"
	"github.com/amigo-bingo/backend/internal/scores"
	"github.com/amigo-bingo/backend/pkg/cache"
	"github.com/amigo-bingo/backend/pkg/database"
	"github.com/amigo-bingo/backend/pkg/redis"
	"github.com/amigo-bingo/backend/pkg/response"
	"github.com/amigo-bingo/backend/pkg/utils"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	adminHash := cfg.Admin.PasswordHash
	if adminHash == "" && cfg.Admin.Password != "" {
		adminHash, err = utils.HashPassword(cfg.Admin.Password)
		if err != nil {
			logger.Fatal("hash admin password", zap.Error(err))
		}
	}
	if adminHash == "" {
		logger.Warn("no admin password configured; admin endpoints will reject all logins")
	}

	roster := models.Participants(cfg.Game.Participants)
	scoreboardCache := cache.New(rdb.Client, logger, cfg.Game.ScoreboardTTL)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Reveal gating
	revealRepo := reveal.NewRepository(pool)
	gate := reveal.NewGate(cfg.Game.RevealDate, revealRepo)

	// Auth (admin only)
	authHandler := auth.NewHandler(adminHash, jwtService, logger)

	// Predictions
	predictionRepo := predictions.NewRepository(pool)
	predictionHandler := predictions.NewHandler(predictionRepo, roster, gate, scoreboardCache, logger)

	// Quiz
	quizRepo := quiz.NewRepository(pool)
	quizHandler := quiz.NewHandler(quizRepo, roster, scoreboardCache, logger)

	// Scores
	scoreRepo := scores.NewRepository(pool)
	scoreHandler := scores.NewHandler(scoreRepo, quizRepo, predictionRepo, roster, scoreboardCache, logger)

	// Admin
	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, quizRepo, revealRepo, roster, scoreboardCache, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	api := router.Group("/api")

	// Liveness and version probes
	api.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		}
		if err := pool.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		}
		response.OK(c, status)
	})
	api.GET("/version", func(c *gin.Context) {
		response.OK(c, gin.H{"version": version})
	})

	// Predictions
	api.POST("/predictions", predictionHandler.Submit)
	api.GET("/predictions/status", predictionHandler.Status)
	api.GET("/predictions/all", predictionHandler.All)
	api.GET("/predictions/:userName", predictionHandler.GetByUserName)

	// Quiz
	api.GET("/quiz/questions/:userName", quizHandler.Questions)
	api.POST("/quiz/answer", quizHandler.Answer)
	api.GET("/quiz/score/:userName", scoreHandler.QuizScore)

	// Scores
	api.GET("/combined-score/:userName", scoreHandler.CombinedScore)
	api.GET("/scoreboard", scoreHandler.Scoreboard)
	api.GET("/scoreboard/predictions", scoreHandler.ScoreboardPredictions)

	// Admin (JWT required)
	api.POST("/admin/login", authHandler.Login)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWT(jwtService), middleware.RequireRole(auth.RoleAdmin))
	{
		adminGroup.POST("/set-correct-answers", adminHandler.SetCorrectAnswers)
		adminGroup.POST("/quiz-answers", adminHandler.SetQuizAnswers)
		adminGroup.GET("/quiz-questions", adminHandler.QuizQuestions)
		adminGroup.POST("/reveal", adminHandler.Reveal)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.Int("participants", len(roster)),
			zap.Time("reveal_date", cfg.Game.RevealDate),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
