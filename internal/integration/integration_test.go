package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/internal/domain"
	"github.com/amigo-bingo/backend/internal/models"
	"github.com/amigo-bingo/backend/internal/predictions"
	"github.com/amigo-bingo/backend/internal/quiz"
	"github.com/amigo-bingo/backend/internal/reveal"
	"github.com/amigo-bingo/backend/internal/scores"
	"github.com/amigo-bingo/backend/pkg/database"
)

var roster = models.Participants{"Miriam", "Paula", "Adriana"}

func completeMapping() map[string]string {
	return map[string]string{
		"Miriam":  "Paula",
		"Paula":   "Adriana",
		"Adriana": "Miriam",
	}
}

func TestPredictionRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := startMigratedPostgres(t, ctx)
	repo := predictions.NewRepository(pool)

	submitted := &models.Prediction{UserName: "Paula", Predictions: completeMapping()}
	require.NoError(t, repo.Upsert(ctx, submitted))
	require.NotZero(t, submitted.ID)

	got, err := repo.GetByUserName(ctx, "Paula")
	require.NoError(t, err)
	assert.Equal(t, "Paula", got.UserName)
	assert.Equal(t, completeMapping(), got.Predictions)

	// latest submission overwrites, created_at survives the update
	replacement := map[string]string{
		"Miriam":  "Adriana",
		"Paula":   "Miriam",
		"Adriana": "Miriam",
	}
	updated := &models.Prediction{UserName: "Paula", Predictions: replacement}
	require.NoError(t, repo.Upsert(ctx, updated))
	assert.Equal(t, submitted.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(submitted.CreatedAt))

	got, err = repo.GetByUserName(ctx, "Paula")
	require.NoError(t, err)
	assert.Equal(t, replacement, got.Predictions)
}

func TestPredictionNotFound(t *testing.T) {
	ctx := context.Background()
	pool := startMigratedPostgres(t, ctx)
	repo := predictions.NewRepository(pool)

	_, err := repo.GetByUserName(ctx, "Miriam")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	status, err := repo.Status(ctx, roster)
	require.NoError(t, err)
	assert.Equal(t, 0, status.SubmittedCount)
	assert.Len(t, status.Participants, len(roster))
}

func TestQuizAnswerImmutableUnderRetry(t *testing.T) {
	ctx := context.Background()
	pool := startMigratedPostgres(t, ctx)
	quizRepo := quiz.NewRepository(pool)
	scoreRepo := scores.NewRepository(pool)

	require.NoError(t, quizRepo.SetCorrectAnswers(ctx, map[string]string{"q1": "China"}))

	first := &models.QuizAnswer{UserName: "Paula", QuestionID: "q1", Answer: "China"}
	require.NoError(t, quizRepo.InsertAnswer(ctx, first))

	key, err := scoreRepo.LoadAnswerKey(ctx)
	require.NoError(t, err)
	answers, err := quizRepo.ListAnswers(ctx, "Paula")
	require.NoError(t, err)
	before := scores.QuizOnly("Paula", answers, key)
	assert.Equal(t, 1, before.QuizCorrect)

	// a retried submission, even with a different option, changes nothing
	retry := &models.QuizAnswer{UserName: "Paula", QuestionID: "q1", Answer: "India"}
	err = quizRepo.InsertAnswer(ctx, retry)
	assert.ErrorIs(t, err, domain.ErrAlreadyAnswered)

	answers, err = quizRepo.ListAnswers(ctx, "Paula")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "China", answers[0].Answer)

	after := scores.QuizOnly("Paula", answers, key)
	assert.Equal(t, before.QuizCorrect, after.QuizCorrect)
	assert.Equal(t, before.Score, after.Score)
}

func TestQuizUnansweredShrinks(t *testing.T) {
	ctx := context.Background()
	pool := startMigratedPostgres(t, ctx)
	quizRepo := quiz.NewRepository(pool)

	open, err := quizRepo.ListUnanswered(ctx, "Miriam")
	require.NoError(t, err)
	require.Len(t, open, 3)

	a := &models.QuizAnswer{UserName: "Miriam", QuestionID: open[0].ID, Answer: open[0].Options[0]}
	require.NoError(t, quizRepo.InsertAnswer(ctx, a))

	open, err = quizRepo.ListUnanswered(ctx, "Miriam")
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestQuizKeyPublishIsAtomic(t *testing.T) {
	ctx := context.Background()
	pool := startMigratedPostgres(t, ctx)
	quizRepo := quiz.NewRepository(pool)
	scoreRepo := scores.NewRepository(pool)

	err := quizRepo.SetCorrectAnswers(ctx, map[string]string{
		"q1":      "China",
		"no-such": "x",
	})
	require.Error(t, err)

	// the valid entry must not have been published on its own
	key, err := scoreRepo.LoadAnswerKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key.Quiz)
}

func TestRevealOverrideRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := startMigratedPostgres(t, ctx)
	repo := reveal.NewRepository(pool)

	override, err := repo.GetOverride(ctx)
	require.NoError(t, err)
	assert.False(t, override)

	require.NoError(t, repo.SetOverride(ctx, true))
	override, err = repo.GetOverride(ctx)
	require.NoError(t, err)
	assert.True(t, override)
}

func startMigratedPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()
	requireDocker(t)

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "bingo", "POSTGRES_PASSWORD": "bingopass", "POSTGRES_DB": "bingodb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://bingo:bingopass@%s:%s/bingodb?sslmode=disable", host, port.Port())
	pool, err := database.NewPostgresPool(ctx, dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
