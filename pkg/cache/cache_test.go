package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amigo-bingo/backend/internal/models"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, zap.NewNop(), time.Minute), mr
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var board models.Scoreboard
	assert.False(t, c.Get(context.Background(), KeyScoreboard, &board))
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	stored := models.Scoreboard{
		HasAdminAnswers: true,
		Data: []models.ScoreboardEntry{
			{UserName: "Paula", TotalCorrect: 5, TotalQuestions: 10, Score: 50},
		},
	}
	require.NoError(t, c.Set(ctx, KeyScoreboard, &stored))

	var loaded models.Scoreboard
	require.True(t, c.Get(ctx, KeyScoreboard, &loaded))
	assert.Equal(t, stored, loaded)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeyScoreboard, models.Scoreboard{HasAdminAnswers: true}))
	c.Invalidate(ctx, KeyScoreboard)

	var board models.Scoreboard
	assert.False(t, c.Get(ctx, KeyScoreboard, &board))
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeyScoreboard, models.Scoreboard{}))
	mr.FastForward(2 * time.Minute)

	var board models.Scoreboard
	assert.False(t, c.Get(ctx, KeyScoreboard, &board))
}

func TestCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set(KeyScoreboard, "not json"))

	var board models.Scoreboard
	assert.False(t, c.Get(context.Background(), KeyScoreboard, &board))
}
