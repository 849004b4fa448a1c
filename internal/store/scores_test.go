// internal/store/scores_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendormatch-workers/internal/common/logger"
	"vendormatch-workers/internal/matching"
)

func newTestScoreCache(t *testing.T) (*ScoreCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	return NewScoreCache(redisClient, logger.NewTestLogger(t), 10*time.Minute), mr
}

func TestScoreCacheRoundTrip(t *testing.T) {
	cache, _ := newTestScoreCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "req-1", "vendor-1", "v1.0")
	assert.False(t, ok)

	result := &matching.MatchScoreResult{
		TotalScore: 87.5,
		Confidence: matching.ConfidenceHigh,
	}
	cache.Put(ctx, "req-1", "vendor-1", "v1.0", result)

	cached, ok := cache.Get(ctx, "req-1", "vendor-1", "v1.0")
	require.True(t, ok)
	assert.Equal(t, result.TotalScore, cached.TotalScore)
	assert.Equal(t, result.Confidence, cached.Confidence)

	// A configuration roll changes the key, so the old entry no longer
	// answers.
	_, ok = cache.Get(ctx, "req-1", "vendor-1", "v1.1")
	assert.False(t, ok)
}

func TestScoreCacheMalformedEntry(t *testing.T) {
	cache, mr := newTestScoreCache(t)

	require.NoError(t, mr.Set("match:score:req-1:vendor-1:v1.0", "not-json"))

	_, ok := cache.Get(context.Background(), "req-1", "vendor-1", "v1.0")
	assert.False(t, ok)
}

func TestScoreCacheRedisDownAbsorbed(t *testing.T) {
	cache, mr := newTestScoreCache(t)
	mr.Close()

	ctx := context.Background()
	cache.Put(ctx, "req-1", "vendor-1", "v1.0", &matching.MatchScoreResult{TotalScore: 50})
	_, ok := cache.Get(ctx, "req-1", "vendor-1", "v1.0")
	assert.False(t, ok)
}
