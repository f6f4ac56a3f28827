package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/car-assistant/internal/config"
	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScoreSource records calls so tests can observe read-through behavior
type stubScoreSource struct {
	latest      *models.HealthScore
	latestCalls int
	created     []*models.HealthScore
}

func (s *stubScoreSource) Create(ctx context.Context, score *models.HealthScore) error {
	s.created = append(s.created, score)
	s.latest = score
	return nil
}

func (s *stubScoreSource) LatestByCar(ctx context.Context, carID string) (*models.HealthScore, error) {
	s.latestCalls++
	if s.latest == nil {
		return nil, fmt.Errorf("health score not found for car: %s", carID)
	}
	return s.latest, nil
}

func (s *stubScoreSource) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.HealthScore, error) {
	return s.created, nil
}

// setupTestScoreCache creates a ScoreCache backed by a test Redis instance
func setupTestScoreCache(t *testing.T) (*ScoreCache, *stubScoreSource, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisCache, err := NewRedisCache(&config.RedisConfig{
		Host:           mr.Host(),
		Port:           mr.Port(),
		MaxConnections: 10,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	source := &stubScoreSource{}
	return NewScoreCache(redisCache, source, time.Minute), source, mr
}

func TestLatestScoreKey(t *testing.T) {
	assert.Equal(t, "score:latest:car-1", LatestScoreKey("car-1"))

	t.Run("normalizes case", func(t *testing.T) {
		assert.Equal(t, "score:latest:car-abc", LatestScoreKey("Car-ABC"))
	})
}

func TestScoreCache_LatestByCar(t *testing.T) {
	cache, source, mr := setupTestScoreCache(t)
	ctx := context.Background()

	source.latest = &models.HealthScore{
		ID:       "score-1",
		CarID:    "car-1",
		Category: types.ScoreOverall,
		Score:    87.5,
	}

	t.Run("miss reads the store and populates the cache", func(t *testing.T) {
		score, err := cache.LatestByCar(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "score-1", score.ID)
		assert.Equal(t, 1, source.latestCalls)
		assert.True(t, mr.Exists(LatestScoreKey("car-1")))
	})

	t.Run("hit skips the store", func(t *testing.T) {
		score, err := cache.LatestByCar(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "score-1", score.ID)
		assert.Equal(t, 87.5, score.Score)
		assert.Equal(t, 1, source.latestCalls)
	})
}

func TestScoreCache_CreateInvalidates(t *testing.T) {
	cache, source, mr := setupTestScoreCache(t)
	ctx := context.Background()

	source.latest = &models.HealthScore{ID: "score-1", CarID: "car-1", Category: types.ScoreOverall, Score: 60}

	// Prime the cache
	_, err := cache.LatestByCar(ctx, "car-1")
	require.NoError(t, err)
	require.True(t, mr.Exists(LatestScoreKey("car-1")))

	err = cache.Create(ctx, &models.HealthScore{ID: "score-2", CarID: "car-1", Category: types.ScoreOverall, Score: 72})
	require.NoError(t, err)
	require.Len(t, source.created, 1)

	assert.False(t, mr.Exists(LatestScoreKey("car-1")), "create should drop the cached latest score")

	score, err := cache.LatestByCar(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, "score-2", score.ID)
	assert.Equal(t, 2, source.latestCalls)
}

func TestScoreCache_FaultFallsThrough(t *testing.T) {
	cache, source, mr := setupTestScoreCache(t)
	ctx := context.Background()

	source.latest = &models.HealthScore{ID: "score-1", CarID: "car-1", Category: types.ScoreOverall, Score: 55}

	// A dead cache degrades to store reads, it never fails them
	mr.Close()

	score, err := cache.LatestByCar(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, "score-1", score.ID)
	assert.Equal(t, 1, source.latestCalls)
}

func TestScoreCache_MissOnEmptyStore(t *testing.T) {
	cache, source, _ := setupTestScoreCache(t)
	ctx := context.Background()

	_, err := cache.LatestByCar(ctx, "car-without-scores")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, 1, source.latestCalls)
}
