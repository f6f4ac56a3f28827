package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/redis/go-redis/v9"
)

// scoreSource is the backing store the cache fronts
type scoreSource interface {
	Create(ctx context.Context, score *models.HealthScore) error
	LatestByCar(ctx context.Context, carID string) (*models.HealthScore, error)
	ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.HealthScore, error)
}

// ScoreCache is a read-through cache over the latest health score per car.
// It fronts only this one read; every other storage operation, user
// profiles included, goes straight to its backing store.
type ScoreCache struct {
	redis  *RedisCache
	scores scoreSource
	ttl    time.Duration
}

// NewScoreCache creates a new score cache
func NewScoreCache(redis *RedisCache, scores scoreSource, ttl time.Duration) *ScoreCache {
	return &ScoreCache{
		redis:  redis,
		scores: scores,
		ttl:    ttl,
	}
}

// LatestScoreKey returns the cache key for the latest score of a car.
// Format: score:latest:<car>
func LatestScoreKey(carID string) string {
	return fmt.Sprintf("score:latest:%s", strings.ToLower(carID))
}

// LatestByCar returns the latest health score for a car, consulting the
// cache first. A cache fault degrades to a database read; a cold cache
// changes latency, never results.
func (c *ScoreCache) LatestByCar(ctx context.Context, carID string) (*models.HealthScore, error) {
	key := LatestScoreKey(carID)

	var cached models.HealthScore
	if hit, err := c.get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	score, err := c.scores.LatestByCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	// Best effort populate for the next read
	_ = c.set(ctx, key, score)

	return score, nil
}

// ListByCar returns the score history for a car straight from the backing
// store. Only the latest score is cached.
func (c *ScoreCache) ListByCar(ctx context.Context, carID string, limit, offset int) ([]*models.HealthScore, error) {
	return c.scores.ListByCar(ctx, carID, limit, offset)
}

// Create stores a new health score and invalidates the cached latest score
// for the car
func (c *ScoreCache) Create(ctx context.Context, score *models.HealthScore) error {
	if err := c.scores.Create(ctx, score); err != nil {
		return err
	}

	return c.Invalidate(ctx, score.CarID)
}

// Invalidate drops the cached latest score for a car
func (c *ScoreCache) Invalidate(ctx context.Context, carID string) error {
	if err := c.redis.Del(ctx, LatestScoreKey(carID)); err != nil {
		return fmt.Errorf("failed to invalidate score cache: %w", err)
	}
	return nil
}

// get retrieves a value from cache and deserializes it
func (c *ScoreCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		// Key not found is not an error, just a cache miss
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return true, nil
}

// set serializes a value and stores it with the configured TTL
func (c *ScoreCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redis.Set(ctx, key, data, c.ttl)
}
