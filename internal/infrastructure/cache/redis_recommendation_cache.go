package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/localloop/backend/internal/application/recommendation"
	"github.com/localloop/backend/internal/infrastructure/config"
)

// RedisRecommendationCache implements recommendation.ResultCache on Redis.
// Cache failures are logged and treated as misses, never surfaced to the
// request path.
type RedisRecommendationCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisRecommendationCache creates a Redis-backed recommendation cache
func NewRedisRecommendationCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisRecommendationCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRecommendationCacheWithClient(client, ttl, logger), nil
}

// NewRedisRecommendationCacheWithClient creates a cache using an existing
// Redis client, useful for sharing a client across components
func NewRedisRecommendationCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRecommendationCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRecommendationCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: "recommend:user:",
		logger:    logger,
	}
}

func (c *RedisRecommendationCache) key(userID uuid.UUID) string {
	return c.keyPrefix + userID.String()
}

// Get returns the cached results for a user, if present
func (c *RedisRecommendationCache) Get(ctx context.Context, userID uuid.UUID) ([]recommendation.RecommendedEvent, bool) {
	payload, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Recommendation cache read failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, false
	}

	var results []recommendation.RecommendedEvent
	if err := json.Unmarshal(payload, &results); err != nil {
		c.logger.Warn("Recommendation cache entry corrupt, dropping",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		c.Invalidate(ctx, userID)
		return nil, false
	}

	return results, true
}

// Set stores the results for a user with the configured TTL
func (c *RedisRecommendationCache) Set(ctx context.Context, userID uuid.UUID, results []recommendation.RecommendedEvent) {
	payload, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Failed to encode recommendation results",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.key(userID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Recommendation cache write failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// Invalidate drops the cached results for a user
func (c *RedisRecommendationCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Warn("Recommendation cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisRecommendationCache) Close() error {
	return c.client.Close()
}

var _ recommendation.ResultCache = (*RedisRecommendationCache)(nil)
