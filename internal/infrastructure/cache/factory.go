package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/localloop/backend/internal/application/recommendation"
	"github.com/localloop/backend/internal/infrastructure/config"
)

// RecommendationCacheFactory builds the recommendation result cache from
// configuration, preferring Redis and optionally falling back to the
// in-memory implementation when Redis is unreachable.
type RecommendationCacheFactory struct {
	config           config.RedisConfig
	ttl              time.Duration
	logger           *zap.Logger
	inMemoryFallback bool
}

// CacheFactoryOption configures the factory
type CacheFactoryOption func(*RecommendationCacheFactory)

// WithCacheLogger sets the logger used by the factory and the caches it builds
func WithCacheLogger(logger *zap.Logger) CacheFactoryOption {
	return func(f *RecommendationCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback makes CreateCache return an in-memory cache instead of
// failing when Redis is unavailable
func WithInMemoryFallback() CacheFactoryOption {
	return func(f *RecommendationCacheFactory) {
		f.inMemoryFallback = true
	}
}

// NewRecommendationCacheFactory creates a cache factory
func NewRecommendationCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...CacheFactoryOption) *RecommendationCacheFactory {
	f := &RecommendationCacheFactory{
		config: cfg,
		ttl:    ttl,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache builds a Redis-backed cache, failing if Redis is unreachable
func (f *RecommendationCacheFactory) CreateRedisCache() (*RedisRecommendationCache, error) {
	return NewRedisRecommendationCache(f.config, f.ttl, f.logger)
}

// CreateInMemoryCache builds a process-local cache
func (f *RecommendationCacheFactory) CreateInMemoryCache() *InMemoryRecommendationCache {
	return NewInMemoryRecommendationCache(f.ttl)
}

// CreateCache builds the preferred cache: Redis when reachable, otherwise the
// in-memory cache if fallback is enabled
func (f *RecommendationCacheFactory) CreateCache() (recommendation.ResultCache, error) {
	redisCache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("Using Redis recommendation cache",
			zap.String("host", f.config.Host),
			zap.Int("port", f.config.Port))
		return redisCache, nil
	}

	if !f.inMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory recommendation cache",
		zap.Error(err))
	return f.CreateInMemoryCache(), nil
}
