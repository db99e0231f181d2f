package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	appcatalog "github.com/localloop/backend/internal/application/catalog"
	"github.com/localloop/backend/internal/application/recommendation"
	"github.com/localloop/backend/internal/infrastructure/config"
)

func sampleResults() []recommendation.RecommendedEvent {
	return []recommendation.RecommendedEvent{
		{
			EventResponse: appcatalog.EventResponse{ID: uuid.New(), Title: "Morning Yoga", Category: "yoga"},
			DistanceKm:    1.25,
		},
		{
			EventResponse: appcatalog.EventResponse{ID: uuid.New(), Title: "Momo Workshop", Category: "cooking"},
			DistanceKm:    3.4,
		},
	}
}

func TestInMemoryRecommendationCache_HitAndMiss(t *testing.T) {
	cache := NewInMemoryRecommendationCache(time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	_, ok := cache.Get(ctx, userID)
	assert.False(t, ok)

	results := sampleResults()
	cache.Set(ctx, userID, results)

	got, ok := cache.Get(ctx, userID)
	assert.True(t, ok)
	assert.Equal(t, results, got)

	_, ok = cache.Get(ctx, uuid.New())
	assert.False(t, ok)
}

func TestInMemoryRecommendationCache_Expiry(t *testing.T) {
	cache := NewInMemoryRecommendationCache(10 * time.Millisecond)
	ctx := context.Background()
	userID := uuid.New()

	cache.Set(ctx, userID, sampleResults())
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get(ctx, userID)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len(), "expired entry should be evicted on read")
}

func TestInMemoryRecommendationCache_Invalidate(t *testing.T) {
	cache := NewInMemoryRecommendationCache(time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	cache.Set(ctx, userID, sampleResults())
	cache.Invalidate(ctx, userID)

	_, ok := cache.Get(ctx, userID)
	assert.False(t, ok)

	// invalidating an unknown user is a no-op
	cache.Invalidate(ctx, uuid.New())
}

func TestInMemoryRecommendationCache_SetOverwrites(t *testing.T) {
	cache := NewInMemoryRecommendationCache(time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	cache.Set(ctx, userID, sampleResults())
	replacement := []recommendation.RecommendedEvent{
		{
			EventResponse: appcatalog.EventResponse{ID: uuid.New(), Title: "Trail Run", Category: "sports"},
			DistanceKm:    0.8,
		},
	}
	cache.Set(ctx, userID, replacement)

	got, ok := cache.Get(ctx, userID)
	assert.True(t, ok)
	assert.Equal(t, replacement, got)
	assert.Equal(t, 1, cache.Len())
}

func TestRecommendationCacheFactory_CreateInMemoryCache(t *testing.T) {
	factory := NewRecommendationCacheFactory(config.RedisConfig{}, time.Minute,
		WithCacheLogger(zap.NewNop()),
		WithInMemoryFallback(),
	)

	mem := factory.CreateInMemoryCache()
	assert.NotNil(t, mem)
	assert.Equal(t, 0, mem.Len())
}
