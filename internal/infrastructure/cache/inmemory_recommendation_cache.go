package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/application/recommendation"
)

// InMemoryRecommendationCache implements recommendation.ResultCache with a
// process-local map. Suitable for single-instance deployments and tests;
// entries are evicted lazily on read.
type InMemoryRecommendationCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]cacheEntry
}

type cacheEntry struct {
	results   []recommendation.RecommendedEvent
	expiresAt time.Time
}

// NewInMemoryRecommendationCache creates an in-process recommendation cache
func NewInMemoryRecommendationCache(ttl time.Duration) *InMemoryRecommendationCache {
	return &InMemoryRecommendationCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]cacheEntry),
	}
}

// Get returns the cached results for a user, if present and fresh
func (c *InMemoryRecommendationCache) Get(_ context.Context, userID uuid.UUID) ([]recommendation.RecommendedEvent, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, userID)
		c.mu.Unlock()
		return nil, false
	}

	return entry.results, true
}

// Set stores the results for a user
func (c *InMemoryRecommendationCache) Set(_ context.Context, userID uuid.UUID, results []recommendation.RecommendedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{
		results:   results,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached results for a user
func (c *InMemoryRecommendationCache) Invalidate(_ context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// Len reports the number of live entries (for tests and monitoring)
func (c *InMemoryRecommendationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ recommendation.ResultCache = (*InMemoryRecommendationCache)(nil)
