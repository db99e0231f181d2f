package recommendation

import (
	"context"

	"github.com/google/uuid"
)

// ResultCache caches a user's recommendation list between preference saves.
// Implementations swallow and log their own transport errors; a cache
// problem must never fail a recommendation request.
type ResultCache interface {
	// Get returns the cached results and whether a fresh entry existed
	Get(ctx context.Context, userID uuid.UUID) ([]RecommendedEvent, bool)

	// Set stores the results for the user
	Set(ctx context.Context, userID uuid.UUID, results []RecommendedEvent)

	// Invalidate drops the user's entry; called when preferences change
	Invalidate(ctx context.Context, userID uuid.UUID)
}
