package recommendation

import (
	appcatalog "github.com/localloop/backend/internal/application/catalog"
)

// RecommendedEvent is an event enriched with its distance from the user's
// preferred center
type RecommendedEvent struct {
	appcatalog.EventResponse
	DistanceKm float64 `json:"distance_km"`
}
