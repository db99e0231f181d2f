package recommendation

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/localloop/backend/internal/application/catalog"
	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared"
)

// MaxResults caps a recommendation response
const MaxResults = 50

// Observer receives the outcome of each successful recommendation request
type Observer interface {
	RecordRequest(ctx context.Context, duration time.Duration, resultCount int, cacheHit bool)
}

// Service computes preference-based event recommendations. It is stateless
// and read-only: preferences come from the preference store, candidates from
// the event catalog, and the two never get mutated here.
type Service struct {
	preferenceRepo preference.Repository
	eventRepo      catalog.EventRepository
	cache          ResultCache
	observer       Observer
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithObserver attaches a request observer, typically metric instruments
func WithObserver(observer Observer) ServiceOption {
	return func(s *Service) {
		s.observer = observer
	}
}

// NewService creates a new recommendation Service. cache may be nil.
func NewService(preferenceRepo preference.Repository, eventRepo catalog.EventRepository, cache ResultCache, opts ...ServiceOption) *Service {
	s := &Service{
		preferenceRepo: preferenceRepo,
		eventRepo:      eventRepo,
		cache:          cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns up to MaxResults active events matching the user's saved
// preferences, ordered by ascending distance from the preferred center with
// event id breaking exact ties. A user without saved preferences gets
// shared.ErrPreferencesNotFound, never an empty success.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID) ([]RecommendedEvent, error) {
	start := time.Now()

	if s.cache != nil {
		if results, ok := s.cache.Get(ctx, userID); ok {
			s.observe(ctx, start, len(results), true)
			return results, nil
		}
	}

	pref, err := s.preferenceRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrPreferencesNotFound
		}
		return nil, err
	}

	events, err := s.eventRepo.FindActive(ctx, BuildQuery(pref))
	if err != nil {
		return nil, err
	}

	center := pref.Center()
	results := make([]RecommendedEvent, 0, len(events))
	for i := range events {
		results = append(results, RecommendedEvent{
			EventResponse: appcatalog.ToEventResponse(&events[i]),
			DistanceKm:    roundDistance(center.DistanceKm(events[i].Location())),
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, results)
	}

	s.observe(ctx, start, len(results), false)
	return results, nil
}

func (s *Service) observe(ctx context.Context, start time.Time, resultCount int, cacheHit bool) {
	if s.observer != nil {
		s.observer.RecordRequest(ctx, time.Since(start), resultCount, cacheHit)
	}
}

// BuildQuery translates saved preferences into the catalog query: every
// preference becomes a predicate, ANDed together, with distance ordering
// from the preferred center. An empty category list adds no category
// predicate at all.
func BuildQuery(pref *preference.UserPreference) *catalog.Query {
	center := pref.Center()

	query := catalog.NewQuery().
		Where(catalog.RatingBetween{Min: pref.MinRating, Max: pref.MaxRating}).
		Where(catalog.PriceAtMost{Amount: pref.MaxPrice}).
		Where(catalog.WithinRadius{Center: center, RadiusKm: pref.RadiusKm}).
		OrderByDistanceFrom(center).
		WithLimit(MaxResults)

	if pref.HasCategoryRestriction() {
		query.Where(catalog.CategoryIn{Categories: pref.CategorySet()})
	}

	return query
}

func roundDistance(km float64) float64 {
	return math.Round(km*100) / 100
}
