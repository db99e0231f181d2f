package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RecommendationMetrics instruments the recommendation pipeline: request
// volume, latency, cache effectiveness, and result set sizes.
type RecommendationMetrics struct {
	requestTotal    *Counter
	requestDuration *Histogram
	cacheTotal      *Counter
	resultCount     *Histogram
}

// NewRecommendationMetrics creates the recommendation instruments on meter
func NewRecommendationMetrics(meter metric.Meter) (*RecommendationMetrics, error) {
	requestTotal, err := NewCounter(meter,
		"recommendation_request_total",
		"Total recommendation requests served",
		"{request}")
	if err != nil {
		return nil, err
	}

	requestDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "recommendation_request_duration_seconds",
		Description: "Recommendation request latency distribution",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	cacheTotal, err := NewCounter(meter,
		"recommendation_cache_total",
		"Recommendation cache lookups by result",
		"{lookup}")
	if err != nil {
		return nil, err
	}

	resultCount, err := NewHistogram(meter, HistogramOpts{
		Name:        "recommendation_result_count",
		Description: "Number of events returned per recommendation request",
		Unit:        "{event}",
		Boundaries:  []float64{0, 1, 5, 10, 20, 50},
	})
	if err != nil {
		return nil, err
	}

	return &RecommendationMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		cacheTotal:      cacheTotal,
		resultCount:     resultCount,
	}, nil
}

// RecordRequest records one served recommendation request
func (m *RecommendationMetrics) RecordRequest(ctx context.Context, duration time.Duration, resultCount int, cacheHit bool) {
	m.requestTotal.Inc(ctx)
	m.requestDuration.RecordDuration(ctx, duration)
	m.resultCount.Record(ctx, float64(resultCount))

	result := "miss"
	if cacheHit {
		result = "hit"
	}
	m.cacheTotal.Inc(ctx, AttrCacheResult.String(result))
}

// CatalogMetrics instruments event lifecycle activity
type CatalogMetrics struct {
	eventCreatedTotal *Counter
	registrationTotal *Counter
	reviewTotal       *Counter
}

// NewCatalogMetrics creates the catalog instruments on meter
func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	eventCreatedTotal, err := NewCounter(meter,
		"catalog_event_created_total",
		"Events published to the catalog",
		"{event}")
	if err != nil {
		return nil, err
	}

	registrationTotal, err := NewCounter(meter,
		"catalog_registration_total",
		"Attendee registrations by outcome",
		"{registration}")
	if err != nil {
		return nil, err
	}

	reviewTotal, err := NewCounter(meter,
		"catalog_review_total",
		"Reviews submitted for completed events",
		"{review}")
	if err != nil {
		return nil, err
	}

	return &CatalogMetrics{
		eventCreatedTotal: eventCreatedTotal,
		registrationTotal: registrationTotal,
		reviewTotal:       reviewTotal,
	}, nil
}

// RecordEventCreated counts a newly published event
func (m *CatalogMetrics) RecordEventCreated(ctx context.Context, category string) {
	m.eventCreatedTotal.Inc(ctx, AttrEventCategory.String(category))
}

// RecordRegistration counts a join attempt by outcome ("joined", "full",
// "duplicate")
func (m *CatalogMetrics) RecordRegistration(ctx context.Context, outcome string) {
	m.registrationTotal.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordReview counts a submitted review
func (m *CatalogMetrics) RecordReview(ctx context.Context) {
	m.reviewTotal.Inc(ctx)
}
