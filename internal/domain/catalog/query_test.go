package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEvent(t *testing.T, category Category, rating float64, price int64, lat, lng float64) *Event {
	t.Helper()
	event, err := NewEvent(uuid.New(), "Test Event", category, "2026-09-14", "18:00", mustCoordinate(t, lat, lng))
	require.NoError(t, err)
	require.NoError(t, event.SetPrice(price))
	require.NoError(t, event.SetRatingSummary(rating, 1))
	return event
}

func TestCategoryInPredicate(t *testing.T) {
	yoga := buildEvent(t, CategoryYoga, 4, 0, 27.33, 88.61)
	running := buildEvent(t, CategoryRunning, 4, 0, 27.33, 88.61)

	p := CategoryIn{Categories: []Category{CategoryYoga, CategoryMeditation}}
	assert.True(t, p.Matches(yoga))
	assert.False(t, p.Matches(running))

	assert.False(t, CategoryIn{}.Matches(yoga), "empty set matches nothing")
}

func TestRatingBetweenPredicate(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		min    float64
		max    float64
		want   bool
	}{
		{name: "inside band", rating: 4.0, min: 3, max: 5, want: true},
		{name: "lower bound inclusive", rating: 3.0, min: 3, max: 5, want: true},
		{name: "upper bound inclusive", rating: 5.0, min: 3, max: 5, want: true},
		{name: "below band", rating: 2.9, min: 3, max: 5, want: false},
		{name: "above band", rating: 4.1, min: 3, max: 4, want: false},
		{name: "unrated matches open band", rating: 0, min: 0, max: 5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := buildEvent(t, CategoryYoga, tt.rating, 0, 27.33, 88.61)
			p := RatingBetween{Min: tt.min, Max: tt.max}
			assert.Equal(t, tt.want, p.Matches(event))
		})
	}
}

func TestPriceAtMostPredicate(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		cap   int64
		want  bool
	}{
		{name: "under cap", price: 100, cap: 500, want: true},
		{name: "at cap inclusive", price: 500, cap: 500, want: true},
		{name: "over cap", price: 501, cap: 500, want: false},
		{name: "free always matches", price: 0, cap: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := buildEvent(t, CategoryYoga, 4, tt.price, 27.33, 88.61)
			assert.Equal(t, tt.want, PriceAtMost{Amount: tt.cap}.Matches(event))
		})
	}
}

func TestWithinRadiusPredicate(t *testing.T) {
	center := mustCoordinate(t, 27.3289509, 88.6073311)

	near := buildEvent(t, CategoryYoga, 4, 0, 27.34, 88.61)
	far := buildEvent(t, CategoryYoga, 4, 0, 26.7271, 88.3953)

	p := WithinRadius{Center: center, RadiusKm: 10}
	assert.True(t, p.Matches(near))
	assert.False(t, p.Matches(far))

	t.Run("boundary is inclusive", func(t *testing.T) {
		d := center.DistanceKm(near.Location())
		assert.True(t, WithinRadius{Center: center, RadiusKm: d}.Matches(near))
	})
}

func TestQueryConjunction(t *testing.T) {
	center := mustCoordinate(t, 27.3289509, 88.6073311)

	q := NewQuery().
		Where(CategoryIn{Categories: []Category{CategoryYoga}}).
		Where(RatingBetween{Min: 3, Max: 5}).
		Where(PriceAtMost{Amount: 500}).
		Where(WithinRadius{Center: center, RadiusKm: 10}).
		OrderByDistanceFrom(center).
		WithLimit(50)

	assert.Len(t, q.Predicates(), 4)
	require.NotNil(t, q.DistanceOrigin())
	assert.True(t, center.Equals(*q.DistanceOrigin()))
	assert.Equal(t, 50, q.Limit())

	matching := buildEvent(t, CategoryYoga, 4, 200, 27.34, 88.61)
	assert.True(t, q.Matches(matching))

	// a single failing predicate rejects the event
	wrongCategory := buildEvent(t, CategoryRunning, 4, 200, 27.34, 88.61)
	tooPricey := buildEvent(t, CategoryYoga, 4, 900, 27.34, 88.61)
	tooFar := buildEvent(t, CategoryYoga, 4, 200, 26.7271, 88.3953)
	lowRated := buildEvent(t, CategoryYoga, 2, 200, 27.34, 88.61)

	assert.False(t, q.Matches(wrongCategory))
	assert.False(t, q.Matches(tooPricey))
	assert.False(t, q.Matches(tooFar))
	assert.False(t, q.Matches(lowRated))

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.True(t, NewQuery().Matches(wrongCategory))
	})
}

func TestCategorySet(t *testing.T) {
	assert.Len(t, AllCategories(), 16)
	assert.True(t, IsValidCategory("dog-parents"))
	assert.False(t, IsValidCategory("skydiving"))
	assert.False(t, IsValidCategory(""))

	assert.True(t, IsValidAgeRequirement(0))
	assert.True(t, IsValidAgeRequirement(21))
	assert.False(t, IsValidAgeRequirement(16))
}
