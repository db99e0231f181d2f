package preference

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

func center(t *testing.T) valueobject.Coordinate {
	t.Helper()
	c, err := valueobject.NewCoordinate(27.3289509, 88.6073311)
	require.NoError(t, err)
	return c
}

func TestNewDefaultPreference(t *testing.T) {
	userID := uuid.New()
	p := NewDefaultPreference(userID)

	assert.Equal(t, userID, p.UserID)
	assert.Empty(t, p.Categories)
	assert.False(t, p.HasCategoryRestriction())
	assert.Equal(t, DefaultMinRating, p.MinRating)
	assert.Equal(t, DefaultMaxRating, p.MaxRating)
	assert.Equal(t, DefaultMaxPrice, p.MaxPrice)
	assert.Equal(t, DefaultLatitude, p.Latitude)
	assert.Equal(t, DefaultLongitude, p.Longitude)
	assert.Equal(t, DefaultRadiusKm, p.RadiusKm)
	assert.Zero(t, p.AgeRequirement)
	assert.False(t, p.LastUpdated.IsZero())
}

func TestNewPreference(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		categories []string
		minRating  float64
		maxRating  float64
		maxPrice   int64
		radiusKm   float64
		age        int
		wantErr    bool
	}{
		{name: "valid full preference", categories: []string{"yoga", "running"}, minRating: 3, maxRating: 5, maxPrice: 500, radiusKm: 25, age: 18},
		{name: "empty categories allowed", categories: nil, minRating: 0, maxRating: 5, maxPrice: 10000, radiusKm: 10, age: 0},
		{name: "unknown category", categories: []string{"skydiving"}, minRating: 0, maxRating: 5, maxPrice: 100, radiusKm: 10, wantErr: true},
		{name: "min above max", categories: nil, minRating: 4, maxRating: 3, maxPrice: 100, radiusKm: 10, wantErr: true},
		{name: "rating above five", categories: nil, minRating: 0, maxRating: 5.5, maxPrice: 100, radiusKm: 10, wantErr: true},
		{name: "negative min rating", categories: nil, minRating: -1, maxRating: 5, maxPrice: 100, radiusKm: 10, wantErr: true},
		{name: "zero radius", categories: nil, minRating: 0, maxRating: 5, maxPrice: 100, radiusKm: 0, wantErr: true},
		{name: "negative radius", categories: nil, minRating: 0, maxRating: 5, maxPrice: 100, radiusKm: -5, wantErr: true},
		{name: "radius over limit", categories: nil, minRating: 0, maxRating: 5, maxPrice: 100, radiusKm: 501, wantErr: true},
		{name: "negative price ceiling", categories: nil, minRating: 0, maxRating: 5, maxPrice: -1, radiusKm: 10, wantErr: true},
		{name: "invalid age option", categories: nil, minRating: 0, maxRating: 5, maxPrice: 100, radiusKm: 10, age: 16, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPreference(userID, tt.categories, tt.minRating, tt.maxRating, tt.maxPrice, center(t), tt.radiusKm, tt.age)
			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, p.UserID)
			assert.NotNil(t, []string(p.Categories))
		})
	}
}

func TestPreferenceReplace(t *testing.T) {
	p := NewDefaultPreference(uuid.New())
	before := p.LastUpdated
	version := p.GetVersion()

	err := p.Replace([]string{"yoga"}, 3, 5, 750, center(t), 20, 21)
	require.NoError(t, err)

	assert.Equal(t, []string{"yoga"}, []string(p.Categories))
	assert.Equal(t, 3.0, p.MinRating)
	assert.Equal(t, int64(750), p.MaxPrice)
	assert.Equal(t, 20.0, p.RadiusKm)
	assert.Equal(t, 21, p.AgeRequirement)
	assert.False(t, p.LastUpdated.Before(before))
	assert.Greater(t, p.GetVersion(), version)

	t.Run("replace is wholesale", func(t *testing.T) {
		require.NoError(t, p.Replace(nil, 0, 5, 100, center(t), 5, 0))
		assert.Empty(t, p.Categories, "previous categories must not survive")
		assert.Zero(t, p.AgeRequirement)
	})

	t.Run("invalid replacement leaves record untouched", func(t *testing.T) {
		require.NoError(t, p.Replace([]string{"art"}, 1, 4, 300, center(t), 15, 0))
		err := p.Replace([]string{"bad-category"}, 1, 4, 300, center(t), 15, 0)
		require.Error(t, err)
		assert.Equal(t, []string{"art"}, []string(p.Categories))
	})
}

func TestPreferenceCategorySet(t *testing.T) {
	p := NewDefaultPreference(uuid.New())
	require.NoError(t, p.Replace([]string{"yoga", "running"}, 0, 5, 100, center(t), 10, 0))

	assert.True(t, p.HasCategoryRestriction())
	assert.Equal(t, []catalog.Category{catalog.CategoryYoga, catalog.CategoryRunning}, p.CategorySet())
}
