package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{name: "valid coordinate", latitude: 27.3289509, longitude: 88.6073311, wantErr: false},
		{name: "equator and prime meridian", latitude: 0, longitude: 0, wantErr: false},
		{name: "boundary latitude", latitude: 90, longitude: 10, wantErr: false},
		{name: "boundary longitude", latitude: 10, longitude: -180, wantErr: false},
		{name: "latitude too large", latitude: 90.01, longitude: 0, wantErr: true},
		{name: "latitude too small", latitude: -91, longitude: 0, wantErr: true},
		{name: "longitude too large", latitude: 0, longitude: 180.5, wantErr: true},
		{name: "longitude too small", latitude: 0, longitude: -181, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoordinate(tt.latitude, tt.longitude)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.latitude, c.Latitude())
			assert.Equal(t, tt.longitude, c.Longitude())
		})
	}
}

func TestCoordinateDistanceKm(t *testing.T) {
	gangtok, err := NewCoordinate(27.3389, 88.6065)
	require.NoError(t, err)
	siliguri, err := NewCoordinate(26.7271, 88.3953)
	require.NoError(t, err)

	t.Run("distance to self is zero", func(t *testing.T) {
		assert.Zero(t, gangtok.DistanceKm(gangtok))
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		assert.InDelta(t, gangtok.DistanceKm(siliguri), siliguri.DistanceKm(gangtok), 1e-9)
	})

	t.Run("known distance", func(t *testing.T) {
		// Gangtok to Siliguri is roughly 71 km great-circle
		d := gangtok.DistanceKm(siliguri)
		assert.InDelta(t, 71.0, d, 2.0)
	})

	t.Run("small offsets stay ordered", func(t *testing.T) {
		near, _ := NewCoordinate(27.3389, 88.6165)
		far, _ := NewCoordinate(27.3389, 88.6265)
		assert.Less(t, gangtok.DistanceKm(near), gangtok.DistanceKm(far))
	})

	t.Run("antipodal points do not NaN", func(t *testing.T) {
		a, _ := NewCoordinate(0, 0)
		b, _ := NewCoordinate(0, 180)
		d := a.DistanceKm(b)
		assert.False(t, d != d, "distance must not be NaN")
		assert.InDelta(t, 20015.0, d, 10.0)
	})
}

func TestCoordinateWithinKm(t *testing.T) {
	center, err := NewCoordinate(27.3289509, 88.6073311)
	require.NoError(t, err)

	tests := []struct {
		name     string
		lat, lng float64
		radiusKm float64
		want     bool
	}{
		{name: "same point within any radius", lat: 27.3289509, lng: 88.6073311, radiusKm: 0.001, want: true},
		{name: "inside radius", lat: 27.34, lng: 88.61, radiusKm: 10, want: true},
		{name: "outside radius", lat: 26.7271, lng: 88.3953, radiusKm: 10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := NewCoordinate(tt.lat, tt.lng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, center.WithinKm(other, tt.radiusKm))
		})
	}

	t.Run("radius boundary is inclusive", func(t *testing.T) {
		other, err := NewCoordinate(27.34, 88.61)
		require.NoError(t, err)
		d := center.DistanceKm(other)
		assert.True(t, center.WithinKm(other, d))
	})
}

func TestCoordinateJSON(t *testing.T) {
	c, err := NewCoordinate(27.3289509, 88.6073311)
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":27.3289509,"longitude":88.6073311}`, string(data))

	var decoded Coordinate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, c.Equals(decoded))

	var invalid Coordinate
	assert.Error(t, json.Unmarshal([]byte(`{"latitude":95,"longitude":0}`), &invalid))
}
