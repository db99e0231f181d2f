package valueobject

import (
	"encoding/json"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean earth radius used for great-circle distances.
// The same constant backs the SQL haversine expression, so distances computed
// in Go and in the database agree.
const EarthRadiusKm = 6371.0088

// Coordinate is a value object representing a geographic point (WGS84)
// It is immutable - construct via NewCoordinate
type Coordinate struct {
	latitude  float64
	longitude float64
}

// NewCoordinate creates a Coordinate after validating the latitude and
// longitude ranges
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, fmt.Errorf("latitude %f out of range [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, fmt.Errorf("longitude %f out of range [-180, 180]", longitude)
	}
	return Coordinate{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in degrees
func (c Coordinate) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in degrees
func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// DistanceKm returns the great-circle distance to another coordinate in
// kilometers, using the haversine formula
func (c Coordinate) DistanceKm(other Coordinate) float64 {
	lat1 := c.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - c.latitude) * math.Pi / 180
	dLng := (other.longitude - c.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// WithinKm reports whether the other coordinate lies within radiusKm
// (inclusive) of this one
func (c Coordinate) WithinKm(other Coordinate, radiusKm float64) bool {
	return c.DistanceKm(other) <= radiusKm
}

// Equals returns true if both coordinates are identical
func (c Coordinate) Equals(other Coordinate) bool {
	return c.latitude == other.latitude && c.longitude == other.longitude
}

// String returns a "lat,lng" representation
func (c Coordinate) String() string {
	return fmt.Sprintf("%.7f,%.7f", c.latitude, c.longitude)
}

// MarshalJSON implements json.Marshaler
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{
		Latitude:  c.latitude,
		Longitude: c.longitude,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var v struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewCoordinate(v.Latitude, v.Longitude)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
