package preference

import (
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/preference"
)

// UpdatePreferenceRequest replaces the user's saved preferences wholesale.
// Every field is required because partial merges are not supported.
type UpdatePreferenceRequest struct {
	Categories     []string `json:"categories"`
	MinRating      float64  `json:"min_rating" binding:"min=0,max=5"`
	MaxRating      float64  `json:"max_rating" binding:"min=0,max=5"`
	MaxPrice       int64    `json:"max_price" binding:"min=0"`
	Latitude       float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude      float64  `json:"longitude" binding:"min=-180,max=180"`
	RadiusKm       float64  `json:"radius_km" binding:"required,gt=0"`
	AgeRequirement int      `json:"age_requirement"`
}

// PreferenceResponse represents stored preferences in API responses
type PreferenceResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	Categories     []string  `json:"categories"`
	MinRating      float64   `json:"min_rating"`
	MaxRating      float64   `json:"max_rating"`
	MaxPrice       int64     `json:"max_price"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	RadiusKm       float64   `json:"radius_km"`
	AgeRequirement int       `json:"age_requirement"`
	LastUpdated    time.Time `json:"last_updated"`
}

// ToPreferenceResponse converts stored preferences to their API representation
func ToPreferenceResponse(pref *preference.UserPreference) PreferenceResponse {
	return PreferenceResponse{
		UserID:         pref.UserID,
		Categories:     pref.Categories,
		MinRating:      pref.MinRating,
		MaxRating:      pref.MaxRating,
		MaxPrice:       pref.MaxPrice,
		Latitude:       pref.Latitude,
		Longitude:      pref.Longitude,
		RadiusKm:       pref.RadiusKm,
		AgeRequirement: pref.AgeRequirement,
		LastUpdated:    pref.LastUpdated,
	}
}
