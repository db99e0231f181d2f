package preference

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// Default values applied when preferences are created at registration.
// The default center is Gangtok.
const (
	DefaultMinRating  = 0.0
	DefaultMaxRating  = 5.0
	DefaultLatitude   = 27.3289509
	DefaultLongitude  = 88.6073311
	DefaultRadiusKm   = 10.0
	DefaultMaxPrice   = int64(10000)
	MaxSearchRadiusKm = 500.0
)

// UserPreference holds a user's saved recommendation settings.
// Exactly one record exists per user; saves replace it wholesale.
type UserPreference struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex"`
	Categories     valueobject.StringList `gorm:"type:text"`
	MinRating      float64                `gorm:"not null;default:0"`
	MaxRating      float64                `gorm:"not null;default:5"`
	MaxPrice       int64                  `gorm:"not null;default:10000"`
	Latitude       float64                `gorm:"not null"`
	Longitude      float64                `gorm:"not null"`
	RadiusKm       float64                `gorm:"not null;default:10"`
	AgeRequirement int                    `gorm:"not null;default:0"`
	LastUpdated    time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserPreference) TableName() string {
	return "user_preferences"
}

// NewDefaultPreference creates the preference record a fresh account starts
// with
func NewDefaultPreference(userID uuid.UUID) *UserPreference {
	return &UserPreference{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Categories:        valueobject.StringList{},
		MinRating:         DefaultMinRating,
		MaxRating:         DefaultMaxRating,
		MaxPrice:          DefaultMaxPrice,
		Latitude:          DefaultLatitude,
		Longitude:         DefaultLongitude,
		RadiusKm:          DefaultRadiusKm,
		LastUpdated:       time.Now(),
	}
}

// NewPreference creates a validated preference record
func NewPreference(userID uuid.UUID, categories []string, minRating, maxRating float64, maxPrice int64, center valueobject.Coordinate, radiusKm float64, ageRequirement int) (*UserPreference, error) {
	if err := validateCategories(categories); err != nil {
		return nil, err
	}
	if err := validateRatingBand(minRating, maxRating); err != nil {
		return nil, err
	}
	if err := validateRadius(radiusKm); err != nil {
		return nil, err
	}
	if maxPrice < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Price ceiling cannot be negative")
	}
	if !catalog.IsValidAgeRequirement(ageRequirement) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Age requirement must be one of the allowed options")
	}

	if categories == nil {
		categories = []string{}
	}

	return &UserPreference{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Categories:        categories,
		MinRating:         minRating,
		MaxRating:         maxRating,
		MaxPrice:          maxPrice,
		Latitude:          center.Latitude(),
		Longitude:         center.Longitude(),
		RadiusKm:          radiusKm,
		AgeRequirement:    ageRequirement,
		LastUpdated:       time.Now(),
	}, nil
}

// Replace overwrites every setting wholesale and stamps LastUpdated.
// Partial updates are intentionally unsupported.
func (p *UserPreference) Replace(categories []string, minRating, maxRating float64, maxPrice int64, center valueobject.Coordinate, radiusKm float64, ageRequirement int) error {
	replacement, err := NewPreference(p.UserID, categories, minRating, maxRating, maxPrice, center, radiusKm, ageRequirement)
	if err != nil {
		return err
	}

	p.Categories = replacement.Categories
	p.MinRating = replacement.MinRating
	p.MaxRating = replacement.MaxRating
	p.MaxPrice = replacement.MaxPrice
	p.Latitude = replacement.Latitude
	p.Longitude = replacement.Longitude
	p.RadiusKm = replacement.RadiusKm
	p.AgeRequirement = replacement.AgeRequirement
	p.LastUpdated = time.Now()
	p.UpdatedAt = p.LastUpdated
	p.IncrementVersion()

	return nil
}

// Center returns the preferred search center
func (p *UserPreference) Center() valueobject.Coordinate {
	c, _ := valueobject.NewCoordinate(p.Latitude, p.Longitude)
	return c
}

// HasCategoryRestriction reports whether category filtering applies.
// An empty category list means no restriction.
func (p *UserPreference) HasCategoryRestriction() bool {
	return len(p.Categories) > 0
}

// CategorySet returns the preferred categories as typed values
func (p *UserPreference) CategorySet() []catalog.Category {
	out := make([]catalog.Category, 0, len(p.Categories))
	for _, c := range p.Categories {
		out = append(out, catalog.Category(c))
	}
	return out
}

func validateCategories(categories []string) error {
	for _, c := range categories {
		if !catalog.IsValidCategory(c) {
			return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown category: %s", c))
		}
	}
	return nil
}

func validateRatingBand(minRating, maxRating float64) error {
	if minRating < 0 || maxRating > 5 {
		return shared.NewDomainError("VALIDATION_ERROR", "Rating band must lie within [0, 5]")
	}
	if minRating > maxRating {
		return shared.NewDomainError("VALIDATION_ERROR", "Minimum rating cannot exceed maximum rating")
	}
	return nil
}

func validateRadius(radiusKm float64) error {
	if radiusKm <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Search radius must be positive")
	}
	if radiusKm > MaxSearchRadiusKm {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Search radius cannot exceed %.0f km", MaxSearchRadiusKm))
	}
	return nil
}
