package preference

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for preference persistence
type Repository interface {
	// FindByUserID finds the preference record for a user.
	// Returns shared.ErrNotFound when the user has never saved preferences.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserPreference, error)

	// Save upserts the preference record keyed on user id
	Save(ctx context.Context, pref *UserPreference) error

	// DeleteByUserID removes the preference record for a user
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
