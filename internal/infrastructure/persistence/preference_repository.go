package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared"
)

// GormPreferenceRepository implements preference.Repository using GORM
type GormPreferenceRepository struct {
	db *gorm.DB
}

// NewGormPreferenceRepository creates a new GormPreferenceRepository
func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

// FindByUserID finds the preference record for a user
func (r *GormPreferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*preference.UserPreference, error) {
	var pref preference.UserPreference
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}

// Save upserts the preference record keyed on user id
func (r *GormPreferenceRepository) Save(ctx context.Context, pref *preference.UserPreference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"categories", "min_rating", "max_rating", "max_price",
				"latitude", "longitude", "radius_km", "age_requirement",
				"last_updated", "updated_at", "version",
			}),
		}).
		Create(pref).Error
}

// DeleteByUserID removes the preference record for a user
func (r *GormPreferenceRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&preference.UserPreference{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
