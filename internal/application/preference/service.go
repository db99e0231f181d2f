package preference

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/application/recommendation"
	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// Service handles reading and replacing a user's saved preferences
type Service struct {
	preferenceRepo preference.Repository
	cache          recommendation.ResultCache
}

// NewService creates a new preference Service. cache may be nil.
func NewService(preferenceRepo preference.Repository, cache recommendation.ResultCache) *Service {
	return &Service{
		preferenceRepo: preferenceRepo,
		cache:          cache,
	}
}

// Get returns the user's saved preferences
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*PreferenceResponse, error) {
	pref, err := s.preferenceRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrPreferencesNotFound
		}
		return nil, err
	}

	response := ToPreferenceResponse(pref)
	return &response, nil
}

// Update replaces the user's preferences wholesale and invalidates their
// cached recommendations. Creates the record if the user never saved one.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req UpdatePreferenceRequest) (*PreferenceResponse, error) {
	center, err := valueobject.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	pref, err := s.preferenceRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if err := pref.Replace(req.Categories, req.MinRating, req.MaxRating, req.MaxPrice, center, req.RadiusKm, req.AgeRequirement); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		pref, err = preference.NewPreference(userID, req.Categories, req.MinRating, req.MaxRating, req.MaxPrice, center, req.RadiusKm, req.AgeRequirement)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.preferenceRepo.Save(ctx, pref); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}

	response := ToPreferenceResponse(pref)
	return &response, nil
}

// CreateDefaults seeds a fresh account with the default preference record.
// An existing record is left alone.
func (s *Service) CreateDefaults(ctx context.Context, userID uuid.UUID) error {
	_, err := s.preferenceRepo.FindByUserID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	return s.preferenceRepo.Save(ctx, preference.NewDefaultPreference(userID))
}
