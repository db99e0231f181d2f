package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apppreference "github.com/localloop/backend/internal/application/preference"
	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared"
)

func newPreferenceRouter(t *testing.T, repo preference.Repository, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewPreferenceHandler(apppreference.NewService(repo, nil))

	r := gin.New()
	r.Use(asUser(userID))
	r.GET("/user/preferences", h.Get)
	r.PUT("/user/preferences", h.Update)
	return r
}

func TestPreferenceHandler_Get_NotFound(t *testing.T) {
	repo := &stubPreferenceRepo{
		findByUserID: func(context.Context, uuid.UUID) (*preference.UserPreference, error) {
			return nil, shared.ErrNotFound
		},
	}
	r := newPreferenceRouter(t, repo, uuid.New())

	w := performRequest(r, http.MethodGet, "/user/preferences", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PREFERENCES_NOT_FOUND")
}

func TestPreferenceHandler_Update(t *testing.T) {
	userID := uuid.New()
	var saved *preference.UserPreference
	repo := &stubPreferenceRepo{
		findByUserID: func(context.Context, uuid.UUID) (*preference.UserPreference, error) {
			return nil, shared.ErrNotFound
		},
		save: func(_ context.Context, pref *preference.UserPreference) error {
			saved = pref
			return nil
		},
	}
	r := newPreferenceRouter(t, repo, userID)

	w := performRequest(r, http.MethodPut, "/user/preferences", apppreference.UpdatePreferenceRequest{
		Categories: []string{"running", "yoga"},
		MinRating:  0,
		MaxRating:  5,
		MaxPrice:   50000,
		Latitude:   27.3289509,
		Longitude:  88.6073311,
		RadiusKm:   10,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, saved) {
		assert.Equal(t, userID, saved.UserID)
	}

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(10), data["radius_km"])
}

func TestPreferenceHandler_Update_InvalidPayload(t *testing.T) {
	r := newPreferenceRouter(t, &stubPreferenceRepo{}, uuid.New())

	w := performRequest(r, http.MethodPut, "/user/preferences", map[string]any{
		"latitude":  200,
		"radius_km": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
