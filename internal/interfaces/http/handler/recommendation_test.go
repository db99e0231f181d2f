package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localloop/backend/internal/application/recommendation"
	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared"
)

func newRecommendationRouter(t *testing.T, prefRepo preference.Repository, eventRepo catalog.EventRepository, userID uuid.UUID, authenticated bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewRecommendationHandler(recommendation.NewService(prefRepo, eventRepo, nil))

	r := gin.New()
	if authenticated {
		r.Use(asUser(userID))
	}
	r.GET("/events/recommended", h.Recommended)
	return r
}

func TestRecommendationHandler_Recommended(t *testing.T) {
	userID := uuid.New()
	pref, err := preference.NewPreference(userID, []string{"running"}, 0, 5, 100000, testCoordinate(t), 25, 0)
	require.NoError(t, err)

	prefRepo := &stubPreferenceRepo{
		findByUserID: func(_ context.Context, id uuid.UUID) (*preference.UserPreference, error) {
			assert.Equal(t, userID, id)
			return pref, nil
		},
	}
	eventRepo := &stubEventRepo{
		findActive: func(context.Context, *catalog.Query) ([]catalog.Event, error) {
			return []catalog.Event{*testEvent(t)}, nil
		},
	}
	r := newRecommendationRouter(t, prefRepo, eventRepo, userID, true)

	w := performRequest(r, http.MethodGet, "/events/recommended", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["rows"])

	data := body["data"].([]any)
	first := data[0].(map[string]any)
	assert.Contains(t, first, "distance_km")
}

func TestRecommendationHandler_PreferencesMissing(t *testing.T) {
	prefRepo := &stubPreferenceRepo{
		findByUserID: func(context.Context, uuid.UUID) (*preference.UserPreference, error) {
			return nil, shared.ErrNotFound
		},
	}
	r := newRecommendationRouter(t, prefRepo, &stubEventRepo{}, uuid.New(), true)

	w := performRequest(r, http.MethodGet, "/events/recommended", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PREFERENCES_NOT_FOUND")
	assert.Contains(t, w.Body.String(), "Preferences not found")
}

func TestRecommendationHandler_Unauthenticated(t *testing.T) {
	r := newRecommendationRouter(t, &stubPreferenceRepo{}, &stubEventRepo{}, uuid.New(), false)

	w := performRequest(r, http.MethodGet, "/events/recommended", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
