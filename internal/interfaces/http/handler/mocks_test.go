package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
	"github.com/localloop/backend/internal/interfaces/http/middleware"
)

// stubEventRepo overrides only the catalog.EventRepository methods a test
// needs; calling anything else panics on the nil embedded interface.
type stubEventRepo struct {
	catalog.EventRepository

	findByID      func(ctx context.Context, id uuid.UUID) (*catalog.Event, error)
	findActive    func(ctx context.Context, query *catalog.Query) ([]catalog.Event, error)
	findAttendees func(ctx context.Context, eventID uuid.UUID) ([]catalog.Attendee, error)
	findAttendee  func(ctx context.Context, eventID, userID uuid.UUID) (*catalog.Attendee, error)
	addAttendee   func(ctx context.Context, attendee *catalog.Attendee) error
	save          func(ctx context.Context, event *catalog.Event) error
}

func (s *stubEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Event, error) {
	return s.findByID(ctx, id)
}

func (s *stubEventRepo) FindActive(ctx context.Context, query *catalog.Query) ([]catalog.Event, error) {
	return s.findActive(ctx, query)
}

func (s *stubEventRepo) FindAttendees(ctx context.Context, eventID uuid.UUID) ([]catalog.Attendee, error) {
	return s.findAttendees(ctx, eventID)
}

func (s *stubEventRepo) FindAttendee(ctx context.Context, eventID, userID uuid.UUID) (*catalog.Attendee, error) {
	return s.findAttendee(ctx, eventID, userID)
}

func (s *stubEventRepo) AddAttendee(ctx context.Context, attendee *catalog.Attendee) error {
	return s.addAttendee(ctx, attendee)
}

func (s *stubEventRepo) Save(ctx context.Context, event *catalog.Event) error {
	return s.save(ctx, event)
}

// stubUserRepo overrides only FindByID
type stubUserRepo struct {
	identity.UserRepository

	findByID func(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.findByID(ctx, id)
}

// stubPreferenceRepo overrides only FindByUserID and Save
type stubPreferenceRepo struct {
	preference.Repository

	findByUserID func(ctx context.Context, userID uuid.UUID) (*preference.UserPreference, error)
	save         func(ctx context.Context, pref *preference.UserPreference) error
}

func (s *stubPreferenceRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*preference.UserPreference, error) {
	return s.findByUserID(ctx, userID)
}

func (s *stubPreferenceRepo) Save(ctx context.Context, pref *preference.UserPreference) error {
	return s.save(ctx, pref)
}

// asUser simulates the JWT middleware for an authenticated request
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testCoordinate(t *testing.T) valueobject.Coordinate {
	t.Helper()
	coord, err := valueobject.NewCoordinate(27.3289509, 88.6073311)
	require.NoError(t, err)
	return coord
}

func testEvent(t *testing.T) *catalog.Event {
	t.Helper()
	event, err := catalog.NewEvent(uuid.New(), "Morning Run", catalog.CategoryRunning, "2026-09-14", "06:30", testCoordinate(t))
	require.NoError(t, err)
	return event
}
