package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/localloop/backend/internal/application/catalog"
	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/shared"
)

func newEventRouter(t *testing.T, eventRepo catalog.EventRepository, userRepo identity.UserRepository, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewEventHandler(appcatalog.NewEventService(eventRepo, userRepo))

	r := gin.New()
	r.Use(asUser(userID))
	r.GET("/events/:id", h.GetByID)
	r.POST("/events/:id/join", h.Join)
	r.GET("/events/:id/attendees", h.Attendees)
	return r
}

func TestEventHandler_GetByID(t *testing.T) {
	event := testEvent(t)
	repo := &stubEventRepo{
		findByID: func(_ context.Context, id uuid.UUID) (*catalog.Event, error) {
			assert.Equal(t, event.ID, id)
			return event, nil
		},
	}
	r := newEventRouter(t, repo, nil, uuid.New())

	w := performRequest(r, http.MethodGet, "/events/"+event.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Morning Run", data["title"])
	assert.Equal(t, "running", data["category"])
}

func TestEventHandler_GetByID_NotFound(t *testing.T) {
	repo := &stubEventRepo{
		findByID: func(context.Context, uuid.UUID) (*catalog.Event, error) {
			return nil, shared.ErrNotFound
		},
	}
	r := newEventRouter(t, repo, nil, uuid.New())

	w := performRequest(r, http.MethodGet, "/events/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestEventHandler_GetByID_InvalidID(t *testing.T) {
	r := newEventRouter(t, &stubEventRepo{}, nil, uuid.New())

	w := performRequest(r, http.MethodGet, "/events/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestEventHandler_Join_EventFull(t *testing.T) {
	event := testEvent(t)
	require.NoError(t, event.SetCapacity(1))
	require.NoError(t, event.RegisterAttendee())

	user, err := identity.NewUser("asha", "password123")
	require.NoError(t, err)

	eventRepo := &stubEventRepo{
		findByID: func(context.Context, uuid.UUID) (*catalog.Event, error) {
			return event, nil
		},
		findAttendee: func(context.Context, uuid.UUID, uuid.UUID) (*catalog.Attendee, error) {
			return nil, shared.ErrNotFound
		},
	}
	userRepo := &stubUserRepo{
		findByID: func(context.Context, uuid.UUID) (*identity.User, error) {
			return user, nil
		},
	}
	r := newEventRouter(t, eventRepo, userRepo, uuid.New())

	w := performRequest(r, http.MethodPost, "/events/"+event.ID.String()+"/join", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "EVENT_FULL")
}

func TestEventHandler_Attendees(t *testing.T) {
	event := testEvent(t)
	attendee, err := catalog.NewAttendee(event.ID, uuid.New(), "Asha", "9812345678", catalog.PaymentStatusFree)
	require.NoError(t, err)

	repo := &stubEventRepo{
		findByID: func(context.Context, uuid.UUID) (*catalog.Event, error) {
			return event, nil
		},
		findAttendees: func(context.Context, uuid.UUID) ([]catalog.Attendee, error) {
			return []catalog.Attendee{*attendee}, nil
		},
	}
	r := newEventRouter(t, repo, nil, uuid.New())

	w := performRequest(r, http.MethodGet, "/events/"+event.ID.String()+"/attendees", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["rows"])
}
