package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

func mustCoordinate(t *testing.T, lat, lng float64) valueobject.Coordinate {
	t.Helper()
	c, err := valueobject.NewCoordinate(lat, lng)
	require.NoError(t, err)
	return c
}

func newTestEvent(t *testing.T) *Event {
	t.Helper()
	event, err := NewEvent(uuid.New(), "Morning Trail Run", CategoryRunning, "2026-09-14", "06:30", mustCoordinate(t, 27.3389, 88.6065))
	require.NoError(t, err)
	return event
}

func TestNewEvent(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		category Category
		date     string
		time     string
		wantErr  bool
		errCode  string
	}{
		{name: "valid event", title: "Morning Trail Run", category: CategoryRunning, date: "2026-09-14", time: "06:30"},
		{name: "empty title", title: "  ", category: CategoryRunning, date: "2026-09-14", time: "06:30", wantErr: true, errCode: "INVALID_TITLE"},
		{name: "unknown category", title: "Mystery Meetup", category: Category("skydiving"), date: "2026-09-14", time: "06:30", wantErr: true, errCode: "INVALID_CATEGORY"},
		{name: "bad date format", title: "Run", category: CategoryRunning, date: "14-09-2026", time: "06:30", wantErr: true, errCode: "INVALID_DATE"},
		{name: "bad time format", title: "Run", category: CategoryRunning, date: "2026-09-14", time: "6:30pm", wantErr: true, errCode: "INVALID_TIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewEvent(uuid.New(), tt.title, tt.category, tt.date, tt.time, mustCoordinate(t, 27.33, 88.61))
			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.errCode, domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, EventStatusActive, event.Status)
			assert.Zero(t, event.CurrentAttendees)
			assert.Zero(t, event.Rating)
			assert.Len(t, event.GetDomainEvents(), 1)
			assert.Equal(t, EventTypeEventCreated, event.GetDomainEvents()[0].EventType())
		})
	}
}

func TestEventLifecycle(t *testing.T) {
	t.Run("cancel active event", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.Cancel())
		assert.Equal(t, EventStatusCancelled, event.Status)
		assert.False(t, event.IsActive())
	})

	t.Run("complete active event", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.Complete())
		assert.Equal(t, EventStatusCompleted, event.Status)
	})

	t.Run("cancel is not repeatable", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.Cancel())
		err := event.Cancel()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("completed event cannot be cancelled", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.Complete())
		assert.Error(t, event.Cancel())
	})
}

func TestEventCapacity(t *testing.T) {
	t.Run("join up to capacity", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.SetCapacity(2))

		require.NoError(t, event.RegisterAttendee())
		require.NoError(t, event.RegisterAttendee())
		assert.Equal(t, 2, event.CurrentAttendees)

		err := event.RegisterAttendee()
		assert.ErrorIs(t, err, shared.ErrEventFull)
		assert.Equal(t, 2, event.CurrentAttendees)
	})

	t.Run("zero capacity means unlimited", func(t *testing.T) {
		event := newTestEvent(t)
		for range 10 {
			require.NoError(t, event.RegisterAttendee())
		}
		assert.Equal(t, 10, event.CurrentAttendees)
	})

	t.Run("cannot join cancelled event", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.Cancel())
		assert.Error(t, event.RegisterAttendee())
	})

	t.Run("leave never goes below zero", func(t *testing.T) {
		event := newTestEvent(t)
		event.ReleaseAttendee()
		assert.Zero(t, event.CurrentAttendees)
	})

	t.Run("capacity cannot drop below current attendees", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.RegisterAttendee())
		require.NoError(t, event.RegisterAttendee())
		assert.Error(t, event.SetCapacity(1))
	})
}

func TestEventRatingSummary(t *testing.T) {
	event := newTestEvent(t)

	require.NoError(t, event.SetRatingSummary(4.266666, 3))
	assert.Equal(t, 4.3, event.Rating)
	assert.Equal(t, 3, event.ReviewCount)

	assert.Error(t, event.SetRatingSummary(5.5, 1))
	assert.Error(t, event.SetRatingSummary(3.0, -1))
}

func TestEventSetters(t *testing.T) {
	event := newTestEvent(t)

	t.Run("price", func(t *testing.T) {
		require.NoError(t, event.SetPrice(299))
		assert.False(t, event.IsFree())
		assert.Equal(t, valueobject.NewMoneyINRFromInt(299), event.PriceMoney())
		assert.Error(t, event.SetPrice(-1))
	})

	t.Run("age requirement", func(t *testing.T) {
		require.NoError(t, event.SetAgeRequirement(18))
		assert.Error(t, event.SetAgeRequirement(16))
	})

	t.Run("recurrence", func(t *testing.T) {
		require.NoError(t, event.SetRecurrence(RecurringWeekly))
		assert.True(t, event.IsRecurring)
		assert.Error(t, event.SetRecurrence(RecurringType("daily")))
	})

	t.Run("venue", func(t *testing.T) {
		require.NoError(t, event.SetVenue("Ridge Park", "Ridge Road, Gangtok"))
		assert.Error(t, event.SetVenue("", "somewhere"))
	})

	t.Run("schedule", func(t *testing.T) {
		require.NoError(t, event.SetSchedule("2026-10-01", "18:00", 90))
		assert.Error(t, event.SetSchedule("2026-10-01", "18:00", 0))
	})

	t.Run("location", func(t *testing.T) {
		target := mustCoordinate(t, 27.6, 88.6)
		event.SetLocation(target)
		assert.True(t, target.Equals(event.Location()))
	})
}
