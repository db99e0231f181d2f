package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttendee(t *testing.T) {
	t.Run("valid attendee", func(t *testing.T) {
		a, err := NewAttendee(uuid.New(), uuid.New(), "Tashi", "+91 9000000000", PaymentStatusPending)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPending, a.PaymentStatus)
		assert.False(t, a.CheckedIn)
		assert.False(t, a.JoinedAt.IsZero())
	})

	t.Run("payment status defaults to free", func(t *testing.T) {
		a, err := NewAttendee(uuid.New(), uuid.New(), "Tashi", "", "")
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusFree, a.PaymentStatus)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewAttendee(uuid.New(), uuid.New(), "  ", "", PaymentStatusFree)
		assert.Error(t, err)
	})

	t.Run("check in", func(t *testing.T) {
		a, err := NewAttendee(uuid.New(), uuid.New(), "Tashi", "", PaymentStatusFree)
		require.NoError(t, err)
		a.CheckIn()
		assert.True(t, a.CheckedIn)
	})
}

func TestNewReview(t *testing.T) {
	eventID := uuid.New()

	t.Run("valid review", func(t *testing.T) {
		r, err := NewReview(eventID, uuid.New(), "Pema", 5, "Great turnout")
		require.NoError(t, err)
		assert.Equal(t, 5, r.Rating)
		assert.Empty(t, r.OrganizerReply)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := NewReview(eventID, uuid.New(), "Pema", 0, "")
		assert.Error(t, err)
		_, err = NewReview(eventID, uuid.New(), "Pema", 6, "")
		assert.Error(t, err)
	})

	t.Run("organizer reply", func(t *testing.T) {
		r, err := NewReview(eventID, uuid.New(), "Pema", 4, "")
		require.NoError(t, err)
		require.NoError(t, r.Reply("Thanks for coming!"))
		assert.Error(t, r.Reply("  "))
	})
}
