package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/shared"
)

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// FindByID finds an event by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindActive finds active events matching the query, honoring its
	// distance ordering and limit
	FindActive(ctx context.Context, query *Query) ([]Event, error)

	// FindAll finds events matching the filter, featured first then by date
	FindAll(ctx context.Context, filter shared.Filter) ([]Event, error)

	// FindByOrganizer finds all events listed by an organizer
	FindByOrganizer(ctx context.Context, organizerID uuid.UUID, filter shared.Filter) ([]Event, error)

	// FindUpcomingByOrganizer finds the organizer's next active events by date
	FindUpcomingByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]Event, error)

	// Save creates or updates an event
	Save(ctx context.Context, event *Event) error

	// Delete removes an event
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts events matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// AddAttendee records a join; the event's attendee counter is saved
	// separately via Save
	AddAttendee(ctx context.Context, attendee *Attendee) error

	// RemoveAttendee deletes the join record for a user on an event
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error

	// FindAttendee finds a single join record
	FindAttendee(ctx context.Context, eventID, userID uuid.UUID) (*Attendee, error)

	// FindAttendees lists the join records for an event
	FindAttendees(ctx context.Context, eventID uuid.UUID) ([]Attendee, error)

	// FindRecentAttendeesByOrganizer lists the latest joins across all of an
	// organizer's events
	FindRecentAttendeesByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]Attendee, error)

	// AddReview records a review
	AddReview(ctx context.Context, review *Review) error

	// FindReviews lists the reviews for an event, newest first
	FindReviews(ctx context.Context, eventID uuid.UUID) ([]Review, error)

	// RatingSummary returns the average rating and review count for an event
	RatingSummary(ctx context.Context, eventID uuid.UUID) (float64, int, error)
}
