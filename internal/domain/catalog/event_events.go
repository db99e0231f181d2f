package catalog

import (
	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeEvent = "Event"

// Event type constants
const (
	EventTypeEventCreated       = "EventCreated"
	EventTypeEventUpdated       = "EventUpdated"
	EventTypeEventStatusChanged = "EventStatusChanged"
	EventTypeAttendeeJoined     = "AttendeeJoined"
	EventTypeAttendeeLeft       = "AttendeeLeft"
	EventTypeReviewAdded        = "ReviewAdded"
)

// EventCreatedEvent is published when a new event is listed
type EventCreatedEvent struct {
	shared.BaseDomainEvent
	EventAggregateID uuid.UUID `json:"event_id"`
	Title            string    `json:"title"`
	Category         Category  `json:"category"`
	OrganizerID      uuid.UUID `json:"organizer_id"`
}

// NewEventCreatedEvent creates a new EventCreatedEvent
func NewEventCreatedEvent(event *Event) *EventCreatedEvent {
	return &EventCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeEventCreated, AggregateTypeEvent, event.ID),
		EventAggregateID: event.ID,
		Title:            event.Title,
		Category:         event.Category,
		OrganizerID:      event.OrganizerID,
	}
}

// EventUpdatedEvent is published when event details change
type EventUpdatedEvent struct {
	shared.BaseDomainEvent
	EventAggregateID uuid.UUID `json:"event_id"`
	Title            string    `json:"title"`
	Category         Category  `json:"category"`
}

// NewEventUpdatedEvent creates a new EventUpdatedEvent
func NewEventUpdatedEvent(event *Event) *EventUpdatedEvent {
	return &EventUpdatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeEventUpdated, AggregateTypeEvent, event.ID),
		EventAggregateID: event.ID,
		Title:            event.Title,
		Category:         event.Category,
	}
}

// EventStatusChangedEvent is published when an event is cancelled or completed
type EventStatusChangedEvent struct {
	shared.BaseDomainEvent
	EventAggregateID uuid.UUID   `json:"event_id"`
	OldStatus        EventStatus `json:"old_status"`
	NewStatus        EventStatus `json:"new_status"`
}

// NewEventStatusChangedEvent creates a new EventStatusChangedEvent
func NewEventStatusChangedEvent(event *Event, oldStatus EventStatus) *EventStatusChangedEvent {
	return &EventStatusChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeEventStatusChanged, AggregateTypeEvent, event.ID),
		EventAggregateID: event.ID,
		OldStatus:        oldStatus,
		NewStatus:        event.Status,
	}
}

// AttendeeJoinedEvent is published when someone joins an event
type AttendeeJoinedEvent struct {
	shared.BaseDomainEvent
	EventAggregateID uuid.UUID `json:"event_id"`
	Attendees        int       `json:"attendees"`
}

// NewAttendeeJoinedEvent creates a new AttendeeJoinedEvent
func NewAttendeeJoinedEvent(event *Event) *AttendeeJoinedEvent {
	return &AttendeeJoinedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAttendeeJoined, AggregateTypeEvent, event.ID),
		EventAggregateID: event.ID,
		Attendees:        event.CurrentAttendees,
	}
}

// AttendeeLeftEvent is published when someone leaves an event
type AttendeeLeftEvent struct {
	shared.BaseDomainEvent
	EventAggregateID uuid.UUID `json:"event_id"`
	Attendees        int       `json:"attendees"`
}

// NewAttendeeLeftEvent creates a new AttendeeLeftEvent
func NewAttendeeLeftEvent(event *Event) *AttendeeLeftEvent {
	return &AttendeeLeftEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAttendeeLeft, AggregateTypeEvent, event.ID),
		EventAggregateID: event.ID,
		Attendees:        event.CurrentAttendees,
	}
}

// ReviewAddedEvent is published when a review lands on an event
type ReviewAddedEvent struct {
	shared.BaseDomainEvent
	EventAggregateID uuid.UUID `json:"event_id"`
	ReviewID         uuid.UUID `json:"review_id"`
	Rating           int       `json:"rating"`
}

// NewReviewAddedEvent creates a new ReviewAddedEvent
func NewReviewAddedEvent(eventID uuid.UUID, review *Review) *ReviewAddedEvent {
	return &ReviewAddedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeReviewAdded, AggregateTypeEvent, eventID),
		EventAggregateID: eventID,
		ReviewID:         review.ID,
		Rating:           review.Rating,
	}
}
