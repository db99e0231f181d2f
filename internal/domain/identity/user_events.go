package identity

import (
	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered    = "UserRegistered"
	EventTypeOrganizerPromoted = "OrganizerPromoted"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
	}
}

// OrganizerPromotedEvent is published the first time a user lists an event
type OrganizerPromotedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewOrganizerPromotedEvent creates a new OrganizerPromotedEvent
func NewOrganizerPromotedEvent(user *User) *OrganizerPromotedEvent {
	return &OrganizerPromotedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizerPromoted, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
	}
}
