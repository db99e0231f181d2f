package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/shared"
)

// ActivityLogHandler writes an activity line for the noteworthy domain
// events: registrations, organizer promotions and event lifecycle changes.
// It is the default subscriber wired up at startup.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates an activity log subscriber.
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger.Named("activity")}
}

// EventTypes lists the events this handler subscribes to.
func (h *ActivityLogHandler) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		identity.EventTypeOrganizerPromoted,
		catalog.EventTypeEventCreated,
		catalog.EventTypeEventStatusChanged,
		catalog.EventTypeAttendeeJoined,
		catalog.EventTypeAttendeeLeft,
	}
}

// Handle logs the event with type-specific fields where available.
func (h *ActivityLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", evt.EventType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	}

	switch e := evt.(type) {
	case *identity.UserRegisteredEvent:
		fields = append(fields, zap.String("username", e.Username))
	case *identity.OrganizerPromotedEvent:
		fields = append(fields, zap.String("username", e.Username))
	case *catalog.EventCreatedEvent:
		fields = append(fields,
			zap.String("title", e.Title),
			zap.String("category", string(e.Category)),
			zap.String("organizer_id", e.OrganizerID.String()),
		)
	case *catalog.EventStatusChangedEvent:
		fields = append(fields,
			zap.String("old_status", string(e.OldStatus)),
			zap.String("new_status", string(e.NewStatus)),
		)
	}

	h.logger.Info("domain activity", fields...)
	return nil
}

var _ shared.EventHandler = (*ActivityLogHandler)(nil)
