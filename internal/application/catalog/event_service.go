package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// EventService handles event listing, lifecycle, joining, and reviews
type EventService struct {
	eventRepo catalog.EventRepository
	userRepo  identity.UserRepository
	publisher shared.EventPublisher
}

// EventServiceOption configures optional EventService collaborators
type EventServiceOption func(*EventService)

// WithEventPublisher makes the service publish aggregate events after a
// successful save
func WithEventPublisher(publisher shared.EventPublisher) EventServiceOption {
	return func(s *EventService) {
		s.publisher = publisher
	}
}

// NewEventService creates a new EventService
func NewEventService(eventRepo catalog.EventRepository, userRepo identity.UserRepository, opts ...EventServiceOption) *EventService {
	s := &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publishEvents flushes pending domain events from an aggregate. Called
// only after the aggregate has been persisted.
func (s *EventService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.publisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// Create lists a new event for the given organizer
func (s *EventService) Create(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	organizer, err := s.userRepo.FindByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	location, err := valueobject.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	event, err := catalog.NewEvent(organizerID, req.Title, catalog.Category(req.Category), req.Date, req.Time, location)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := event.Update(req.Title, req.Description); err != nil {
			return nil, err
		}
	}
	if err := event.SetVenue(req.LocationName, req.LocationAddress); err != nil {
		return nil, err
	}
	if req.DurationMinutes != nil {
		if err := event.SetSchedule(req.Date, req.Time, *req.DurationMinutes); err != nil {
			return nil, err
		}
	}
	if req.MaxCapacity != nil {
		if err := event.SetCapacity(*req.MaxCapacity); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := event.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.AgeRequirement != nil {
		if err := event.SetAgeRequirement(*req.AgeRequirement); err != nil {
			return nil, err
		}
	}
	if len(req.Interests) > 0 {
		event.SetInterests(req.Interests)
	}
	if req.RecurringType != "" {
		if err := event.SetRecurrence(catalog.RecurringType(req.RecurringType)); err != nil {
			return nil, err
		}
	}
	event.FitnessLevel = req.FitnessLevel
	event.BringFriend = req.BringFriend

	event.SetOrganizerProfile(organizer.DisplayName(), organizer.Avatar, organizer.IsVerified, organizer.Rating, organizer.ReviewCount)

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, event)

	organizer.BecomeOrganizer()
	organizer.RecordHostedEvent()
	if err := s.userRepo.Save(ctx, organizer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, organizer)

	response := ToEventResponse(event)
	return &response, nil
}

// GetByID retrieves a single event
func (s *EventService) GetByID(ctx context.Context, eventID uuid.UUID) (*EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	response := ToEventResponse(event)
	return &response, nil
}

// List browses active events with filters and pagination.
// Results come back featured first, then by ascending date.
func (s *EventService) List(ctx context.Context, filter EventListFilter) ([]EventResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  map[string]interface{}{"status": string(catalog.EventStatusActive)},
	}
	if filter.Category != "" {
		if !catalog.IsValidCategory(filter.Category) {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unknown category: "+filter.Category)
		}
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}

	events, err := s.eventRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.eventRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEventResponses(events), total, nil
}

// Update edits an event; only its organizer may do so
func (s *EventService) Update(ctx context.Context, userID, eventID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil {
		title := event.Title
		if req.Title != nil {
			title = *req.Title
		}
		description := event.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := event.Update(title, description); err != nil {
			return nil, err
		}
	}

	if req.Date != nil || req.Time != nil || req.DurationMinutes != nil {
		date := event.Date
		if req.Date != nil {
			date = *req.Date
		}
		timeOfDay := event.Time
		if req.Time != nil {
			timeOfDay = *req.Time
		}
		duration := event.DurationMinutes
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}
		if err := event.SetSchedule(date, timeOfDay, duration); err != nil {
			return nil, err
		}
	}

	if req.LocationName != nil || req.LocationAddress != nil {
		name := event.LocationName
		if req.LocationName != nil {
			name = *req.LocationName
		}
		address := event.LocationAddress
		if req.LocationAddress != nil {
			address = *req.LocationAddress
		}
		if err := event.SetVenue(name, address); err != nil {
			return nil, err
		}
	}

	if req.Latitude != nil || req.Longitude != nil {
		lat := event.Latitude
		if req.Latitude != nil {
			lat = *req.Latitude
		}
		lng := event.Longitude
		if req.Longitude != nil {
			lng = *req.Longitude
		}
		location, err := valueobject.NewCoordinate(lat, lng)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
		event.SetLocation(location)
	}

	if req.MaxCapacity != nil {
		if err := event.SetCapacity(*req.MaxCapacity); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := event.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Interests != nil {
		event.SetInterests(req.Interests)
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, event)

	response := ToEventResponse(event)
	return &response, nil
}

// Cancel cancels an active event; only its organizer may do so
func (s *EventService) Cancel(ctx context.Context, userID, eventID uuid.UUID) (*EventResponse, error) {
	return s.transition(ctx, userID, eventID, (*catalog.Event).Cancel)
}

// Complete marks an active event as held; only its organizer may do so
func (s *EventService) Complete(ctx context.Context, userID, eventID uuid.UUID) (*EventResponse, error) {
	return s.transition(ctx, userID, eventID, (*catalog.Event).Complete)
}

func (s *EventService) transition(ctx context.Context, userID, eventID uuid.UUID, apply func(*catalog.Event) error) (*EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if err := apply(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, event)

	response := ToEventResponse(event)
	return &response, nil
}

// Join registers the user as an attendee, enforcing capacity
func (s *EventService) Join(ctx context.Context, userID, eventID uuid.UUID, req JoinEventRequest) (*AttendeeResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.eventRepo.FindAttendee(ctx, eventID, userID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Already joined this event")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := event.RegisterAttendee(); err != nil {
		return nil, err
	}

	paymentStatus := catalog.PaymentStatus(req.PaymentStatus)
	if paymentStatus == "" {
		if event.IsFree() {
			paymentStatus = catalog.PaymentStatusFree
		} else {
			paymentStatus = catalog.PaymentStatusPending
		}
	}

	attendee, err := catalog.NewAttendee(eventID, userID, user.DisplayName(), user.Phone, paymentStatus)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.AddAttendee(ctx, attendee); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, event)

	response := ToAttendeeResponse(attendee)
	return &response, nil
}

// Leave removes the user's join record and releases their seat
func (s *EventService) Leave(ctx context.Context, userID, eventID uuid.UUID) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	if _, err := s.eventRepo.FindAttendee(ctx, eventID, userID); err != nil {
		return err
	}

	if err := s.eventRepo.RemoveAttendee(ctx, eventID, userID); err != nil {
		return err
	}

	event.ReleaseAttendee()
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return err
	}
	s.publishEvents(ctx, event)
	return nil
}

// Attendees lists the join records for an event
func (s *EventService) Attendees(ctx context.Context, eventID uuid.UUID) ([]AttendeeResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	attendees, err := s.eventRepo.FindAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return ToAttendeeResponses(attendees), nil
}

// AddReview records a review and refreshes the event's rating summary
func (s *EventService) AddReview(ctx context.Context, userID, eventID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review, err := catalog.NewReview(eventID, userID, user.DisplayName(), req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	review.UserAvatar = user.Avatar

	if err := s.eventRepo.AddReview(ctx, review); err != nil {
		return nil, err
	}

	average, count, err := s.eventRepo.RatingSummary(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.SetRatingSummary(average, count); err != nil {
		return nil, err
	}
	event.AddDomainEvent(catalog.NewReviewAddedEvent(eventID, review))
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, event)

	response := ToReviewResponse(review)
	return &response, nil
}

// Reviews lists the reviews on an event, newest first
func (s *EventService) Reviews(ctx context.Context, eventID uuid.UUID) ([]ReviewResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	reviews, err := s.eventRepo.FindReviews(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return ToReviewResponses(reviews), nil
}

func (s *EventService) findOwnedEvent(ctx context.Context, userID, eventID uuid.UUID) (*catalog.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != userID {
		return nil, shared.ErrForbidden
	}
	return event, nil
}
