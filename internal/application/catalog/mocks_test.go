package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/shared"
)

// MockEventRepository is a mock implementation of catalog.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Event), args.Error(1)
}

func (m *MockEventRepository) FindActive(ctx context.Context, query *catalog.Query) ([]catalog.Event, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Event), args.Error(1)
}

func (m *MockEventRepository) FindByOrganizer(ctx context.Context, organizerID uuid.UUID, filter shared.Filter) ([]catalog.Event, error) {
	args := m.Called(ctx, organizerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Event), args.Error(1)
}

func (m *MockEventRepository) FindUpcomingByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]catalog.Event, error) {
	args := m.Called(ctx, organizerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Event), args.Error(1)
}

func (m *MockEventRepository) Save(ctx context.Context, event *catalog.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) AddAttendee(ctx context.Context, attendee *catalog.Attendee) error {
	args := m.Called(ctx, attendee)
	return args.Error(0)
}

func (m *MockEventRepository) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockEventRepository) FindAttendee(ctx context.Context, eventID, userID uuid.UUID) (*catalog.Attendee, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Attendee), args.Error(1)
}

func (m *MockEventRepository) FindAttendees(ctx context.Context, eventID uuid.UUID) ([]catalog.Attendee, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Attendee), args.Error(1)
}

func (m *MockEventRepository) FindRecentAttendeesByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]catalog.Attendee, error) {
	args := m.Called(ctx, organizerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Attendee), args.Error(1)
}

func (m *MockEventRepository) AddReview(ctx context.Context, review *catalog.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockEventRepository) FindReviews(ctx context.Context, eventID uuid.UUID) ([]catalog.Review, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Review), args.Error(1)
}

func (m *MockEventRepository) RatingSummary(ctx context.Context, eventID uuid.UUID) (float64, int, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
