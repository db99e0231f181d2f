package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// Dashboard view limits
const (
	upcomingEventsLimit  = 5
	recentAttendeesLimit = 10
)

// organizerShare is the percentage of ticket revenue paid out to organizers
var organizerShare = decimal.NewFromInt(80)

// DashboardService aggregates an organizer's numbers for the dashboard view
type DashboardService struct {
	eventRepo catalog.EventRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(eventRepo catalog.EventRepository) *DashboardService {
	return &DashboardService{eventRepo: eventRepo}
}

// Overview builds the organizer dashboard: totals, projected revenue at the
// organizer share, next events, and latest joins
func (s *DashboardService) Overview(ctx context.Context, organizerID uuid.UUID) (*DashboardResponse, error) {
	events, err := s.eventRepo.FindByOrganizer(ctx, organizerID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	totalAttendees := 0
	ratingSum := 0.0
	ratedEvents := 0
	totalRevenue := valueobject.ZeroINR()
	revenueByEvent := make([]EventRevenueResponse, 0, len(events))

	for i := range events {
		event := &events[i]
		totalAttendees += event.CurrentAttendees
		if event.ReviewCount > 0 {
			ratingSum += event.Rating
			ratedEvents++
		}

		revenue := EventRevenue(event)
		totalRevenue = totalRevenue.MustAdd(revenue)
		revenueByEvent = append(revenueByEvent, EventRevenueResponse{
			EventID:   event.ID,
			Title:     event.Title,
			Attendees: event.CurrentAttendees,
			Revenue:   revenue.Amount().StringFixed(2),
		})
	}

	averageRating := 0.0
	if ratedEvents > 0 {
		averageRating = ratingSum / float64(ratedEvents)
	}

	upcoming, err := s.eventRepo.FindUpcomingByOrganizer(ctx, organizerID, upcomingEventsLimit)
	if err != nil {
		return nil, err
	}

	recent, err := s.eventRepo.FindRecentAttendeesByOrganizer(ctx, organizerID, recentAttendeesLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalEvents:     len(events),
		TotalAttendees:  totalAttendees,
		AverageRating:   averageRating,
		TotalRevenue:    totalRevenue.Amount().StringFixed(2),
		UpcomingEvents:  ToEventResponses(upcoming),
		RecentAttendees: ToAttendeeResponses(recent),
		RevenueByEvent:  revenueByEvent,
	}, nil
}

// RecentAttendees lists the latest joins across the organizer's events
func (s *DashboardService) RecentAttendees(ctx context.Context, organizerID uuid.UUID, limit int) ([]AttendeeResponse, error) {
	if limit <= 0 {
		limit = recentAttendeesLimit
	}

	attendees, err := s.eventRepo.FindRecentAttendeesByOrganizer(ctx, organizerID, limit)
	if err != nil {
		return nil, err
	}

	return ToAttendeeResponses(attendees), nil
}

// EventRevenue computes the organizer payout for one event: attendee count
// times ticket price at the organizer share
func EventRevenue(event *catalog.Event) valueobject.Money {
	gross := event.PriceMoney().MultiplyByInt(int64(event.CurrentAttendees))
	return gross.CalculatePercentage(organizerShare)
}
