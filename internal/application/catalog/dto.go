package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/catalog"
)

// CreateEventRequest represents a request to list a new event
type CreateEventRequest struct {
	Title           string   `json:"title" binding:"required,min=1,max=200"`
	Description     string   `json:"description" binding:"max=5000"`
	Category        string   `json:"category" binding:"required,event_category"`
	Interests       []string `json:"interests"`
	Date            string   `json:"date" binding:"required"`
	Time            string   `json:"time" binding:"required"`
	DurationMinutes *int     `json:"duration_minutes"`
	LocationName    string   `json:"location_name" binding:"required,min=1,max=200"`
	LocationAddress string   `json:"location_address" binding:"max=500"`
	Latitude        float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude       float64  `json:"longitude" binding:"min=-180,max=180"`
	MaxCapacity     *int     `json:"max_capacity"`
	Price           *int64   `json:"price"`
	AgeRequirement  *int     `json:"age_requirement"`
	FitnessLevel    string   `json:"fitness_level" binding:"max=20"`
	RecurringType   string   `json:"recurring_type"`
	BringFriend     bool     `json:"bring_friend"`
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Title           *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string  `json:"description" binding:"omitempty,max=5000"`
	Interests       []string `json:"interests"`
	Date            *string  `json:"date"`
	Time            *string  `json:"time"`
	DurationMinutes *int     `json:"duration_minutes"`
	LocationName    *string  `json:"location_name" binding:"omitempty,min=1,max=200"`
	LocationAddress *string  `json:"location_address" binding:"omitempty,max=500"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	MaxCapacity     *int     `json:"max_capacity"`
	Price           *int64   `json:"price"`
}

// EventListFilter represents listing filters for browsing events
type EventListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string `form:"category"`
	Search   string `form:"search"`
	MinPrice *int64 `form:"min_price"`
	MaxPrice *int64 `form:"max_price"`
}

// JoinEventRequest represents a request to join an event
type JoinEventRequest struct {
	PaymentStatus string `json:"payment_status" binding:"omitempty,oneof=free pending completed"`
}

// CreateReviewRequest represents a request to review an event
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// OrganizerResponse is the denormalized organizer block on an event
type OrganizerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar,omitempty"`
	Verified    bool      `json:"verified"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Category         string            `json:"category"`
	Interests        []string          `json:"interests"`
	Date             string            `json:"date"`
	Time             string            `json:"time"`
	DurationMinutes  int               `json:"duration_minutes"`
	LocationName     string            `json:"location_name"`
	LocationAddress  string            `json:"location_address,omitempty"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	MaxCapacity      int               `json:"max_capacity"`
	CurrentAttendees int               `json:"current_attendees"`
	Price            int64             `json:"price"`
	IsFree           bool              `json:"is_free"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurringType    string            `json:"recurring_type,omitempty"`
	BringFriend      bool              `json:"bring_friend"`
	AgeRequirement   int               `json:"age_requirement"`
	FitnessLevel     string            `json:"fitness_level,omitempty"`
	Organizer        OrganizerResponse `json:"organizer"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"review_count"`
	Status           string            `json:"status"`
	IsFeatured       bool              `json:"is_featured"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// AttendeeResponse represents a join record in API responses
type AttendeeResponse struct {
	ID            uuid.UUID `json:"id"`
	EventID       uuid.UUID `json:"event_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserPhone     string    `json:"user_phone,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	JoinedAt      time.Time `json:"joined_at"`
	CheckedIn     bool      `json:"checked_in"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID             uuid.UUID `json:"id"`
	EventID        uuid.UUID `json:"event_id"`
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserAvatar     string    `json:"user_avatar,omitempty"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	OrganizerReply string    `json:"organizer_reply,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// EventRevenueResponse is the per-event revenue line on the dashboard
type EventRevenueResponse struct {
	EventID   uuid.UUID `json:"event_id"`
	Title     string    `json:"title"`
	Attendees int       `json:"attendees"`
	Revenue   string    `json:"revenue"`
}

// DashboardResponse aggregates an organizer's numbers
type DashboardResponse struct {
	TotalEvents     int                    `json:"total_events"`
	TotalAttendees  int                    `json:"total_attendees"`
	AverageRating   float64                `json:"average_rating"`
	TotalRevenue    string                 `json:"total_revenue"`
	UpcomingEvents  []EventResponse        `json:"upcoming_events"`
	RecentAttendees []AttendeeResponse     `json:"recent_attendees"`
	RevenueByEvent  []EventRevenueResponse `json:"revenue_by_event"`
}

// ToEventResponse converts a domain event to its API representation
func ToEventResponse(event *catalog.Event) EventResponse {
	return EventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Description:      event.Description,
		Category:         string(event.Category),
		Interests:        event.Interests,
		Date:             event.Date,
		Time:             event.Time,
		DurationMinutes:  event.DurationMinutes,
		LocationName:     event.LocationName,
		LocationAddress:  event.LocationAddress,
		Latitude:         event.Latitude,
		Longitude:        event.Longitude,
		MaxCapacity:      event.MaxCapacity,
		CurrentAttendees: event.CurrentAttendees,
		Price:            event.Price,
		IsFree:           event.IsFree(),
		IsRecurring:      event.IsRecurring,
		RecurringType:    string(event.RecurringType),
		BringFriend:      event.BringFriend,
		AgeRequirement:   event.AgeRequirement,
		FitnessLevel:     event.FitnessLevel,
		Organizer: OrganizerResponse{
			ID:          event.OrganizerID,
			Name:        event.OrganizerName,
			Avatar:      event.OrganizerAvatar,
			Verified:    event.OrganizerTrusted,
			Rating:      event.OrganizerRating,
			ReviewCount: event.OrganizerReviews,
		},
		Rating:      event.Rating,
		ReviewCount: event.ReviewCount,
		Status:      string(event.Status),
		IsFeatured:  event.IsFeatured,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// ToEventResponses converts a slice of domain events
func ToEventResponses(events []catalog.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, ToEventResponse(&events[i]))
	}
	return responses
}

// ToAttendeeResponse converts a domain attendee to its API representation
func ToAttendeeResponse(attendee *catalog.Attendee) AttendeeResponse {
	return AttendeeResponse{
		ID:            attendee.ID,
		EventID:       attendee.EventID,
		UserID:        attendee.UserID,
		UserName:      attendee.UserName,
		UserPhone:     attendee.UserPhone,
		PaymentStatus: string(attendee.PaymentStatus),
		JoinedAt:      attendee.JoinedAt,
		CheckedIn:     attendee.CheckedIn,
	}
}

// ToAttendeeResponses converts a slice of domain attendees
func ToAttendeeResponses(attendees []catalog.Attendee) []AttendeeResponse {
	responses := make([]AttendeeResponse, 0, len(attendees))
	for i := range attendees {
		responses = append(responses, ToAttendeeResponse(&attendees[i]))
	}
	return responses
}

// ToReviewResponse converts a domain review to its API representation
func ToReviewResponse(review *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:             review.ID,
		EventID:        review.EventID,
		UserID:         review.UserID,
		UserName:       review.UserName,
		UserAvatar:     review.UserAvatar,
		Rating:         review.Rating,
		Comment:        review.Comment,
		OrganizerReply: review.OrganizerReply,
		CreatedAt:      review.CreatedAt,
	}
}

// ToReviewResponses converts a slice of domain reviews
func ToReviewResponses(reviews []catalog.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses
}
