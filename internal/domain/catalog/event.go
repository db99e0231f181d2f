package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// RecurringType describes how a recurring event repeats
type RecurringType string

const (
	RecurringWeekly   RecurringType = "weekly"
	RecurringBiweekly RecurringType = "biweekly"
	RecurringMonthly  RecurringType = "monthly"
)

// Event represents a listed marketplace event
// It is the aggregate root for event-related operations
type Event struct {
	shared.BaseAggregateRoot
	Title            string                 `gorm:"type:varchar(200);not null"`
	Description      string                 `gorm:"type:text"`
	Category         Category               `gorm:"type:varchar(50);not null;index"`
	Interests        valueobject.StringList `gorm:"type:text"`
	Date             string                 `gorm:"type:varchar(10);not null;index"` // ISO date, e.g. 2026-09-14
	Time             string                 `gorm:"type:varchar(5);not null"`        // 24h clock, e.g. 18:30
	DurationMinutes  int                    `gorm:"not null;default:60"`
	LocationName     string                 `gorm:"type:varchar(200);not null"`
	LocationAddress  string                 `gorm:"type:varchar(500)"`
	Latitude         float64                `gorm:"not null"`
	Longitude        float64                `gorm:"not null"`
	MaxCapacity      int                    `gorm:"not null;default:0"` // 0 means unlimited
	CurrentAttendees int                    `gorm:"not null;default:0"`
	Price            int64                  `gorm:"not null;default:0"` // whole rupees, 0 = free
	IsRecurring      bool                   `gorm:"not null;default:false"`
	RecurringType    RecurringType          `gorm:"type:varchar(20)"`
	BringFriend      bool                   `gorm:"not null;default:false"`
	AgeRequirement   int                    `gorm:"not null;default:0"`
	FitnessLevel     string                 `gorm:"type:varchar(20)"`
	OrganizerID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	OrganizerName    string                 `gorm:"type:varchar(100)"`
	OrganizerAvatar  string                 `gorm:"type:varchar(500)"`
	OrganizerTrusted bool                   `gorm:"not null;default:false"`
	OrganizerRating  float64                `gorm:"not null;default:0"`
	OrganizerReviews int                    `gorm:"not null;default:0"`
	Rating           float64                `gorm:"not null;default:0;index"`
	ReviewCount      int                    `gorm:"not null;default:0"`
	Status           EventStatus            `gorm:"type:varchar(20);not null;default:'active';index"`
	IsFeatured       bool                   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// NewEvent creates a new active event at the given location
func NewEvent(organizerID uuid.UUID, title string, category Category, date, timeOfDay string, location valueobject.Coordinate) (*Event, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if !IsValidCategory(string(category)) {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown event category: "+string(category))
	}
	if err := validateSchedule(date, timeOfDay); err != nil {
		return nil, err
	}

	event := &Event{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Category:          category,
		Interests:         valueobject.StringList{},
		Date:              date,
		Time:              timeOfDay,
		DurationMinutes:   60,
		Latitude:          location.Latitude(),
		Longitude:         location.Longitude(),
		OrganizerID:       organizerID,
		Status:            EventStatusActive,
	}

	event.AddDomainEvent(NewEventCreatedEvent(event))

	return event, nil
}

// Update updates the event's descriptive information
func (e *Event) Update(title, description string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	e.Title = strings.TrimSpace(title)
	e.Description = description
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventUpdatedEvent(e))

	return nil
}

// SetSchedule sets the event date, start time, and duration
func (e *Event) SetSchedule(date, timeOfDay string, durationMinutes int) error {
	if err := validateSchedule(date, timeOfDay); err != nil {
		return err
	}
	if durationMinutes <= 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}

	e.Date = date
	e.Time = timeOfDay
	e.DurationMinutes = durationMinutes
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventUpdatedEvent(e))

	return nil
}

// SetVenue sets the display name and street address of the venue
func (e *Event) SetVenue(name, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_VENUE", "Venue name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_VENUE", "Venue name cannot exceed 200 characters")
	}

	e.LocationName = name
	e.LocationAddress = address
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetLocation moves the event to a new coordinate
func (e *Event) SetLocation(location valueobject.Coordinate) {
	e.Latitude = location.Latitude()
	e.Longitude = location.Longitude()
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventUpdatedEvent(e))
}

// Location returns the event coordinate
func (e *Event) Location() valueobject.Coordinate {
	c, _ := valueobject.NewCoordinate(e.Latitude, e.Longitude)
	return c
}

// SetCapacity sets the maximum attendee capacity (0 means unlimited)
func (e *Event) SetCapacity(maxCapacity int) error {
	if maxCapacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	if maxCapacity > 0 && maxCapacity < e.CurrentAttendees {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be below current attendee count")
	}

	e.MaxCapacity = maxCapacity
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetPrice sets the ticket price in whole rupees (0 = free)
func (e *Event) SetPrice(price int64) error {
	if price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	e.Price = price
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// PriceMoney returns the ticket price as Money
func (e *Event) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyINRFromInt(e.Price)
}

// IsFree reports whether the event has no ticket price
func (e *Event) IsFree() bool {
	return e.Price == 0
}

// SetAgeRequirement sets the minimum attendee age (0 = no restriction)
func (e *Event) SetAgeRequirement(age int) error {
	if !IsValidAgeRequirement(age) {
		return shared.NewDomainError("INVALID_AGE_REQUIREMENT", "Age requirement must be one of the allowed options")
	}

	e.AgeRequirement = age
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetInterests sets the interest tags shown on the event card
func (e *Event) SetInterests(interests []string) {
	e.Interests = interests
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// SetRecurrence marks the event as recurring with the given cadence
func (e *Event) SetRecurrence(recurringType RecurringType) error {
	switch recurringType {
	case RecurringWeekly, RecurringBiweekly, RecurringMonthly:
	default:
		return shared.NewDomainError("INVALID_RECURRENCE", "Unknown recurring type: "+string(recurringType))
	}

	e.IsRecurring = true
	e.RecurringType = recurringType
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetOrganizerProfile denormalizes the organizer display block onto the event
func (e *Event) SetOrganizerProfile(name, avatar string, trusted bool, rating float64, reviewCount int) {
	e.OrganizerName = name
	e.OrganizerAvatar = avatar
	e.OrganizerTrusted = trusted
	e.OrganizerRating = rating
	e.OrganizerReviews = reviewCount
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// MarkFeatured toggles the featured flag
func (e *Event) MarkFeatured(featured bool) {
	e.IsFeatured = featured
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// IsActive reports whether the event is open for discovery and joining
func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}

// Cancel cancels an active event
func (e *Event) Cancel() error {
	if e.Status != EventStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active events can be cancelled")
	}

	oldStatus := e.Status
	e.Status = EventStatusCancelled
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventStatusChangedEvent(e, oldStatus))

	return nil
}

// Complete marks an active event as held
func (e *Event) Complete() error {
	if e.Status != EventStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active events can be completed")
	}

	oldStatus := e.Status
	e.Status = EventStatusCompleted
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventStatusChangedEvent(e, oldStatus))

	return nil
}

// HasCapacity reports whether another attendee can join
func (e *Event) HasCapacity() bool {
	return e.MaxCapacity == 0 || e.CurrentAttendees < e.MaxCapacity
}

// RegisterAttendee increments the attendee counter after capacity checks
func (e *Event) RegisterAttendee() error {
	if e.Status != EventStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot join an event that is not active")
	}
	if !e.HasCapacity() {
		return shared.ErrEventFull
	}

	e.CurrentAttendees++
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewAttendeeJoinedEvent(e))

	return nil
}

// ReleaseAttendee decrements the attendee counter, never below zero
func (e *Event) ReleaseAttendee() {
	if e.CurrentAttendees > 0 {
		e.CurrentAttendees--
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewAttendeeLeftEvent(e))
}

// SetRatingSummary replaces the aggregated review rating, rounded to one
// decimal place
func (e *Event) SetRatingSummary(average float64, reviewCount int) error {
	if average < 0 || average > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	if reviewCount < 0 {
		return shared.NewDomainError("INVALID_RATING", "Review count cannot be negative")
	}

	e.Rating = math.Round(average*10) / 10
	e.ReviewCount = reviewCount
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validateSchedule(date, timeOfDay string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return shared.NewDomainError("INVALID_TIME", "Time must be in HH:MM format")
	}
	return nil
}
