package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/shared"
)

// PaymentStatus mirrors the join record's payment state. Payment collection
// itself happens outside this system; the value is carried through as-is.
type PaymentStatus string

const (
	PaymentStatusFree      PaymentStatus = "free"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Attendee is a join record linking a user to an event
type Attendee struct {
	shared.BaseEntity
	EventID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_attendee_event_user,priority:1"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_attendee_event_user,priority:2"`
	UserName      string        `gorm:"type:varchar(100);not null"`
	UserPhone     string        `gorm:"type:varchar(20)"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'free'"`
	JoinedAt      time.Time     `gorm:"not null"`
	CheckedIn     bool          `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Attendee) TableName() string {
	return "event_attendees"
}

// NewAttendee creates a join record for a user on an event
func NewAttendee(eventID, userID uuid.UUID, userName, userPhone string, paymentStatus PaymentStatus) (*Attendee, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, shared.NewDomainError("INVALID_ATTENDEE", "Attendee name cannot be empty")
	}
	if paymentStatus == "" {
		paymentStatus = PaymentStatusFree
	}

	return &Attendee{
		BaseEntity:    shared.NewBaseEntity(),
		EventID:       eventID,
		UserID:        userID,
		UserName:      userName,
		UserPhone:     userPhone,
		PaymentStatus: paymentStatus,
		JoinedAt:      time.Now(),
	}, nil
}

// CheckIn marks the attendee as arrived
func (a *Attendee) CheckIn() {
	a.CheckedIn = true
	a.UpdatedAt = time.Now()
}
