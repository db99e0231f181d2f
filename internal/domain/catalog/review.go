package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localloop/backend/internal/domain/shared"
)

// Review is a user's rating and comment on an event
type Review struct {
	shared.BaseEntity
	EventID        uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	UserName       string    `gorm:"type:varchar(100);not null"`
	UserAvatar     string    `gorm:"type:varchar(500)"`
	Rating         int       `gorm:"not null"`
	Comment        string    `gorm:"type:text"`
	OrganizerReply string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review after validating the rating range
func NewReview(eventID, userID uuid.UUID, userName string, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Reviewer name cannot be empty")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		UserID:     userID,
		UserName:   userName,
		Rating:     rating,
		Comment:    comment,
	}, nil
}

// Reply records the organizer's response to the review
func (r *Review) Reply(reply string) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return shared.NewDomainError("INVALID_REPLY", "Reply cannot be empty")
	}

	r.OrganizerReply = reply
	r.UpdatedAt = time.Now()

	return nil
}
