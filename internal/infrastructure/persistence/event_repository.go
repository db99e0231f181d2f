package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// haversineSQL is the great-circle distance from a fixed origin to the
// event's coordinates, in kilometers. The argument order is origin latitude,
// origin latitude again, origin longitude. least() guards asin against
// floating point drift past 1.0, matching the in-memory formula.
var haversineSQL = fmt.Sprintf(
	"(2 * %v * asin(sqrt(least(1.0, "+
		"power(sin(radians(latitude - ?) / 2), 2) + "+
		"cos(radians(?)) * cos(radians(latitude)) * "+
		"power(sin(radians(longitude - ?) / 2), 2)))))",
	valueobject.EarthRadiusKm,
)

// GormEventRepository implements catalog.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Event, error) {
	var event catalog.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindActive finds active events matching the query. On PostgreSQL the
// whole query runs in SQL, including the distance filter and ordering. On
// other dialects, which lack trigonometric functions, the geographic parts
// are evaluated in memory against the same formula.
func (r *GormEventRepository) FindActive(ctx context.Context, query *catalog.Query) ([]catalog.Event, error) {
	if r.db.Dialector.Name() == "postgres" {
		return r.findActiveSQL(ctx, query)
	}
	return r.findActiveHybrid(ctx, query)
}

func (r *GormEventRepository) findActiveSQL(ctx context.Context, query *catalog.Query) ([]catalog.Event, error) {
	tx := r.db.WithContext(ctx).
		Model(&catalog.Event{}).
		Where("status = ?", catalog.EventStatusActive)

	for _, p := range query.Predicates() {
		switch pred := p.(type) {
		case catalog.CategoryIn:
			if len(pred.Categories) == 0 {
				return []catalog.Event{}, nil
			}
			tx = tx.Where("category IN ?", pred.Categories)
		case catalog.RatingBetween:
			tx = tx.Where("rating BETWEEN ? AND ?", pred.Min, pred.Max)
		case catalog.PriceAtMost:
			tx = tx.Where("price <= ?", pred.Amount)
		case catalog.WithinRadius:
			tx = tx.Where(haversineSQL+" <= ?",
				pred.Center.Latitude(), pred.Center.Latitude(), pred.Center.Longitude(),
				pred.RadiusKm)
		default:
			return nil, fmt.Errorf("unsupported predicate type %T", p)
		}
	}

	if origin := query.DistanceOrigin(); origin != nil {
		tx = tx.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                haversineSQL + " ASC, id ASC",
				Vars:               []interface{}{origin.Latitude(), origin.Latitude(), origin.Longitude()},
				WithoutParentheses: true,
			},
		})
	} else {
		tx = tx.Order("id ASC")
	}

	if limit := query.Limit(); limit > 0 {
		tx = tx.Limit(limit)
	}

	var events []catalog.Event
	if err := tx.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// findActiveHybrid pushes the non-geographic predicates into SQL and
// evaluates radius, ordering and limit in memory.
func (r *GormEventRepository) findActiveHybrid(ctx context.Context, query *catalog.Query) ([]catalog.Event, error) {
	tx := r.db.WithContext(ctx).
		Model(&catalog.Event{}).
		Where("status = ?", catalog.EventStatusActive)

	var geoPredicates []catalog.Predicate
	for _, p := range query.Predicates() {
		switch pred := p.(type) {
		case catalog.CategoryIn:
			if len(pred.Categories) == 0 {
				return []catalog.Event{}, nil
			}
			tx = tx.Where("category IN ?", pred.Categories)
		case catalog.RatingBetween:
			tx = tx.Where("rating BETWEEN ? AND ?", pred.Min, pred.Max)
		case catalog.PriceAtMost:
			tx = tx.Where("price <= ?", pred.Amount)
		default:
			geoPredicates = append(geoPredicates, p)
		}
	}

	var candidates []catalog.Event
	if err := tx.Find(&candidates).Error; err != nil {
		return nil, err
	}

	events := candidates[:0]
	for i := range candidates {
		keep := true
		for _, p := range geoPredicates {
			if !p.Matches(&candidates[i]) {
				keep = false
				break
			}
		}
		if keep {
			events = append(events, candidates[i])
		}
	}

	if origin := query.DistanceOrigin(); origin != nil {
		sort.SliceStable(events, func(i, j int) bool {
			di := origin.DistanceKm(events[i].Location())
			dj := origin.DistanceKm(events[j].Location())
			if di != dj {
				return di < dj
			}
			return bytes.Compare(events[i].ID[:], events[j].ID[:]) < 0
		})
	} else {
		sort.SliceStable(events, func(i, j int) bool {
			return bytes.Compare(events[i].ID[:], events[j].ID[:]) < 0
		})
	}

	if limit := query.Limit(); limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

// FindAll finds events matching the filter, featured events first
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Event, error) {
	var events []catalog.Event
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Event{}), filter)

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByOrganizer finds all events listed by an organizer
func (r *GormEventRepository) FindByOrganizer(ctx context.Context, organizerID uuid.UUID, filter shared.Filter) ([]catalog.Event, error) {
	var events []catalog.Event
	query := r.applyFilter(
		r.db.WithContext(ctx).
			Model(&catalog.Event{}).
			Where("organizer_id = ?", organizerID),
		filter,
	)

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindUpcomingByOrganizer finds the organizer's next active events by date
func (r *GormEventRepository) FindUpcomingByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]catalog.Event, error) {
	today := time.Now().Format("2006-01-02")

	var events []catalog.Event
	tx := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Where("status = ?", catalog.EventStatusActive).
		Where("date >= ?", today).
		Order("date ASC, time ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Save creates or updates an event
func (r *GormEventRepository) Save(ctx context.Context, event *catalog.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event along with its join records and reviews
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&catalog.Attendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&catalog.Review{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts events matching the filter
func (r *GormEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&catalog.Event{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddAttendee records a join
func (r *GormEventRepository) AddAttendee(ctx context.Context, attendee *catalog.Attendee) error {
	return r.db.WithContext(ctx).Create(attendee).Error
}

// RemoveAttendee deletes the join record for a user on an event
func (r *GormEventRepository) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&catalog.Attendee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindAttendee finds a single join record
func (r *GormEventRepository) FindAttendee(ctx context.Context, eventID, userID uuid.UUID) (*catalog.Attendee, error) {
	var attendee catalog.Attendee
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

// FindAttendees lists the join records for an event, oldest first
func (r *GormEventRepository) FindAttendees(ctx context.Context, eventID uuid.UUID) ([]catalog.Attendee, error) {
	var attendees []catalog.Attendee
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// FindRecentAttendeesByOrganizer lists the latest joins across all of an
// organizer's events
func (r *GormEventRepository) FindRecentAttendeesByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]catalog.Attendee, error) {
	var attendees []catalog.Attendee
	tx := r.db.WithContext(ctx).
		Table("event_attendees").
		Select("event_attendees.*").
		Joins("JOIN events ON events.id = event_attendees.event_id").
		Where("events.organizer_id = ?", organizerID).
		Order("event_attendees.joined_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// AddReview records a review
func (r *GormEventRepository) AddReview(ctx context.Context, review *catalog.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindReviews lists the reviews for an event, newest first
func (r *GormEventRepository) FindReviews(ctx context.Context, eventID uuid.UUID) ([]catalog.Review, error) {
	var reviews []catalog.Review
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingSummary returns the average rating and review count for an event
func (r *GormEventRepository) RatingSummary(ctx context.Context, eventID uuid.UUID) (float64, int, error) {
	var summary struct {
		Average float64
		Total   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&catalog.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("event_id = ?", eventID).
		Scan(&summary).Error; err != nil {
		return 0, 0, err
	}
	return summary.Average, int(summary.Total), nil
}

// applyConditions applies search and field filters without ordering or
// pagination, for counting
func (r *GormEventRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "date":
			query = query.Where("date = ?", value)
		case "min_price":
			query = query.Where("price >= ?", value)
		case "max_price":
			query = query.Where("price <= ?", value)
		case "is_featured":
			query = query.Where("is_featured = ?", value)
		}
	}

	return query
}

// applyFilter applies conditions, ordering and pagination
func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, EventSortFields, "date")
		dir := ValidateSortOrder(filter.OrderDir)
		query = query.Order(fmt.Sprintf("%s %s", field, dir))
	} else {
		// Listing default: featured events surface first, then soonest.
		query = query.Order("is_featured DESC, date ASC, time ASC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
