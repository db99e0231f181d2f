package catalog

import (
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// Predicate is one filtering constraint on active events. Predicates are
// combined with AND; storage adapters translate them to their own query
// language, and Matches gives the reference in-memory evaluation that
// non-spatial dialects and tests rely on.
type Predicate interface {
	// Matches reports whether the event satisfies the constraint
	Matches(event *Event) bool
}

// CategoryIn keeps events whose category is in the given set.
// An empty set matches nothing; callers model "no category restriction"
// by omitting the predicate entirely.
type CategoryIn struct {
	Categories []Category
}

// Matches implements Predicate
func (p CategoryIn) Matches(event *Event) bool {
	for _, c := range p.Categories {
		if event.Category == c {
			return true
		}
	}
	return false
}

// RatingBetween keeps events whose rating lies in [Min, Max], inclusive on
// both ends. Unrated events carry rating 0 and are matched by Min 0.
type RatingBetween struct {
	Min float64
	Max float64
}

// Matches implements Predicate
func (p RatingBetween) Matches(event *Event) bool {
	return event.Rating >= p.Min && event.Rating <= p.Max
}

// PriceAtMost keeps events priced at or below the given rupee amount.
// Free events (price 0) always match.
type PriceAtMost struct {
	Amount int64
}

// Matches implements Predicate
func (p PriceAtMost) Matches(event *Event) bool {
	return event.Price <= p.Amount
}

// WithinRadius keeps events whose great-circle distance from Center is at
// most RadiusKm (inclusive boundary).
type WithinRadius struct {
	Center   valueobject.Coordinate
	RadiusKm float64
}

// Matches implements Predicate
func (p WithinRadius) Matches(event *Event) bool {
	return p.Center.WithinKm(event.Location(), p.RadiusKm)
}

// Query is an AND-composed set of predicates with optional distance
// ordering and a result limit. Build with NewQuery and the chainable
// methods; zero limit means no cap.
type Query struct {
	predicates     []Predicate
	distanceOrigin *valueobject.Coordinate
	limit          int
}

// NewQuery creates an empty query
func NewQuery() *Query {
	return &Query{}
}

// Where adds a predicate to the conjunction
func (q *Query) Where(p Predicate) *Query {
	q.predicates = append(q.predicates, p)
	return q
}

// OrderByDistanceFrom orders results by ascending great-circle distance from
// the origin, with ascending event id breaking exact ties
func (q *Query) OrderByDistanceFrom(origin valueobject.Coordinate) *Query {
	q.distanceOrigin = &origin
	return q
}

// WithLimit caps the number of results
func (q *Query) WithLimit(limit int) *Query {
	q.limit = limit
	return q
}

// Predicates returns the predicate conjunction
func (q *Query) Predicates() []Predicate {
	return q.predicates
}

// DistanceOrigin returns the ordering origin, or nil when unordered
func (q *Query) DistanceOrigin() *valueobject.Coordinate {
	return q.distanceOrigin
}

// Limit returns the result cap (0 = uncapped)
func (q *Query) Limit() int {
	return q.limit
}

// Matches reports whether the event satisfies every predicate
func (q *Query) Matches(event *Event) bool {
	for _, p := range q.predicates {
		if !p.Matches(event) {
			return false
		}
	}
	return true
}
