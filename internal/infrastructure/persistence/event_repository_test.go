package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

// newMockEventRepository creates a GormEventRepository against a mocked
// PostgreSQL connection, used to assert the generated SQL.
func newMockEventRepository(t *testing.T) (*GormEventRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormEventRepository(gormDB), mock, mockDB
}

// newSQLiteEventRepository creates a repository on an in-memory SQLite
// database, exercising the hybrid geographic path.
func newSQLiteEventRepository(t *testing.T) *GormEventRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Event{}, &catalog.Attendee{}, &catalog.Review{}))

	return NewGormEventRepository(db)
}

func mustCoordinate(t *testing.T, lat, lng float64) valueobject.Coordinate {
	t.Helper()
	c, err := valueobject.NewCoordinate(lat, lng)
	require.NoError(t, err)
	return c
}

// storeEvent persists an active event offset roughly offsetKm east of the
// given center.
func storeEvent(t *testing.T, repo *GormEventRepository, center valueobject.Coordinate, offsetKm float64, category catalog.Category, rating float64, price int64) *catalog.Event {
	t.Helper()

	loc := mustCoordinate(t, center.Latitude(), center.Longitude()+offsetKm*0.010168)
	event, err := catalog.NewEvent(uuid.New(), fmt.Sprintf("Event at %.1f km", offsetKm), category, "2026-09-14", "18:30", loc)
	require.NoError(t, err)
	require.NoError(t, event.SetVenue("Community Hall", ""))
	require.NoError(t, event.SetPrice(price))
	if rating > 0 {
		require.NoError(t, event.SetRatingSummary(rating, 10))
	}
	require.NoError(t, repo.Save(context.Background(), event))
	return event
}

func TestGormEventRepository_FindActive_PostgresSQL(t *testing.T) {
	center := 27.3289509
	centerLng := 88.6073311

	t.Run("radius filter and distance ordering run in SQL", func(t *testing.T) {
		repo, mock, mockDB := newMockEventRepository(t)
		defer mockDB.Close()

		origin, err := valueobject.NewCoordinate(center, centerLng)
		require.NoError(t, err)

		query := catalog.NewQuery().
			Where(catalog.RatingBetween{Min: 0, Max: 5}).
			Where(catalog.PriceAtMost{Amount: 10000}).
			Where(catalog.WithinRadius{Center: origin, RadiusKm: 10}).
			OrderByDistanceFrom(origin).
			WithLimit(50)

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE status = \$1 AND \(rating BETWEEN \$2 AND \$3\) AND price <= \$4 AND \(2 \* 6371\.0088 \* asin\(sqrt\(least\(1\.0, .+\)\)\)\) <= \$8 ORDER BY \(2 \* 6371\.0088 \* asin\(.+\)\) ASC, id ASC LIMIT \$\d+`).
			WithArgs(
				string(catalog.EventStatusActive),
				float64(0), float64(5),
				int64(10000),
				center, center, centerLng,
				float64(10),
				center, center, centerLng,
				50,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}))

		events, err := repo.FindActive(context.Background(), query)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("category predicate becomes an IN clause", func(t *testing.T) {
		repo, mock, mockDB := newMockEventRepository(t)
		defer mockDB.Close()

		query := catalog.NewQuery().
			Where(catalog.CategoryIn{Categories: []catalog.Category{catalog.CategoryRunning, catalog.CategoryYoga}})

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE status = \$1 AND category IN \(\$2,\$3\) ORDER BY id ASC`).
			WithArgs(string(catalog.EventStatusActive), string(catalog.CategoryRunning), string(catalog.CategoryYoga)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}))

		_, err := repo.FindActive(context.Background(), query)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty category set short-circuits without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockEventRepository(t)
		defer mockDB.Close()

		query := catalog.NewQuery().Where(catalog.CategoryIn{})

		events, err := repo.FindActive(context.Background(), query)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEventRepository_FindActive_Hybrid(t *testing.T) {
	ctx := context.Background()
	center := mustCoordinate(t, 27.3289509, 88.6073311)

	t.Run("orders by distance and caps results", func(t *testing.T) {
		repo := newSQLiteEventRepository(t)

		far := storeEvent(t, repo, center, 8, catalog.CategoryRunning, 4, 100)
		near := storeEvent(t, repo, center, 1, catalog.CategoryRunning, 4, 100)
		mid := storeEvent(t, repo, center, 4, catalog.CategoryRunning, 4, 100)

		query := catalog.NewQuery().
			Where(catalog.WithinRadius{Center: center, RadiusKm: 10}).
			OrderByDistanceFrom(center).
			WithLimit(2)

		events, err := repo.FindActive(ctx, query)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, near.ID, events[0].ID)
		assert.Equal(t, mid.ID, events[1].ID)
		_ = far
	})

	t.Run("radius boundary is inclusive and beyond is excluded", func(t *testing.T) {
		repo := newSQLiteEventRepository(t)

		inside := storeEvent(t, repo, center, 9.9, catalog.CategoryHiking, 0, 0)
		outside := storeEvent(t, repo, center, 12, catalog.CategoryHiking, 0, 0)

		query := catalog.NewQuery().
			Where(catalog.WithinRadius{Center: center, RadiusKm: 10}).
			OrderByDistanceFrom(center)

		events, err := repo.FindActive(ctx, query)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, inside.ID, events[0].ID)
		_ = outside
	})

	t.Run("non-geo predicates run in SQL", func(t *testing.T) {
		repo := newSQLiteEventRepository(t)

		cheap := storeEvent(t, repo, center, 1, catalog.CategoryYoga, 4.5, 200)
		storeEvent(t, repo, center, 1, catalog.CategoryYoga, 4.5, 900)       // too expensive
		storeEvent(t, repo, center, 1, catalog.CategoryRunning, 4.5, 200)   // wrong category
		storeEvent(t, repo, center, 1, catalog.CategoryYoga, 2, 200)        // rating below band

		query := catalog.NewQuery().
			Where(catalog.CategoryIn{Categories: []catalog.Category{catalog.CategoryYoga}}).
			Where(catalog.RatingBetween{Min: 4, Max: 5}).
			Where(catalog.PriceAtMost{Amount: 500}).
			OrderByDistanceFrom(center)

		events, err := repo.FindActive(ctx, query)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, cheap.ID, events[0].ID)
	})

	t.Run("excludes cancelled and completed events", func(t *testing.T) {
		repo := newSQLiteEventRepository(t)

		active := storeEvent(t, repo, center, 1, catalog.CategorySocial, 0, 0)
		cancelled := storeEvent(t, repo, center, 1, catalog.CategorySocial, 0, 0)
		require.NoError(t, cancelled.Cancel())
		require.NoError(t, repo.Save(ctx, cancelled))

		events, err := repo.FindActive(ctx, catalog.NewQuery().OrderByDistanceFrom(center))
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, active.ID, events[0].ID)
	})
}

func TestGormEventRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	center := mustCoordinate(t, 27.3289509, 88.6073311)
	repo := newSQLiteEventRepository(t)

	regular := storeEvent(t, repo, center, 1, catalog.CategoryRunning, 0, 0)
	featured := storeEvent(t, repo, center, 2, catalog.CategoryYoga, 0, 0)
	featured.MarkFeatured(true)
	require.NoError(t, repo.Save(ctx, featured))

	t.Run("featured events come first", func(t *testing.T) {
		filter := shared.DefaultFilter()
		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, featured.ID, events[0].ID)
		assert.Equal(t, regular.ID, events[1].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["category"] = string(catalog.CategoryYoga)

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, featured.ID, events[0].ID)
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "EVENT AT 1.0"

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, regular.ID, events[0].ID)
	})

	t.Run("count matches filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormEventRepository_Attendees(t *testing.T) {
	ctx := context.Background()
	center := mustCoordinate(t, 27.3289509, 88.6073311)
	repo := newSQLiteEventRepository(t)

	event := storeEvent(t, repo, center, 1, catalog.CategoryRunning, 0, 0)
	userID := uuid.New()

	attendee, err := catalog.NewAttendee(event.ID, userID, "Asha Rai", "", catalog.PaymentStatusFree)
	require.NoError(t, err)
	require.NoError(t, repo.AddAttendee(ctx, attendee))

	t.Run("find join record", func(t *testing.T) {
		found, err := repo.FindAttendee(ctx, event.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rai", found.UserName)
	})

	t.Run("missing join record maps to not found", func(t *testing.T) {
		_, err := repo.FindAttendee(ctx, event.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("recent attendees across organizer events", func(t *testing.T) {
		attendees, err := repo.FindRecentAttendeesByOrganizer(ctx, event.OrganizerID, 10)
		require.NoError(t, err)
		require.Len(t, attendees, 1)
		assert.Equal(t, userID, attendees[0].UserID)
	})

	t.Run("remove join record", func(t *testing.T) {
		require.NoError(t, repo.RemoveAttendee(ctx, event.ID, userID))
		assert.ErrorIs(t, repo.RemoveAttendee(ctx, event.ID, userID), shared.ErrNotFound)
	})
}

func TestGormEventRepository_Reviews(t *testing.T) {
	ctx := context.Background()
	center := mustCoordinate(t, 27.3289509, 88.6073311)
	repo := newSQLiteEventRepository(t)

	event := storeEvent(t, repo, center, 1, catalog.CategoryRunning, 0, 0)

	for _, rating := range []int{5, 4} {
		review, err := catalog.NewReview(event.ID, uuid.New(), "Reviewer", rating, "nice")
		require.NoError(t, err)
		require.NoError(t, repo.AddReview(ctx, review))
	}

	reviews, err := repo.FindReviews(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	average, count, err := repo.RatingSummary(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 4.5, average, 0.0001)
}

func TestGormEventRepository_FindByID_NotFound(t *testing.T) {
	repo := newSQLiteEventRepository(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEventRepository_Delete(t *testing.T) {
	ctx := context.Background()
	center := mustCoordinate(t, 27.3289509, 88.6073311)
	repo := newSQLiteEventRepository(t)

	event := storeEvent(t, repo, center, 1, catalog.CategoryRunning, 0, 0)
	attendee, err := catalog.NewAttendee(event.ID, uuid.New(), "Asha", "", catalog.PaymentStatusFree)
	require.NoError(t, err)
	require.NoError(t, repo.AddAttendee(ctx, attendee))

	require.NoError(t, repo.Delete(ctx, event.ID))

	_, err = repo.FindByID(ctx, event.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	attendees, err := repo.FindAttendees(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, attendees)

	assert.ErrorIs(t, repo.Delete(ctx, event.ID), shared.ErrNotFound)
}
