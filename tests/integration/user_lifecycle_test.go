package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/preference"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/infrastructure/persistence"
)

func TestUserDelete_CascadesToPreferences(t *testing.T) {
	tdb := NewSharedTestDB(t)
	t.Cleanup(func() { tdb.CleanTables() })

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	prefRepo := persistence.NewGormPreferenceRepository(tdb.DB)

	user := seedUser(t, userRepo, "karma")
	require.NoError(t, prefRepo.Save(ctx, preference.NewDefaultPreference(user.ID)))

	_, err := prefRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	_, err = userRepo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = prefRepo.FindByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUserDelete_CascadesToJoinRecordsAndReviews(t *testing.T) {
	tdb := NewSharedTestDB(t)
	t.Cleanup(func() { tdb.CleanTables() })

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(tdb.DB)
	eventRepo := persistence.NewGormEventRepository(tdb.DB)

	organizer := seedUser(t, userRepo, "tashi")
	attendee := seedUser(t, userRepo, "dolma")
	event := seedEvent(t, eventRepo, organizer, "Ridge Walk", catalog.CategoryHiking, 27.3320, 88.6100, 0)

	join, err := catalog.NewAttendee(event.ID, attendee.ID, attendee.DisplayName(), "", catalog.PaymentStatusFree)
	require.NoError(t, err)
	require.NoError(t, eventRepo.AddAttendee(ctx, join))

	review, err := catalog.NewReview(event.ID, attendee.ID, attendee.DisplayName(), 5, "great walk")
	require.NoError(t, err)
	require.NoError(t, eventRepo.AddReview(ctx, review))

	require.NoError(t, userRepo.Delete(ctx, attendee.ID))

	joins, err := eventRepo.FindAttendees(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, joins)

	reviews, err := eventRepo.FindReviews(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
