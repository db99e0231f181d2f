package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/localloop/backend/internal/domain/identity"
	"github.com/localloop/backend/internal/domain/shared"
)

func newSQLiteUserRepository(t *testing.T) *GormUserRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}))

	return NewGormUserRepository(db)
}

func storeUser(t *testing.T, repo *GormUserRepository, username string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, "secret4you")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteUserRepository(t)

	user := storeUser(t, repo, "asha")

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", byID.Username)

	// Lookup is case-insensitive since usernames are stored lowercased.
	byName, err := repo.FindByUsername(ctx, "  ASHA ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestGormUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo := newSQLiteUserRepository(t)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_Save_PersistsUpdates(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteUserRepository(t)

	user := storeUser(t, repo, "asha")
	user.BecomeOrganizer()
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsOrganizer)
}

func TestGormUserRepository_FindAllAndCount(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteUserRepository(t)

	organizer := storeUser(t, repo, "asha")
	organizer.BecomeOrganizer()
	require.NoError(t, repo.Save(ctx, organizer))
	storeUser(t, repo, "bikash")

	filter := shared.DefaultFilter()
	filter.Filters["is_organizer"] = true

	users, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "asha", users[0].Username)

	count, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteUserRepository(t)

	user := storeUser(t, repo, "asha")
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
