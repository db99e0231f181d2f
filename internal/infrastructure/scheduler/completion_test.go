package scheduler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/domain/shared/valueobject"
)

type sweepEventRepo struct {
	catalog.EventRepository
	events []catalog.Event
	saved  []*catalog.Event
}

func (r *sweepEventRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Event, error) {
	return r.events, nil
}

func (r *sweepEventRepo) Save(_ context.Context, event *catalog.Event) error {
	r.saved = append(r.saved, event)
	return nil
}

func sweepEvent(t *testing.T, title, date string) catalog.Event {
	t.Helper()
	coord, err := valueobject.NewCoordinate(27.3289509, 88.6073311)
	require.NoError(t, err)
	event, err := catalog.NewEvent(uuid.New(), title, catalog.CategoryRunning, date, "06:30", coord)
	require.NoError(t, err)
	return *event
}

func TestCompletionExecutor_CompletesPastEvents(t *testing.T) {
	repo := &sweepEventRepo{events: []catalog.Event{
		sweepEvent(t, "Past Run", "2026-08-20"),
		sweepEvent(t, "Today Run", "2026-08-28"),
		sweepEvent(t, "Future Run", "2026-09-14"),
	}}
	executor := NewCompletionExecutor(repo, zap.NewNop())

	job := NewJob(JobKindCompletePastEvents, "2026-08-28", 0)
	require.NoError(t, executor.Execute(t.Context(), job))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Past Run", repo.saved[0].Title)
	assert.Equal(t, catalog.EventStatusCompleted, repo.saved[0].Status)

	// Events on or after the cutoff stay active.
	assert.Equal(t, catalog.EventStatusActive, repo.events[1].Status)
	assert.Equal(t, catalog.EventStatusActive, repo.events[2].Status)
}

func TestCompletionExecutor_RejectsUnknownKind(t *testing.T) {
	executor := NewCompletionExecutor(&sweepEventRepo{}, zap.NewNop())

	err := executor.Execute(t.Context(), NewJob("SOMETHING_ELSE", "2026-08-28", 0))
	assert.ErrorIs(t, err, ErrUnknownJobKind)
}
