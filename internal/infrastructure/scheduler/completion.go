package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/localloop/backend/internal/domain/catalog"
	"github.com/localloop/backend/internal/domain/shared"
)

// CompletionExecutor marks active events whose date has passed as completed.
// Events are completed one by one so a single bad row cannot block the sweep.
type CompletionExecutor struct {
	eventRepo catalog.EventRepository
	logger    *zap.Logger
}

// NewCompletionExecutor creates the executor for past-event sweeps
func NewCompletionExecutor(eventRepo catalog.EventRepository, logger *zap.Logger) *CompletionExecutor {
	return &CompletionExecutor{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Execute implements JobExecutor
func (e *CompletionExecutor) Execute(ctx context.Context, job *Job) error {
	if job.Kind != JobKindCompletePastEvents {
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}

	events, err := e.eventRepo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"status": string(catalog.EventStatusActive)},
	})
	if err != nil {
		return fmt.Errorf("load active events: %w", err)
	}

	var completed, failed int
	for i := range events {
		ev := &events[i]
		if ev.Date >= job.Date {
			continue
		}
		if err := ev.Complete(); err != nil {
			failed++
			e.logger.Warn("Could not complete past event",
				zap.String("event_id", ev.ID.String()),
				zap.Error(err))
			continue
		}
		if err := e.eventRepo.Save(ctx, ev); err != nil {
			failed++
			e.logger.Error("Could not save completed event",
				zap.String("event_id", ev.ID.String()),
				zap.Error(err))
			continue
		}
		completed++
	}

	if completed > 0 || failed > 0 {
		e.logger.Info("Past event sweep finished",
			zap.String("cutoff", job.Date),
			zap.Int("completed", completed),
			zap.Int("failed", failed))
	}
	return nil
}

// DailyTriggerConfig holds configuration for the daily sweep trigger
type DailyTriggerConfig struct {
	// Hour and Minute are the local time of day the sweep runs
	Hour   int
	Minute int
	// CheckInterval is how often the trigger checks the clock
	CheckInterval time.Duration
}

// DefaultDailyTriggerConfig runs the sweep shortly after midnight
func DefaultDailyTriggerConfig() DailyTriggerConfig {
	return DailyTriggerConfig{
		Hour:          0,
		Minute:        15,
		CheckInterval: time.Minute,
	}
}

// DailyTrigger submits a past-event sweep job once per day
type DailyTrigger struct {
	config    DailyTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a new daily trigger
func NewDailyTrigger(config DailyTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *DailyTrigger {
	return &DailyTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the trigger loop
func (t *DailyTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Daily sweep trigger started",
		zap.Int("hour", t.config.Hour),
		zap.Int("minute", t.config.Minute),
		zap.Duration("check_interval", t.config.CheckInterval),
	)

	return nil
}

// Stop stops the trigger loop
func (t *DailyTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Daily sweep trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerNow submits a sweep immediately with today as the cutoff
func (t *DailyTrigger) TriggerNow(date string) error {
	return t.scheduler.SubmitJob(NewJob(JobKindCompletePastEvents, date, t.scheduler.config.RetryAttempts))
}

func (t *DailyTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndTrigger()
		}
	}
}

func (t *DailyTrigger) checkAndTrigger() {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	t.mu.Lock()
	alreadyRan := t.lastRunDate == currentDate
	t.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != t.config.Hour || now.Minute() != t.config.Minute {
		return
	}

	t.mu.Lock()
	t.lastRunDate = currentDate
	t.mu.Unlock()

	t.logger.Info("Triggering daily past-event sweep", zap.String("cutoff", currentDate))
	if err := t.TriggerNow(currentDate); err != nil {
		t.logger.Error("Failed to submit sweep job", zap.Error(err))
	}
}
