package worker

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

// ResetWorker runs the daily task-counter reset. Profiles whose last reset
// predates the start of the current day get daily_tasks_completed zeroed.
type ResetWorker struct {
	profileRepo domain.ProfileRepository
	scheduler   gocron.Scheduler
	interval    time.Duration
}

// NewResetWorker creates the reset worker. The interval controls how often
// stale profiles are swept; the reset boundary itself is always midnight.
func NewResetWorker(profileRepo domain.ProfileRepository, interval time.Duration) (*ResetWorker, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	if interval <= 0 {
		interval = time.Hour
	}

	return &ResetWorker{
		profileRepo: profileRepo,
		scheduler:   scheduler,
		interval:    interval,
	}, nil
}

// Start registers the sweep job and launches the scheduler.
func (w *ResetWorker) Start() error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.sweep),
	)
	if err != nil {
		return fmt.Errorf("failed to register reset job: %w", err)
	}

	w.scheduler.Start()
	logger.Info("Daily reset worker started",
		logger.String("interval", w.interval.String()),
	)
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (w *ResetWorker) Stop() error {
	return w.scheduler.Shutdown()
}

func (w *ResetWorker) sweep() {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	reset, err := w.profileRepo.ResetDailyCounters(midnight)
	if err != nil {
		logger.Error("Daily counter reset failed", logger.ErrorField(err))
		return
	}
	if reset > 0 {
		logger.Info("Daily task counters reset",
			logger.Int64("profiles", reset),
		)
	}
}
