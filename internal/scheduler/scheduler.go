package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Runner is the notification pipeline invoked when a user's job fires.
type Runner func(ctx context.Context, userID int64)

// Scheduler maintains one recurring daily job per registered user, firing
// at the user's preferred local time in a fixed named timezone. Jobs are
// keyed by user id: scheduling the same user again replaces the prior job.
type Scheduler struct {
	inner gocron.Scheduler
	loc   *time.Location
	run   Runner

	mu   sync.Mutex
	jobs map[int64]gocron.Job
}

func New(timezone string, run Runner) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", timezone, err)
	}

	inner, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		inner: inner,
		loc:   loc,
		run:   run,
		jobs:  make(map[int64]gocron.Job),
	}, nil
}

// Start launches the scheduler's background goroutines.
func (s *Scheduler) Start() {
	s.inner.Start()
	slog.Info("scheduler started", "timezone", s.loc.String())
}

// Shutdown stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Shutdown() error {
	return s.inner.Shutdown()
}

// ScheduleDaily installs or replaces the user's daily job at the given
// local hour and minute. Replacing is idempotent: at most one job per user
// exists at any time. Singleton mode skips, not queues, a fire that
// overlaps a still-running previous run of the same job.
func (s *Scheduler) ScheduleDaily(userID int64, hour, minute int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.jobs[userID]; ok {
		err := s.inner.RemoveJob(prev.ID())
		if err != nil {
			slog.Warn("failed to remove prior job before reschedule", "user_id", userID, "error", err)
		}
		delete(s.jobs, userID)
	}

	job, err := s.inner.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(func() {
			s.run(context.Background(), userID)
		}),
		gocron.WithName(fmt.Sprintf("notify-user-%d", userID)),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job for user %d: %w", userID, err)
	}

	s.jobs[userID] = job
	slog.Info("daily notification scheduled", "user_id", userID, "hour", hour, "minute", minute)
	return nil
}

// Remove deletes the user's job. An already-absent job is not an error.
func (s *Scheduler) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[userID]
	if !ok {
		return
	}

	err := s.inner.RemoveJob(job.ID())
	if err != nil {
		slog.Warn("failed to remove job", "user_id", userID, "error", err)
	}
	delete(s.jobs, userID)
	slog.Info("daily notification removed", "user_id", userID)
}

// NextRun reports when the user's job fires next. The second return is
// false when the user has no scheduled job.
func (s *Scheduler) NextRun(userID int64) (time.Time, bool) {
	s.mu.Lock()
	job, ok := s.jobs[userID]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	next, err := job.NextRun()
	if err != nil {
		return time.Time{}, false
	}
	return next.In(s.loc), true
}

// Count reports the number of active jobs.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
