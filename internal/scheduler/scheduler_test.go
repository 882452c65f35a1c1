package scheduler

import (
	"context"
	"testing"
	"time"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	s, err := New("America/Chicago", func(ctx context.Context, userID int64) {})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	t.Cleanup(func() {
		if err := s.Shutdown(); err != nil {
			t.Errorf("shutdown: %v", err)
		}
	})
	return s
}

func TestScheduleDaily(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.ScheduleDaily(1, 7, 30); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}

	next, ok := s.NextRun(1)
	if !ok {
		t.Fatal("NextRun reported no job")
	}
	if next.Hour() != 7 || next.Minute() != 30 {
		t.Errorf("next run at %02d:%02d, want 07:30", next.Hour(), next.Minute())
	}
}

func TestScheduleDailyReplaces(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.ScheduleDaily(1, 7, 30); err != nil {
		t.Fatalf("first schedule: %v", err)
	}
	if err := s.ScheduleDaily(1, 9, 15); err != nil {
		t.Fatalf("second schedule: %v", err)
	}

	if s.Count() != 1 {
		t.Fatalf("Count = %d after reschedule, want 1", s.Count())
	}

	next, ok := s.NextRun(1)
	if !ok {
		t.Fatal("NextRun reported no job")
	}
	if next.Hour() != 9 || next.Minute() != 15 {
		t.Errorf("next run at %02d:%02d, want the most recently scheduled 09:15", next.Hour(), next.Minute())
	}
}

func TestIndependentUsers(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.ScheduleDaily(1, 7, 30); err != nil {
		t.Fatalf("schedule user 1: %v", err)
	}
	if err := s.ScheduleDaily(2, 8, 0); err != nil {
		t.Fatalf("schedule user 2: %v", err)
	}
	if s.Count() != 2 {
		t.Errorf("Count = %d, want 2", s.Count())
	}

	s.Remove(1)
	if s.Count() != 1 {
		t.Errorf("Count = %d after remove, want 1", s.Count())
	}
	if _, ok := s.NextRun(2); !ok {
		t.Error("user 2 job lost after removing user 1")
	}
}

func TestRemoveAbsentJob(t *testing.T) {
	s := newTestScheduler(t)

	// Must tolerate an already-absent job without error
	s.Remove(42)
	s.Remove(42)
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
}

func TestJobFires(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real minute-boundary fire")
	}

	fired := make(chan int64, 1)
	s, err := New("UTC", func(ctx context.Context, userID int64) {
		select {
		case fired <- userID:
		default:
		}
	})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	defer s.Shutdown()

	// Schedule for the next upcoming minute boundary and wait for the fire.
	next := time.Now().UTC().Add(65 * time.Second)
	if err := s.ScheduleDaily(7, next.Hour(), next.Minute()); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	select {
	case id := <-fired:
		if id != 7 {
			t.Errorf("fired for user %d, want 7", id)
		}
	case <-time.After(2 * time.Minute):
		t.Fatal("job did not fire within the expected window")
	}
}
