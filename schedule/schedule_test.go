package schedule

import (
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"
)

func newTestScheduler() *Scheduler {
	return New(log.New(io.Discard, "", 0))
}

func TestEveryRejectsBadSpec(t *testing.T) {
	s := newTestScheduler()
	if err := s.Every("autosave", "every five minutes", func() {}); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
	if s.Jobs() != 0 {
		t.Fatalf("expected no jobs registered, got %d", s.Jobs())
	}
}

func TestEveryReplacesNamedJob(t *testing.T) {
	s := newTestScheduler()
	if err := s.Every("clock", "@every 1m", func() {}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := s.Every("clock", "@every 2m", func() {}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if err := s.Every("autosave", "@every 5m", func() {}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Fatalf("expected 2 cron entries, got %d", got)
	}

	s.Remove("clock")
	s.Remove("missing")
	if s.Jobs() != 1 || len(s.cron.Entries()) != 1 {
		t.Fatalf("expected one job after remove, got %d", s.Jobs())
	}
}

func TestScheduledJobRuns(t *testing.T) {
	s := newTestScheduler()
	var runs atomic.Int32
	if err := s.Every("tick", "@every 1s", func() { runs.Add(1) }); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatalf("expected job to run at least once")
	}
}
