package focus

import (
	"context"
	"errors"
	"testing"
	"time"
)

func mustStart(t *testing.T, tm *Timer, length time.Duration, taskID int64) string {
	t.Helper()
	id, err := tm.Start(length, taskID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return id
}

func TestTimerCountsDownAndCompletes(t *testing.T) {
	var tm Timer
	id := mustStart(t, &tm, 3*time.Second, 42)

	if tm.Display() != "00:03" || tm.TaskID() != 42 {
		t.Fatalf("unexpected initial state: %s task=%d", tm.Display(), tm.TaskID())
	}
	if res := tm.Tick(id, time.Second); res != Ticked {
		t.Fatalf("expected ticked, got %s", res)
	}
	if res := tm.Tick(id, time.Second); res != Ticked {
		t.Fatalf("expected ticked, got %s", res)
	}
	if res := tm.Tick(id, time.Second); res != Completed {
		t.Fatalf("expected completed, got %s", res)
	}
	if tm.Running() || tm.Display() != "00:00" {
		t.Fatalf("expected stopped at 00:00, running=%v display=%s", tm.Running(), tm.Display())
	}
	if res := tm.Tick(id, time.Second); res != Ignored {
		t.Fatalf("expected tick after completion to be ignored, got %s", res)
	}
}

func TestTimerIgnoresStaleTicks(t *testing.T) {
	var tm Timer
	first := mustStart(t, &tm, time.Minute, 0)
	tm.Stop()
	second := mustStart(t, &tm, time.Minute, 0)

	if first == second {
		t.Fatalf("expected a new session id on restart")
	}
	if res := tm.Tick(first, 30*time.Second); res != Ignored {
		t.Fatalf("expected stale tick ignored, got %s", res)
	}
	if tm.Remaining() != time.Minute {
		t.Fatalf("stale tick changed remaining time: %s", tm.Remaining())
	}
	if res := tm.Tick(second, 30*time.Second); res != Ticked {
		t.Fatalf("expected current tick applied, got %s", res)
	}
	if tm.Display() != "00:30" {
		t.Fatalf("expected 00:30, got %s", tm.Display())
	}
}

func TestTimerStopResetsDisplay(t *testing.T) {
	var tm Timer
	id := mustStart(t, &tm, 25*time.Minute, 7)
	tm.Tick(id, 90*time.Second)
	tm.Stop()

	if tm.Running() || tm.Session() != "" || tm.TaskID() != 0 {
		t.Fatalf("expected stopped timer, got running=%v session=%q task=%d", tm.Running(), tm.Session(), tm.TaskID())
	}
	if tm.Display() != "25:00" {
		t.Fatalf("expected display reset to 25:00, got %s", tm.Display())
	}
}

func TestTimerRejectsNonPositiveLength(t *testing.T) {
	var tm Timer
	if _, err := tm.Start(0, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if tm.Running() {
		t.Fatalf("timer should not run after a rejected start")
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[time.Duration]string{
		0:                            "00:00",
		-time.Second:                 "00:00",
		500 * time.Millisecond:       "00:01",
		59 * time.Second:             "00:59",
		25 * time.Minute:             "25:00",
		90*time.Minute + time.Second: "90:01",
	}
	for d, want := range cases {
		if got := FormatClock(d); got != want {
			t.Fatalf("FormatClock(%s): want %s, got %s", d, want, got)
		}
	}
}

func TestRunCompletes(t *testing.T) {
	var tm Timer
	mustStart(t, &tm, 30*time.Millisecond, 0)

	ticks := 0
	err := Run(context.Background(), &tm, 10*time.Millisecond, func(*Timer) { ticks++ })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	var tm Timer
	mustStart(t, &tm, time.Hour, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := Run(ctx, &tm, 5*time.Millisecond, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if tm.Running() {
		t.Fatalf("expected timer stopped after cancellation")
	}
}

func TestRunRequiresStartedTimer(t *testing.T) {
	var tm Timer
	if err := Run(context.Background(), &tm, time.Millisecond, nil); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}
