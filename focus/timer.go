// Package focus implements the focus (pomodoro) countdown.
//
// Every Start issues a fresh session id. Ticks carry the id they were
// scheduled for, so ticks from a stopped or replaced session are ignored.
package focus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidLength = errors.New("focus length must be positive")
	ErrNotRunning    = errors.New("focus timer is not running")
)

// Result of applying a tick.
type Result int

const (
	Ignored Result = iota
	Ticked
	Completed
)

func (r Result) String() string {
	switch r {
	case Ticked:
		return "ticked"
	case Completed:
		return "completed"
	default:
		return "ignored"
	}
}

// Timer is a single focus countdown. It is not safe for concurrent use.
type Timer struct {
	session   string
	taskID    int64
	length    time.Duration
	remaining time.Duration
	running   bool
}

// Start begins a new session of length, optionally bound to a task (0 for none),
// and returns its id. Any running session is replaced.
func (t *Timer) Start(length time.Duration, taskID int64) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidLength, length)
	}
	t.session = uuid.NewString()
	t.taskID = taskID
	t.length = length
	t.remaining = length
	t.running = true
	return t.session, nil
}

// Stop ends the current session. Pending ticks for it become stale.
func (t *Timer) Stop() {
	t.session = ""
	t.running = false
	t.taskID = 0
	t.remaining = t.length
}

// Tick subtracts elapsed from the session identified by id.
func (t *Timer) Tick(id string, elapsed time.Duration) Result {
	if !t.running || id == "" || id != t.session {
		return Ignored
	}
	t.remaining -= elapsed
	if t.remaining > 0 {
		return Ticked
	}
	t.remaining = 0
	t.running = false
	t.session = ""
	return Completed
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Session() string {
	return t.session
}

func (t *Timer) TaskID() int64 {
	return t.taskID
}

func (t *Timer) Length() time.Duration {
	return t.length
}

func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Display renders the remaining time as MM:SS, rounding partial seconds up.
func (t *Timer) Display() string {
	return FormatClock(t.remaining)
}

// FormatClock renders d as MM:SS. Minutes are not capped at 59.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Run drives t until its session completes or ctx is done, calling onTick
// after every interval. It returns ctx.Err() on cancellation.
func Run(ctx context.Context, t *Timer, interval time.Duration, onTick func(*Timer)) error {
	id := t.Session()
	if id == "" {
		return ErrNotRunning
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-ticker.C:
			res := t.Tick(id, interval)
			if onTick != nil {
				onTick(t)
			}
			switch res {
			case Completed:
				return nil
			case Ignored:
				return fmt.Errorf("%w: session was replaced", ErrNotRunning)
			}
		}
	}
}
