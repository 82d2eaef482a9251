// Package voice turns spoken phrases into task commands. Speech capture sits
// behind Recognizer so a real engine can replace the simulated one.
package voice

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Recognizer listens for one phrase. It returns ctx.Err() when cancelled.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Func adapts a plain function to Recognizer.
type Func func(ctx context.Context) (string, error)

func (f Func) Listen(ctx context.Context) (string, error) {
	return f(ctx)
}

const (
	DefaultPhrase = "Add task review weekly reports"
	DefaultDelay  = 3 * time.Second
)

// Simulated "hears" Phrase after Delay.
type Simulated struct {
	Phrase string
	Delay  time.Duration
}

func (s Simulated) Listen(ctx context.Context) (string, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return s.Phrase, nil
	}
}

type Action int

const (
	ActionUnknown Action = iota
	ActionAddTask
	ActionStartTimer
)

func (a Action) String() string {
	switch a {
	case ActionAddTask:
		return "add-task"
	case ActionStartTimer:
		return "start-timer"
	default:
		return "unknown"
	}
}

// Command is a parsed phrase. Title is only set for ActionAddTask; an empty
// title means the caller should open the task form instead.
type Command struct {
	Action Action
	Title  string
}

// HelpMessage is shown when a phrase is not understood.
const HelpMessage = `Try: "Add task [name]", "Start timer"`

var addCommand = regexp.MustCompile(`(?i)add task|create task`)

// Parse maps a phrase to a command. Matching is case-insensitive and the
// leftmost "add task" or "create task" is dropped from the title.
func Parse(phrase string) Command {
	trimmed := strings.TrimSpace(phrase)
	lower := strings.ToLower(trimmed)

	if loc := addCommand.FindStringIndex(trimmed); loc != nil {
		// Only the command words are removed; text around them stays in the title.
		rest := trimmed[:loc[0]] + " " + trimmed[loc[1]:]
		return Command{Action: ActionAddTask, Title: strings.Join(strings.Fields(rest), " ")}
	}
	if strings.Contains(lower, "start timer") || strings.Contains(lower, "focus") {
		return Command{Action: ActionStartTimer}
	}
	return Command{Action: ActionUnknown}
}
