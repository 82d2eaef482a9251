package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nexus-daily/schedule"
)

// Schedules for the background jobs feeding the program.
type Schedules struct {
	Autosave string
	Clock    string
}

// Run starts the full-screen program. Autosave and clock refresh are driven by
// sched and delivered to the model as messages, so all state changes still
// happen on the program loop.
func Run(ctx context.Context, m *Model, sched *schedule.Scheduler, specs Schedules) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if specs.Autosave != "" {
		if err := sched.Every("autosave", specs.Autosave, func() { p.Send(autosaveMsg{}) }); err != nil {
			return fmt.Errorf("failed to schedule autosave: %w", err)
		}
	}
	if specs.Clock != "" {
		if err := sched.Every("clock", specs.Clock, func() { p.Send(clockMsg{now: time.Now()}) }); err != nil {
			return fmt.Errorf("failed to schedule clock refresh: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	_, err := p.Run()
	m.stopListening()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
