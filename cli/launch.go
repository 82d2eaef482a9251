package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"nexus-daily/schedule"
	"nexus-daily/tui"
	"nexus-daily/voice"
)

// runTUI opens the interactive view. The terminal belongs to the UI, so logs
// are discarded when the log file cannot be opened.
func runTUI(cmd *cobra.Command, opts *options) error {
	rt, err := openRuntime(opts, io.Discard)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.cfg
	m := tui.NewModel(rt.svc, rt.persister, tui.Options{
		Recognizer:    voice.Simulated{Phrase: cfg.Voice.Phrase, Delay: cfg.Voice.Delay},
		NoticeTTL:     cfg.NoticeTTL,
		StartupNotice: rt.recovery,
	})

	sched := schedule.New(log.Default())
	err = tui.Run(cmd.Context(), m, sched, tui.Schedules{
		Autosave: cfg.AutosaveSchedule,
		Clock:    cfg.ClockSchedule,
	})
	if saveErr := rt.save(); saveErr != nil {
		log.Printf("final save: %v", saveErr)
	}
	return err
}
