package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nexus-daily/focus"
)

// Tick and minute lengths of the terminal countdown. Tests shorten them.
var (
	focusTick   = time.Second
	focusMinute = time.Minute
)

func newFocusCmd(opts *options) *cobra.Command {
	var (
		taskID  int64
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus session in the terminal",
		Long: `Count down a focus session and record it in this week's focus time.
Interrupting the countdown records nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *runtime) error {
				w := cmd.OutOrStdout()
				if minutes <= 0 {
					minutes = rt.svc.Settings().PomodoroLength
				}
				if taskID != 0 {
					if _, err := taskByID(rt.svc, taskID); err != nil {
						return err
					}
				}

				var timer focus.Timer
				if _, err := timer.Start(time.Duration(minutes)*focusMinute, taskID); err != nil {
					return err
				}
				printNotice(w, rt.svc.FocusStarted(taskID))

				err := focus.Run(cmd.Context(), &timer, focusTick, func(t *focus.Timer) {
					fmt.Fprintf(w, "\r%s ", focus.FormatClock(t.Remaining()))
				})
				fmt.Fprintln(w)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					fmt.Fprintln(w, mutedStyle.Render("Focus session stopped."))
					return nil
				}
				if err != nil {
					return err
				}

				n, err := rt.svc.CompleteFocusSession(minutes)
				if err != nil {
					return err
				}
				if err := rt.save(); err != nil {
					return err
				}
				printNotice(w, n)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&taskID, "task", 0, "task to focus on")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "session length (default from settings)")
	return cmd
}
