package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexus-daily/app"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak and weekly counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *runtime) error {
				w := cmd.OutOrStdout()
				st := rt.svc.Stats()
				done, total := rt.svc.TodayProgress()

				fmt.Fprintln(w, titleStyle.Render("Analytics"))
				printField(w, "Tasks completed", st.TotalTasksCompleted)
				printField(w, "Current streak", fmt.Sprintf("%d days", app.EffectiveStreak(st, rt.svc.Today())))
				printField(w, "Longest streak", fmt.Sprintf("%d days", st.LongestStreak))
				printField(w, "Completed this week", st.WeeklyTasksCompleted)
				printField(w, "Focus this week", fmt.Sprintf("%d min", st.WeeklyFocusTime))
				printField(w, "Today", fmt.Sprintf("%d/%d", done, total))
				printField(w, "Open tasks", rt.svc.OpenCount())
				return nil
			})
		},
	}
}

func newSettingsCmd(opts *options) *cobra.Command {
	var (
		theme         string
		notifications bool
		voiceEnabled  bool
		pomodoro      int
		shortBreak    int
		longBreak     int
		workStart     string
		workEnd       string
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long:  "Show the stored settings. Any flag given changes that setting.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, "theme", "notifications", "voice", "pomodoro", "short-break", "long-break", "work-start", "work-end") {
				return withRuntime(opts, func(rt *runtime) error {
					w := cmd.OutOrStdout()
					s := rt.svc.Settings()
					printField(w, "Theme", s.Theme)
					printField(w, "Notifications", s.Notifications)
					printField(w, "Voice input", s.VoiceEnabled)
					printField(w, "Focus length", fmt.Sprintf("%d min", s.PomodoroLength))
					printField(w, "Short break", fmt.Sprintf("%d min", s.ShortBreak))
					printField(w, "Long break", fmt.Sprintf("%d min", s.LongBreak))
					printField(w, "Working hours", s.WorkingHours.Start+"-"+s.WorkingHours.End)
					return nil
				})
			}

			return mutate(opts, func(rt *runtime) (app.Notice, error) {
				s := rt.svc.Settings()
				changed := cmd.Flags().Changed
				if changed("theme") {
					s.Theme = theme
				}
				if changed("notifications") {
					s.Notifications = notifications
				}
				if changed("voice") {
					s.VoiceEnabled = voiceEnabled
				}
				if changed("pomodoro") {
					s.PomodoroLength = pomodoro
				}
				if changed("short-break") {
					s.ShortBreak = shortBreak
				}
				if changed("long-break") {
					s.LongBreak = longBreak
				}
				if changed("work-start") {
					s.WorkingHours.Start = workStart
				}
				if changed("work-end") {
					s.WorkingHours.End = workEnd
				}
				return rt.svc.UpdateSettings(s)
			}, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&theme, "theme", "", "auto, light or dark")
	f.BoolVar(&notifications, "notifications", true, "show success and info notices")
	f.BoolVar(&voiceEnabled, "voice", true, "enable voice input")
	f.IntVar(&pomodoro, "pomodoro", 0, "focus session length in minutes")
	f.IntVar(&shortBreak, "short-break", 0, "short break in minutes")
	f.IntVar(&longBreak, "long-break", 0, "long break in minutes")
	f.StringVar(&workStart, "work-start", "", "start of working hours, HH:MM")
	f.StringVar(&workEnd, "work-end", "", "end of working hours, HH:MM")
	return cmd
}
