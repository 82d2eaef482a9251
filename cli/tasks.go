package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nexus-daily/app"
	"nexus-daily/model"
)

func newTodayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *runtime) error {
				w := cmd.OutOrStdout()
				done, total := rt.svc.TodayProgress()
				fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Today %s  %d/%d done", rt.svc.Today(), done, total)))
				printTasks(w, rt.svc.TodayTasks(), rt.svc.Today())
				return nil
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *runtime) error {
				tasks := rt.svc.Tasks()
				if open {
					kept := tasks[:0]
					for _, t := range tasks {
						if !t.Completed {
							kept = append(kept, t)
						}
					}
					tasks = kept
				}
				printTasks(cmd.OutOrStdout(), tasks, rt.svc.Today())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "only show tasks that are not completed")
	return cmd
}

// taskFlags are the form fields shared by add and edit.
type taskFlags struct {
	title       string
	description string
	category    string
	priority    string
	due         string
	time        string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "work, personal, health or learning (inferred when empty)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "low, medium, high or urgent")
	cmd.Flags().StringVar(&f.due, "due", "", `due date as YYYY-MM-DD, "today" or "tomorrow"`)
	cmd.Flags().StringVar(&f.time, "time", "", "due time as HH:MM")
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply overlays the changed flags on in.
func (f *taskFlags) apply(cmd *cobra.Command, in app.TaskInput, today model.Date) app.TaskInput {
	changed := cmd.Flags().Changed
	if changed("title") {
		in.Title = f.title
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("category") {
		in.Category = model.Category(strings.ToLower(f.category))
	}
	if changed("priority") {
		in.Priority = model.Priority(strings.ToLower(f.priority))
	}
	if changed("due") {
		in.DueDate = resolveDue(f.due, today)
	}
	if changed("time") {
		in.DueTime = f.time
	}
	return in
}

func resolveDue(s string, today model.Date) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return string(today)
	case "tomorrow":
		return string(today.AddDays(1))
	default:
		return strings.TrimSpace(s)
	}
}

func newAddCmd(opts *options) *cobra.Command {
	flags := &taskFlags{}
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Long: `Add a task. Without flags the task is due today with medium priority and a
category guessed from the title.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return mutate(opts, func(rt *runtime) (app.Notice, error) {
				if !anyChanged(cmd, "description", "category", "priority", "due", "time") {
					_, n, err := rt.svc.QuickAdd(title)
					return n, err
				}
				in := app.TaskInput{Title: title, DueDate: string(rt.svc.Today())}
				_, n, err := rt.svc.CreateTask(flags.apply(cmd, in, rt.svc.Today()))
				return n, err
			}, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	flags := &taskFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return mutate(opts, func(rt *runtime) (app.Notice, error) {
				t, err := taskByID(rt.svc, id)
				if err != nil {
					return app.Notice{}, err
				}
				in := app.TaskInput{
					Title:       t.Title,
					Description: t.Description,
					Category:    t.Category,
					Priority:    t.Priority,
					DueDate:     string(t.DueDate),
					DueTime:     t.DueTime,
				}
				_, n, err := rt.svc.UpdateTask(id, flags.apply(cmd, in, rt.svc.Today()))
				return n, err
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "new title")
	flags.register(cmd)
	return cmd
}

func newDoneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(cmd, opts, args[0], true)
		},
	}
}

func newReopenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Mark a completed task as not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(cmd, opts, args[0], false)
		},
	}
}

func setCompleted(cmd *cobra.Command, opts *options, arg string, completed bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	return mutate(opts, func(rt *runtime) (app.Notice, error) {
		t, err := taskByID(rt.svc, id)
		if err != nil {
			return app.Notice{}, err
		}
		if t.Completed == completed {
			state := "open"
			if completed {
				state = "completed"
			}
			return app.Notice{Title: "No Change", Message: fmt.Sprintf("%q is already %s", t.Title, state), Severity: app.SeverityInfo}, nil
		}
		_, n, err := rt.svc.ToggleComplete(id)
		return n, err
	}, cmd.OutOrStdout())
}

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return mutate(opts, func(rt *runtime) (app.Notice, error) {
				n, err := rt.svc.DeleteTask(id)
				if err != nil {
					return app.Notice{}, fmt.Errorf("task %d: %w", id, err)
				}
				return n, nil
			}, cmd.OutOrStdout())
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
