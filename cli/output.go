package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nexus-daily/app"
	"nexus-daily/model"
)

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	doneStyle  = lipgloss.NewStyle().Faint(true)
	lateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var severityStyles = map[app.Severity]lipgloss.Style{
	app.SeveritySuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	app.SeverityInfo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	app.SeverityWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	app.SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
}

var priorityStyles = map[model.Priority]lipgloss.Style{
	model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	model.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

func printNotice(w io.Writer, n app.Notice) {
	if n.Title == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", severityStyles[n.Severity].Render(n.Title), n.Message)
}

func printTasks(w io.Writer, tasks []model.Task, today model.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tasks."))
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, taskLine(t, today))
	}
}

func taskLine(t model.Task, today model.Date) string {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}

	meta := []string{string(t.Category)}
	if !t.DueDate.IsZero() {
		due := "due " + string(t.DueDate)
		if t.DueDate == today {
			due = "due today"
		}
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		if !t.Completed && t.DueDate.Before(today) {
			due = lateStyle.Render("overdue " + string(t.DueDate))
		}
		meta = append(meta, due)
	}

	priority := priorityStyles[t.Priority].Render(fmt.Sprintf("%-6s", t.Priority))
	return fmt.Sprintf("%s %d  %s  %s  %s", check, t.ID, priority, title, mutedStyle.Render("("+strings.Join(meta, ", ")+")"))
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", mutedStyle.Render(fmt.Sprintf("%-22s", label)), value)
}
