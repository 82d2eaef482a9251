package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"nexus-daily/app"
	"nexus-daily/focus"
	"nexus-daily/model"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	viewW := m.viewportWidth()
	header := m.renderHeader(viewW)

	const paneGap = 1
	outerPaneW := viewW
	innerPaneW := outerPaneW - 2
	if innerPaneW < 20 {
		innerPaneW = outerPaneW
	}
	panelH := m.height - 6
	if panelH < 8 {
		panelH = 8
	}
	innerPaneH := panelH - 2
	if innerPaneH < 6 {
		innerPaneH = 6
	}

	leftW, rightW := m.paneWidths(innerPaneW, paneGap)
	var body string
	if m.view == model.ViewAnalytics {
		body = m.renderAnalyticsPanel(rightW, innerPaneH)
	} else {
		body = m.renderTasksPanel(rightW, innerPaneH)
	}
	split := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSidebar(leftW, innerPaneH),
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("│"),
		body,
	)

	frameColor := lipgloss.Color("240")
	if m.mode == modeNormal {
		frameColor = lipgloss.Color("39")
	}
	panes := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameColor).
		Width(outerPaneW - 2).
		Height(panelH).
		Render(split)

	popupW := clamp(viewW-8, 40, 72)
	switch {
	case m.showHelp:
		panes = lipgloss.Place(viewW, panelH, lipgloss.Center, lipgloss.Center, m.renderHelpOverlay(popupW))
	case m.form != nil:
		panes = lipgloss.Place(viewW, panelH, lipgloss.Center, lipgloss.Center, m.form.view(popupW))
	}

	parts := []string{header}
	if m.shouldShowOnboarding() {
		parts = append(parts, m.renderOnboarding(viewW))
	}
	parts = append(parts, panes)
	if notices := m.renderNotices(viewW); notices != "" {
		parts = append(parts, notices)
	}
	parts = append(parts, m.renderFooter(m.contextualHelp(), m.timerHint()))

	switch m.mode {
	case modeQuickAdd:
		parts = append(parts, m.quick.View())
	case modeConfirmDelete:
		prompt := fmt.Sprintf("Delete task %q? [y/N]", m.confirmName)
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(viewW).Render(prompt))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render("nexus-daily")
	stats := m.svc.Stats()
	streak := app.EffectiveStreak(stats, m.svc.Today())
	done, total := m.svc.TodayProgress()

	summary := fmt.Sprintf("%s • today %d/%d • open %d • streak %d",
		m.now.Format("Mon, Jan 2 15:04"), done, total, m.svc.OpenCount(), streak)
	if m.listening {
		summary += " • listening…"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  "+summary),
	)
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (m *Model) viewportWidth() int {
	if m.width <= 0 {
		return 1
	}
	// One column stays free so the right border is not clipped.
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

func (m *Model) paneWidths(total, gap int) (int, int) {
	if total <= 0 {
		return 24, 30
	}
	if gap < 0 {
		gap = 0
	}

	minLeft := 20
	minRight := 30
	if total < minLeft+minRight+gap {
		left := total / 3
		if left < 12 {
			left = 12
		}
		right := total - left - gap
		if right < 12 {
			right = 12
			left = total - right - gap
			if left < 10 {
				left = 10
			}
		}
		return left, right
	}

	left := clamp(total/4, 22, 30)
	right := total - left - gap
	if right < minRight {
		right = minRight
		left = total - right - gap
	}
	if left < minLeft {
		left = minLeft
		right = total - left - gap
	}
	return left, right
}

func (m *Model) renderFooter(leftText, rightHint string) string {
	left := strings.TrimSpace(leftText)
	right := strings.TrimSpace(rightHint)

	leftW := utf8.RuneCountInString(left)
	rightW := utf8.RuneCountInString(right)
	width := m.viewportWidth()
	if width <= 0 {
		width = leftW + rightW + 2
	}

	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}

	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}

	leftStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	rightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	line := leftStyle.Render(left) + strings.Repeat(" ", padding) + rightStyle.Render(right)
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) timerHint() string {
	if !m.timer.Running() {
		return "focus " + focus.FormatClock(time.Duration(m.svc.Settings().PomodoroLength)*time.Minute)
	}
	hint := "⏱ " + m.timer.Display()
	if id := m.timer.TaskID(); id != 0 {
		if t, err := m.svc.GetTask(id); err == nil {
			hint += " " + truncateRunes(t.Title, 24)
		}
	}
	return hint
}

func (m *Model) renderNotices(width int) string {
	if len(m.notices) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		title := lipgloss.NewStyle().Bold(true).Foreground(severityColor(n.Severity)).Render(n.Title)
		msgW := width - utf8.RuneCountInString(n.Title) - 1
		lines = append(lines, title+" "+truncateRunes(n.Message, msgW))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHelpOverlay(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Shortcuts")
	m.help.ShowAll = true
	body := m.help.View(m.keys)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("244")).
		Padding(1, 2)
	return style.Width(width).Render(title + "\n\n" + body)
}

func (m *Model) renderOnboarding(width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)
	text := "Getting started:\n1) 'a' quick-adds a task for today, 'n' opens the full form\n2) 'x' completes a task and grows your streak\n3) 't' starts a focus session, 'v' takes a voice command"
	return style.Width(width - 2).Render(text)
}

func (m *Model) contextualHelp() string {
	switch m.mode {
	case modeQuickAdd:
		return "Type a title • Enter add • Esc cancel"
	case modeTaskForm, modeSettings:
		return "Tab next field • ←/→ change • Enter save • Esc cancel"
	case modeConfirmDelete:
		return "y confirm • n/Esc cancel"
	}
	m.help.ShowAll = false
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m *Model) renderSidebar(width, height int) string {
	lines := []string{panelTitleStyled("Views", false)}
	for _, v := range views {
		label := viewLabel(v)
		if v == m.view {
			lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("▸ "+label))
			continue
		}
		lines = append(lines, "  "+label)
	}

	stats := m.svc.Stats()
	done, total := m.svc.TodayProgress()
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	lines = append(lines,
		"",
		panelTitleStyled("Today", false),
		progressBar(done, total, width-2),
		muted.Render(fmt.Sprintf("%d of %d done", done, total)),
		"",
		panelTitleStyled("Streak", false),
		fmt.Sprintf("%d days", app.EffectiveStreak(stats, m.svc.Today())),
		muted.Render(fmt.Sprintf("best %d", stats.LongestStreak)),
	)

	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTasksPanel(width, height int) string {
	tasks := m.visibleTasks()
	lines := make([]string, 0, len(tasks)+2)
	lines = append(lines, panelTitleStyled(viewLabel(m.view), m.mode == modeNormal))

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	if len(tasks) == 0 {
		if m.view == model.ViewToday {
			lines = append(lines, muted.Render("Nothing due today. Press 'a' to add a task."))
		} else {
			lines = append(lines, muted.Render("No tasks yet. Press 'n' to create one."))
		}
	}

	today := m.svc.Today()
	for i, t := range tasks {
		cursor := " "
		if i == m.cursor {
			cursor = "▸"
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		textStyle := lipgloss.NewStyle()
		if t.Completed {
			textStyle = textStyle.Faint(true)
		}
		if i == m.cursor {
			textStyle = textStyle.Bold(true).Foreground(lipgloss.Color("229"))
		}

		meta := string(t.Category)
		if !t.DueDate.IsZero() {
			due := string(t.DueDate)
			if t.DueDate == today {
				due = "today"
			}
			if t.DueTime != "" {
				due += " " + t.DueTime
			}
			if !t.Completed && t.DueDate.Before(today) {
				due = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("overdue " + string(t.DueDate))
			}
			meta += " • " + due
		}

		titleW := width - 8 - utf8.RuneCountInString(meta)
		if titleW < 10 {
			titleW = 10
		}
		line := lipgloss.JoinHorizontal(lipgloss.Left,
			cursor+" ",
			check+" ",
			priorityIndicator(t.Priority)+" ",
			textStyle.Render(truncateRunes(t.Title, titleW)),
			"  ",
			muted.Render(meta),
		)
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderAnalyticsPanel(width, height int) string {
	stats := m.svc.Stats()
	done, total := m.svc.TodayProgress()
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)

	row := func(name string, value any) string {
		return label.Render(name) + fmt.Sprint(value)
	}
	lines := []string{
		panelTitleStyled("Analytics", m.mode == modeNormal),
		"",
		row("Tasks completed", stats.TotalTasksCompleted),
		row("Current streak", fmt.Sprintf("%d days", app.EffectiveStreak(stats, m.svc.Today()))),
		row("Longest streak", fmt.Sprintf("%d days", stats.LongestStreak)),
		row("Completed this week", stats.WeeklyTasksCompleted),
		row("Focus this week", formatMinutes(stats.WeeklyFocusTime)),
		"",
		row("Today", fmt.Sprintf("%d/%d", done, total)),
		progressBar(done, total, width-2),
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func panelTitleStyled(title string, active bool) string {
	base := lipgloss.NewStyle().Bold(true)
	if !active {
		return base.Render(title)
	}
	text := base.Foreground(lipgloss.Color("229")).Render(title)
	marker := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("*")
	return lipgloss.JoinHorizontal(lipgloss.Left, text, " ", marker)
}

func viewLabel(v string) string {
	switch v {
	case model.ViewTasks:
		return "All tasks"
	case model.ViewAnalytics:
		return "Analytics"
	default:
		return "Today"
	}
}

func priorityIndicator(p model.Priority) string {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("•")
	switch p {
	case model.PriorityLow:
		s = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Render("●")
	case model.PriorityMedium:
		s = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("●")
	case model.PriorityHigh:
		s = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render("●")
	case model.PriorityUrgent:
		s = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("▲")
	}
	return s
}

func severityColor(s app.Severity) lipgloss.Color {
	switch s {
	case app.SeveritySuccess:
		return lipgloss.Color("10")
	case app.SeverityWarning:
		return lipgloss.Color("11")
	case app.SeverityError:
		return lipgloss.Color("9")
	default:
		return lipgloss.Color("12")
	}
}

func progressBar(done, total, width int) string {
	if width < 4 {
		width = 4
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(strings.Repeat("░", width-filled))
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
