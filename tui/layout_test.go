package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"nexus-daily/app"
	"nexus-daily/model"
)

func TestPaneWidthsPreferNarrowLeftPanel(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	m.width = 120

	viewW := m.viewportWidth()
	left, right := m.paneWidths(viewW, 1)
	if left >= right {
		t.Fatalf("expected left panel to be narrower than right (left=%d right=%d)", left, right)
	}
	if left+right+1 != viewW {
		t.Fatalf("expected pane widths to fill available width=%d, got left=%d right=%d", viewW, left, right)
	}
}

func TestPaneWidthsSmallTerminalStillValid(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	m.width = 48

	viewW := m.viewportWidth()
	left, right := m.paneWidths(viewW, 1)
	if left < 10 || right < 12 {
		t.Fatalf("expected minimum usable pane widths, got left=%d right=%d", left, right)
	}
	if left+right+1 > viewW {
		t.Fatalf("expected panes not to exceed viewport width=%d, got left=%d right=%d", viewW, left, right)
	}
}

func TestViewBeforeResizeIsPlaceholder(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	if got := m.View(); got != "loading..." {
		t.Fatalf("expected loading placeholder, got %q", got)
	}
}

func TestViewRendersTasksAndAnalytics(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if _, _, err := m.svc.QuickAdd("Write quarterly report"); err != nil {
		t.Fatalf("quick add: %v", err)
	}
	m.ensureSelection()

	out := m.View()
	for _, want := range []string{"nexus-daily", "Write quarterly report", "Today"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}

	m.view = model.ViewAnalytics
	out = m.View()
	for _, want := range []string{"Analytics", "Tasks completed", "Focus this week"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected analytics view to contain %q", want)
		}
	}
}

func TestFooterTruncatesLongHints(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	m.width = 40

	line := m.renderFooter(strings.Repeat("x", 100), "25:00")
	if !strings.Contains(line, "25:00") {
		t.Fatalf("expected right hint to survive truncation: %q", line)
	}
	if !strings.Contains(line, "…") {
		t.Fatalf("expected truncated left text: %q", line)
	}
}

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"héllo", 2, "h…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, c := range cases {
		if got := truncateRunes(c.in, c.max); got != c.want {
			t.Fatalf("truncateRunes(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := formatMinutes(45); got != "45m" {
		t.Fatalf("expected 45m, got %s", got)
	}
	if got := formatMinutes(125); got != "2h 05m" {
		t.Fatalf("expected 2h 05m, got %s", got)
	}
}

func TestSeverityColorsDiffer(t *testing.T) {
	seen := map[string]app.Severity{}
	for _, s := range []app.Severity{app.SeveritySuccess, app.SeverityInfo, app.SeverityWarning, app.SeverityError} {
		c := string(severityColor(s))
		if prev, ok := seen[c]; ok {
			t.Fatalf("%s and %s share color %s", prev, s, c)
		}
		seen[c] = s
	}
}

func TestAnalyticsDropsCountersFromEarlierWeek(t *testing.T) {
	state := model.NewState()
	state.Stats = model.Stats{
		WeeklyTasksCompleted: 7,
		WeeklyFocusTime:      90,
		WeekStart:            "2024-06-03",
	}
	m, _ := newTestModel(t, state)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.view = model.ViewAnalytics

	out := m.View()
	if strings.Contains(out, "1h 30m") {
		t.Fatalf("expected last week's focus time to be hidden:\n%s", out)
	}
	if !strings.Contains(out, "Focus this week") || !strings.Contains(out, "0m") {
		t.Fatalf("expected zero focus time for the new week:\n%s", out)
	}
}
