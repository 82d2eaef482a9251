package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nexus-daily/app"
	"nexus-daily/model"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldToggle
)

type formField struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	choices []string
	choice  int
	on      bool
}

// form is a vertical list of fields. Tab and shift+tab move between fields,
// left/right cycle choices, space flips toggles.
type form struct {
	title  string
	fields []formField
	focus  int
	err    string
}

func textField(label, value, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.SetValue(value)
	return formField{label: label, kind: fieldText, input: ti}
}

func choiceField(label string, choices []string, current string) formField {
	f := formField{label: label, kind: fieldChoice, choices: choices}
	for i, c := range choices {
		if c == current {
			f.choice = i
		}
	}
	return f
}

func toggleField(label string, on bool) formField {
	return formField{label: label, kind: fieldToggle, on: on}
}

func (f *form) focusField(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if f.fields[f.focus].kind == fieldText {
		f.fields[f.focus].input.Blur()
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	if f.fields[f.focus].kind == fieldText {
		return f.fields[f.focus].input.Focus()
	}
	return nil
}

func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	field := &f.fields[f.focus]
	switch msg.String() {
	case "tab", "down":
		return f.focusField(f.focus + 1)
	case "shift+tab", "up":
		return f.focusField(f.focus - 1)
	}

	switch field.kind {
	case fieldChoice:
		switch msg.String() {
		case "right", "l", " ":
			field.choice = (field.choice + 1) % len(field.choices)
		case "left", "h":
			field.choice = (field.choice - 1 + len(field.choices)) % len(field.choices)
		}
		return nil
	case fieldToggle:
		switch msg.String() {
		case " ", "left", "right", "h", "l":
			field.on = !field.on
		}
		return nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	field := f.fields[i]
	switch field.kind {
	case fieldChoice:
		return field.choices[field.choice]
	case fieldToggle:
		return strconv.FormatBool(field.on)
	default:
		return strings.TrimSpace(field.input.Value())
	}
}

func (f *form) view(width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	activeLabel := labelStyle.Foreground(lipgloss.Color("229")).Bold(true)

	rows := []string{lipgloss.NewStyle().Bold(true).Render(f.title), ""}
	for i, field := range f.fields {
		ls := labelStyle
		if i == f.focus {
			ls = activeLabel
		}
		var value string
		switch field.kind {
		case fieldChoice:
			value = "‹ " + field.choices[field.choice] + " ›"
		case fieldToggle:
			value = "[ ]"
			if field.on {
				value = "[x]"
			}
		default:
			value = field.input.View()
		}
		rows = append(rows, ls.Render(field.label)+" "+value)
	}
	rows = append(rows, "")
	if f.err != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(f.err))
	}
	rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("tab next • ←/→ change • enter save • esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

const categoryAuto = "auto"

const (
	taskFieldTitle = iota
	taskFieldDescription
	taskFieldCategory
	taskFieldPriority
	taskFieldDueDate
	taskFieldDueTime
)

// newTaskForm builds the six-field task form. A nil task means create.
func newTaskForm(task *model.Task, today model.Date) *form {
	categories := []string{categoryAuto}
	for _, c := range model.Categories {
		categories = append(categories, string(c))
	}
	priorities := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		priorities = append(priorities, string(p))
	}

	t := model.Task{Priority: model.PriorityMedium, DueDate: today}
	title := "New Task"
	category := categoryAuto
	if task != nil {
		t = *task
		title = "Edit Task"
		category = string(t.Category)
	}

	f := &form{
		title: title,
		fields: []formField{
			textField("Title", t.Title, "What needs doing?", 200),
			textField("Description", t.Description, "optional", 2000),
			choiceField("Category", categories, category),
			choiceField("Priority", priorities, string(t.Priority)),
			textField("Due date", string(t.DueDate), model.DateLayout, 10),
			textField("Due time", t.DueTime, "HH:MM", 5),
		},
	}
	f.focusField(0)
	return f
}

func taskInputFrom(f *form) app.TaskInput {
	in := app.TaskInput{
		Title:       f.value(taskFieldTitle),
		Description: f.value(taskFieldDescription),
		Priority:    model.Priority(f.value(taskFieldPriority)),
		DueDate:     f.value(taskFieldDueDate),
		DueTime:     f.value(taskFieldDueTime),
	}
	if c := f.value(taskFieldCategory); c != categoryAuto {
		in.Category = model.Category(c)
	}
	return in
}

const (
	settingsFieldTheme = iota
	settingsFieldNotifications
	settingsFieldVoice
	settingsFieldPomodoro
	settingsFieldShortBreak
	settingsFieldLongBreak
	settingsFieldWorkStart
	settingsFieldWorkEnd
)

func newSettingsForm(s model.Settings) *form {
	f := &form{
		title: "Settings",
		fields: []formField{
			choiceField("Theme", []string{model.ThemeAuto, model.ThemeLight, model.ThemeDark}, s.Theme),
			toggleField("Notifications", s.Notifications),
			toggleField("Voice input", s.VoiceEnabled),
			textField("Focus (min)", strconv.Itoa(s.PomodoroLength), "25", 3),
			textField("Short break", strconv.Itoa(s.ShortBreak), "5", 3),
			textField("Long break", strconv.Itoa(s.LongBreak), "15", 3),
			textField("Work starts", s.WorkingHours.Start, "HH:MM", 5),
			textField("Work ends", s.WorkingHours.End, "HH:MM", 5),
		},
	}
	return f
}

func settingsFrom(f *form) (model.Settings, error) {
	minutes := func(i int) (int, error) {
		n, err := strconv.Atoi(f.value(i))
		if err != nil {
			return 0, fmt.Errorf("%s must be a whole number of minutes", strings.ToLower(f.fields[i].label))
		}
		return n, nil
	}
	pomodoro, err := minutes(settingsFieldPomodoro)
	if err != nil {
		return model.Settings{}, err
	}
	short, err := minutes(settingsFieldShortBreak)
	if err != nil {
		return model.Settings{}, err
	}
	long, err := minutes(settingsFieldLongBreak)
	if err != nil {
		return model.Settings{}, err
	}
	return model.Settings{
		Theme:          f.value(settingsFieldTheme),
		Notifications:  f.fields[settingsFieldNotifications].on,
		VoiceEnabled:   f.fields[settingsFieldVoice].on,
		PomodoroLength: pomodoro,
		ShortBreak:     short,
		LongBreak:      long,
		WorkingHours: model.WorkingHours{
			Start: f.value(settingsFieldWorkStart),
			End:   f.value(settingsFieldWorkEnd),
		},
	}, nil
}
