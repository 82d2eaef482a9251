package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nexus-daily/app"
	"nexus-daily/model"
	"nexus-daily/voice"
)

type memSaver struct {
	saves int
	last  model.AppState
	err   error
}

func (s *memSaver) Save(state model.AppState) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.last = state
	return nil
}

var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, state model.AppState) (*Model, *memSaver) {
	t.Helper()
	return newTestModelWith(t, state, Options{})
}

func newTestModelWith(t *testing.T, state model.AppState, opts Options) (*Model, *memSaver) {
	t.Helper()
	svc := app.NewService(state, app.WithClock(func() time.Time { return testNow }))
	saver := &memSaver{}
	return NewModel(svc, saver, opts), saver
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func lastNotice(t *testing.T, m *Model) app.Notice {
	t.Helper()
	if len(m.notices) == 0 {
		t.Fatalf("expected a notice to be shown")
	}
	return m.notices[len(m.notices)-1].Notice
}

func mustAdd(t *testing.T, m *Model, title string) model.Task {
	t.Helper()
	task, _, err := m.svc.QuickAdd(title)
	if err != nil {
		t.Fatalf("quick add %q: %v", title, err)
	}
	m.ensureSelection()
	return task
}

func TestInitShowsWelcomeOrRecoveryNotice(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected notice expiry command")
	}
	if n := lastNotice(t, m); n.Title != "Welcome!" || n.Severity != app.SeveritySuccess {
		t.Fatalf("unexpected startup notice: %+v", n)
	}

	m, _ = newTestModelWith(t, model.NewState(), Options{StartupNotice: "restored from backup"})
	m.Init()
	if n := lastNotice(t, m); n.Title != "Data Recovered" || n.Severity != app.SeverityWarning {
		t.Fatalf("unexpected recovery notice: %+v", n)
	}
}

func TestQuickAddFromKeyboardSaves(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	press(m, "a")
	if m.mode != modeQuickAdd {
		t.Fatalf("expected quick add mode, got %v", m.mode)
	}
	press(m, "R", "u", "n", "enter")

	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after submit, got %v", m.mode)
	}
	tasks := m.svc.TodayTasks()
	if len(tasks) != 1 || tasks[0].Title != "Run" {
		t.Fatalf("expected one task titled Run, got %+v", tasks)
	}
	if tasks[0].Category != model.CategoryHealth || tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("unexpected quick add defaults: %+v", tasks[0])
	}
	if saver.saves != 1 || len(saver.last.Tasks) != 1 {
		t.Fatalf("expected one save with the new task, saves=%d", saver.saves)
	}
	if saver.last.Metadata.FirstRun {
		t.Fatalf("expected first mutation to clear the first-run flag")
	}
	if n := lastNotice(t, m); n.Title != "Task Added!" {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestQuickAddEmptyTitleShowsError(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	press(m, "a", " ", "enter")
	if m.mode != modeQuickAdd {
		t.Fatalf("expected quick add to stay open on error")
	}
	if len(m.svc.State().Tasks) != 0 || saver.saves != 0 {
		t.Fatalf("expected nothing to be added or saved")
	}
	if n := lastNotice(t, m); n.Severity != app.SeverityError || n.Message != "Please enter a task title" {
		t.Fatalf("unexpected notice: %+v", n)
	}

	press(m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("expected esc to close quick add")
	}
}

func TestTaskFormCreatesAndValidates(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	press(m, "n")
	if m.mode != modeTaskForm || m.form == nil {
		t.Fatalf("expected task form to open")
	}
	press(m, "enter")
	if m.form == nil || m.form.err != "Please enter a task title" {
		t.Fatalf("expected empty title to be rejected inline")
	}

	press(m, "R", "e", "a", "d", "enter")
	if m.mode != modeNormal || m.form != nil {
		t.Fatalf("expected form to close after create")
	}
	tasks := m.svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Read" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if tasks[0].DueDate != "2024-06-10" || tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("expected form defaults of today and medium, got %+v", tasks[0])
	}
	if saver.saves != 1 {
		t.Fatalf("expected one save, got %d", saver.saves)
	}
}

func TestEditFormKeepsCompletion(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	task := mustAdd(t, m, "Draft")
	if _, _, err := m.svc.ToggleComplete(task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	press(m, "e")
	if m.editID != task.ID {
		t.Fatalf("expected form to edit task %d, got %d", task.ID, m.editID)
	}
	press(m, "!", "enter")

	got, err := m.svc.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Draft!" || !got.Completed {
		t.Fatalf("expected edited title and kept completion, got %+v", got)
	}
}

func TestToggleCompletesSelectedTask(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())
	task := mustAdd(t, m, "Stretch")

	press(m, "x")
	got, _ := m.svc.GetTask(task.ID)
	if !got.Completed {
		t.Fatalf("expected task to be completed")
	}
	if st := m.svc.Stats(); st.CurrentStreak != 1 || st.TotalTasksCompleted != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if saver.saves != 1 {
		t.Fatalf("expected save after toggle, got %d", saver.saves)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())
	mustAdd(t, m, "Old task")

	press(m, "d")
	if m.mode != modeConfirmDelete || m.confirmName != "Old task" {
		t.Fatalf("expected delete confirmation, mode=%v name=%q", m.mode, m.confirmName)
	}
	press(m, "n")
	if len(m.svc.State().Tasks) != 1 {
		t.Fatalf("expected task to survive a declined delete")
	}

	press(m, "d", "y")
	if len(m.svc.State().Tasks) != 0 {
		t.Fatalf("expected task to be deleted")
	}
	if saver.saves != 1 {
		t.Fatalf("expected one save, got %d", saver.saves)
	}
}

func TestDeletingFocusedTaskStopsTimer(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	mustAdd(t, m, "Deep work")

	press(m, "f")
	if !m.timer.Running() {
		t.Fatalf("expected task timer to start")
	}
	press(m, "d", "y")
	if m.timer.Running() {
		t.Fatalf("expected timer to stop with its task")
	}
}

func TestStaleTimerTickIgnored(t *testing.T) {
	m, _ := newTestModelWith(t, model.NewState(), Options{TickInterval: time.Second})

	press(m, "t")
	if !m.timer.Running() {
		t.Fatalf("expected timer to run")
	}
	before := m.timer.Remaining()

	_, cmd := m.Update(timerTickMsg{session: "stale"})
	if cmd != nil {
		t.Fatalf("expected stale tick to schedule nothing")
	}
	if m.timer.Remaining() != before {
		t.Fatalf("stale tick changed remaining time")
	}

	_, cmd = m.Update(timerTickMsg{session: m.timer.Session()})
	if cmd == nil || m.timer.Remaining() != before-time.Second {
		t.Fatalf("expected live tick to count down and reschedule")
	}

	old := m.timer.Session()
	press(m, "t", "t")
	_, cmd = m.Update(timerTickMsg{session: old})
	if cmd != nil || m.timer.Remaining() != m.timer.Length() {
		t.Fatalf("expected tick from a stopped session to be ignored")
	}
}

func TestTimerCompletionCreditsFocusTime(t *testing.T) {
	state := model.NewState()
	state.Settings.PomodoroLength = 1
	m, saver := newTestModelWith(t, state, Options{TickInterval: 30 * time.Second})

	press(m, "t")
	session := m.timer.Session()
	m.Update(timerTickMsg{session: session})
	m.Update(timerTickMsg{session: session})

	if m.timer.Running() {
		t.Fatalf("expected timer to finish")
	}
	if got := m.svc.Stats().WeeklyFocusTime; got != 1 {
		t.Fatalf("expected 1 focus minute, got %d", got)
	}
	if saver.saves != 1 {
		t.Fatalf("expected completion to be saved, got %d saves", saver.saves)
	}
	if n := lastNotice(t, m); n.Title != "Focus Session Complete!" {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestVoiceAddsTask(t *testing.T) {
	rec := voice.Func(func(context.Context) (string, error) {
		return voice.DefaultPhrase, nil
	})
	m, saver := newTestModelWith(t, model.NewState(), Options{Recognizer: rec})

	cmd := press(m, "v")
	if !m.listening || cmd == nil {
		t.Fatalf("expected listening to start")
	}
	m.Update(cmd())

	if m.listening {
		t.Fatalf("expected listening to end with the result")
	}
	tasks := m.svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "review weekly reports" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if saver.saves != 1 {
		t.Fatalf("expected voice add to be saved")
	}
	if n := lastNotice(t, m); n.Title != "Voice Command" || n.Message != "Task command processed" {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestVoiceStartsTimerAndExplainsUnknown(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())

	press(m, "v")
	m.Update(voiceResultMsg{seq: m.listenSeq, phrase: "start timer"})
	if !m.timer.Running() {
		t.Fatalf("expected voice to start the timer")
	}

	press(m, "v")
	m.Update(voiceResultMsg{seq: m.listenSeq, phrase: "what's the weather"})
	if n := lastNotice(t, m); n.Message != voice.HelpMessage || n.Severity != app.SeverityInfo {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestVoiceAddWithoutTitleOpensForm(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())

	press(m, "v")
	m.Update(voiceResultMsg{seq: m.listenSeq, phrase: "add task"})
	if m.mode != modeTaskForm {
		t.Fatalf("expected the task form to open")
	}
}

func TestStaleVoiceResultIgnored(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())

	press(m, "v")
	seq := m.listenSeq
	press(m, "v")
	if m.listening {
		t.Fatalf("expected second press to stop listening")
	}
	m.Update(voiceResultMsg{seq: seq, phrase: "add task late"})
	if len(m.svc.State().Tasks) != 0 {
		t.Fatalf("expected result of cancelled listen to be ignored")
	}

	press(m, "v")
	m.Update(voiceResultMsg{seq: m.listenSeq, err: context.Canceled})
	if m.listening {
		t.Fatalf("expected cancelled listen to end")
	}
}

func TestVoiceDisabledWarns(t *testing.T) {
	state := model.NewState()
	state.Settings.VoiceEnabled = false
	m, _ := newTestModel(t, state)

	press(m, "v")
	if m.listening {
		t.Fatalf("expected voice to stay off")
	}
	if n := lastNotice(t, m); n.Title != "Voice Disabled" || n.Severity != app.SeverityWarning {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestNoticesExpireByIDAndAreCapped(t *testing.T) {
	m, _ := newTestModel(t, model.NewState())
	for i := 0; i < 5; i++ {
		m.showNotice(app.WarningNotice("w", "x"))
	}
	if len(m.notices) != maxNotices {
		t.Fatalf("expected %d notices, got %d", maxNotices, len(m.notices))
	}

	oldest := m.notices[0].id
	m.Update(noticeExpiredMsg{id: oldest})
	if len(m.notices) != maxNotices-1 {
		t.Fatalf("expected one notice to expire, got %d", len(m.notices))
	}
	for _, n := range m.notices {
		if n.id == oldest {
			t.Fatalf("expired notice still shown")
		}
	}

	m.Update(noticeExpiredMsg{id: 999})
	if len(m.notices) != maxNotices-1 {
		t.Fatalf("unknown id must not drop notices")
	}
}

func TestNotificationsOffSuppressesSuccess(t *testing.T) {
	state := model.NewState()
	state.Settings.Notifications = false
	m, _ := newTestModel(t, state)

	if cmd := m.showNotice(app.Notice{Title: "ok", Severity: app.SeveritySuccess}); cmd != nil {
		t.Fatalf("expected success notice to be suppressed")
	}
	if len(m.notices) != 0 {
		t.Fatalf("expected no notices, got %d", len(m.notices))
	}
	m.showNotice(app.WarningNotice("careful", "still shown"))
	if len(m.notices) != 1 {
		t.Fatalf("expected warning to be shown")
	}
}

func TestSaveFailureKeepsStateAndWarns(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())
	saver.err = errors.New("disk full")

	press(m, "a", "x", "enter")
	if len(m.svc.State().Tasks) != 1 {
		t.Fatalf("expected in-memory task despite failed save")
	}
	if n := lastNotice(t, m); n.Title != "Storage Unavailable" || n.Severity != app.SeverityWarning {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestTabCyclesViewsAndRemembersLast(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	want := []string{model.ViewTasks, model.ViewAnalytics, model.ViewToday}
	for i, v := range want {
		press(m, "tab")
		if m.view != v {
			t.Fatalf("step %d: expected view %s, got %s", i, v, m.view)
		}
		if saver.last.Metadata.Session.View != v {
			t.Fatalf("step %d: expected saved view %s, got %s", i, v, saver.last.Metadata.Session.View)
		}
	}
}

func TestAutosaveAndClockMessages(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	m.Update(autosaveMsg{})
	if saver.saves != 1 {
		t.Fatalf("expected autosave to save, got %d", saver.saves)
	}

	later := testNow.Add(time.Hour)
	m.Update(clockMsg{now: later})
	if !m.now.Equal(later) {
		t.Fatalf("expected clock to advance to %v, got %v", later, m.now)
	}
}

func TestQuitSaves(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if saver.saves != 1 {
		t.Fatalf("expected state to be saved on quit")
	}
}

func TestSettingsFormUpdatesSettings(t *testing.T) {
	m, saver := newTestModel(t, model.NewState())

	press(m, "s")
	if m.mode != modeSettings {
		t.Fatalf("expected settings form")
	}
	// Notifications toggle is the second field.
	press(m, "tab", " ", "enter")

	if m.svc.Settings().Notifications {
		t.Fatalf("expected notifications to be turned off")
	}
	if saver.saves != 1 {
		t.Fatalf("expected settings to be saved")
	}
}
