package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nexus-daily/app"
	"nexus-daily/focus"
	"nexus-daily/model"
	"nexus-daily/voice"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeQuickAdd
	modeTaskForm
	modeSettings
	modeConfirmDelete
)

var views = []string{model.ViewToday, model.ViewTasks, model.ViewAnalytics}

// Saver persists a snapshot of the state.
type Saver interface {
	Save(state model.AppState) error
}

type (
	timerTickMsg struct {
		session string
	}
	noticeExpiredMsg struct {
		id int
	}
	voiceResultMsg struct {
		seq    int
		phrase string
		err    error
	}
	autosaveMsg struct{}
	clockMsg    struct {
		now time.Time
	}
)

type shownNotice struct {
	id int
	app.Notice
}

// Options configures a Model. Zero durations fall back to defaults.
type Options struct {
	Recognizer    voice.Recognizer
	NoticeTTL     time.Duration
	TickInterval  time.Duration
	StartupNotice string
}

const maxNotices = 3

type Model struct {
	svc        *app.Service
	saver      Saver
	recognizer voice.Recognizer

	noticeTTL    time.Duration
	tickInterval time.Duration

	view   string
	mode   uiMode
	cursor int

	quick textinput.Model
	form  *form
	// editID is the task being edited by the form, 0 when creating.
	editID int64

	confirmID   int64
	confirmName string

	keys     keyMap
	help     help.Model
	showHelp bool

	notices  []shownNotice
	noticeID int
	startup  string

	timer focus.Timer

	listening    bool
	listenSeq    int
	cancelListen context.CancelFunc

	now    time.Time
	width  int
	height int
}

func NewModel(svc *app.Service, saver Saver, opts Options) *Model {
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 5 * time.Second
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Recognizer == nil {
		opts.Recognizer = voice.Simulated{Phrase: voice.DefaultPhrase, Delay: voice.DefaultDelay}
	}

	quick := textinput.New()
	quick.Placeholder = "Add a task for today…"
	quick.CharLimit = 200
	quick.Prompt = "+ "

	m := &Model{
		svc:          svc,
		saver:        saver,
		recognizer:   opts.Recognizer,
		noticeTTL:    opts.NoticeTTL,
		tickInterval: opts.TickInterval,
		view:         svc.State().Metadata.Session.View,
		mode:         modeNormal,
		quick:        quick,
		keys:         defaultKeyMap(),
		help:         help.New(),
		startup:      strings.TrimSpace(opts.StartupNotice),
		now:          svc.Now(),
	}
	m.ensureSelection()
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.startup != "" {
		return m.showNotice(app.WarningNotice("Data Recovered", m.startup))
	}
	return m.showNotice(app.Notice{Title: "Welcome!", Message: "Ready to be productive?", Severity: app.SeveritySuccess})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case timerTickMsg:
		return m, m.handleTimerTick(msg)
	case noticeExpiredMsg:
		m.dropNotice(msg.id)
	case voiceResultMsg:
		return m, m.handleVoiceResult(msg)
	case autosaveMsg:
		return m, m.saveQuietly()
	case clockMsg:
		m.now = msg.now
		m.ensureSelection()
	case tea.KeyMsg:
		switch m.mode {
		case modeQuickAdd:
			return m, m.updateQuickAdd(msg)
		case modeTaskForm, modeSettings:
			return m, m.updateForm(msg)
		case modeConfirmDelete:
			return m, m.updateConfirmMode(msg)
		default:
			return m, m.updateNormalMode(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
			return nil
		}
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopListening()
		_ = m.saver.Save(m.svc.State())
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NextView):
		cmd = m.nextView()
	case key.Matches(msg, m.keys.QuickAdd):
		m.mode = modeQuickAdd
		m.quick.SetValue("")
		cmd = m.quick.Focus()
	case key.Matches(msg, m.keys.NewTask):
		cmd = m.openTaskForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selectedTask(); ok {
			cmd = m.openTaskForm(&t)
		}
	case key.Matches(msg, m.keys.Toggle):
		cmd = m.toggleSelected()
	case key.Matches(msg, m.keys.Delete):
		m.startDeleteConfirm()
	case key.Matches(msg, m.keys.Timer):
		cmd = m.toggleTimer(0)
	case key.Matches(msg, m.keys.TaskTimer):
		if t, ok := m.selectedTask(); ok {
			cmd = m.toggleTimer(t.ID)
		}
	case key.Matches(msg, m.keys.Voice):
		cmd = m.toggleVoice()
	case key.Matches(msg, m.keys.Settings):
		m.form = newSettingsForm(m.svc.Settings())
		m.mode = modeSettings
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	m.ensureSelection()
	return cmd
}

func (m *Model) updateQuickAdd(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeQuickAdd()
		return nil
	case "enter":
		task, n, err := m.svc.QuickAdd(m.quick.Value())
		if err != nil {
			return m.showNotice(app.Notice{Title: "Error", Message: "Please enter a task title", Severity: app.SeverityError})
		}
		m.closeQuickAdd()
		m.selectTask(task.ID)
		return m.persist(n)
	}
	var cmd tea.Cmd
	m.quick, cmd = m.quick.Update(msg)
	return cmd
}

func (m *Model) closeQuickAdd() {
	m.quick.Blur()
	m.quick.SetValue("")
	m.mode = modeNormal
}

func (m *Model) openTaskForm(task *model.Task) tea.Cmd {
	m.editID = 0
	if task != nil {
		m.editID = task.ID
	}
	m.form = newTaskForm(task, m.svc.Today())
	m.mode = modeTaskForm
	return textinput.Blink
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeForm()
		return nil
	case "enter":
		if m.mode == modeSettings {
			return m.submitSettings()
		}
		return m.submitTask()
	}
	return m.form.update(msg)
}

func (m *Model) closeForm() {
	m.form = nil
	m.editID = 0
	m.mode = modeNormal
}

func (m *Model) submitTask() tea.Cmd {
	in := taskInputFrom(m.form)
	var (
		task model.Task
		n    app.Notice
		err  error
	)
	if m.editID != 0 {
		task, n, err = m.svc.UpdateTask(m.editID, in)
	} else {
		task, n, err = m.svc.CreateTask(in)
	}
	switch {
	case errors.Is(err, app.ErrTaskNotFound):
		m.closeForm()
		return nil
	case errors.Is(err, app.ErrEmptyTitle):
		m.form.err = "Please enter a task title"
		return nil
	case err != nil:
		m.form.err = err.Error()
		return nil
	}
	m.closeForm()
	m.selectTask(task.ID)
	return m.persist(n)
}

func (m *Model) submitSettings() tea.Cmd {
	settings, err := settingsFrom(m.form)
	if err != nil {
		m.form.err = err.Error()
		return nil
	}
	n, err := m.svc.UpdateSettings(settings)
	if err != nil {
		m.form.err = err.Error()
		return nil
	}
	m.closeForm()
	if !settings.VoiceEnabled {
		m.stopListening()
	}
	return m.persist(n)
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) tea.Cmd {
	switch strings.ToLower(msg.String()) {
	case "y":
		id := m.confirmID
		m.mode = modeNormal
		m.confirmID = 0
		m.confirmName = ""
		n, err := m.svc.DeleteTask(id)
		if err != nil {
			return nil
		}
		if m.timer.Running() && m.timer.TaskID() == id {
			m.timer.Stop()
		}
		m.ensureSelection()
		return m.persist(n)
	case "n", "esc", "enter":
		m.mode = modeNormal
		m.confirmID = 0
		m.confirmName = ""
	}
	return nil
}

func (m *Model) startDeleteConfirm() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	m.confirmID = t.ID
	m.confirmName = t.Title
	m.mode = modeConfirmDelete
}

func (m *Model) toggleSelected() tea.Cmd {
	t, ok := m.selectedTask()
	if !ok {
		return nil
	}
	task, n, err := m.svc.ToggleComplete(t.ID)
	if err != nil {
		return nil
	}
	m.selectTask(task.ID)
	return m.persist(n)
}

func (m *Model) nextView() tea.Cmd {
	next := views[0]
	for i, v := range views {
		if v == m.view {
			next = views[(i+1)%len(views)]
		}
	}
	m.view = next
	m.cursor = 0
	_ = m.svc.SetView(next)
	return m.saveQuietly()
}

// toggleTimer stops a running session or starts a new one, optionally for a task.
func (m *Model) toggleTimer(taskID int64) tea.Cmd {
	if m.timer.Running() {
		m.timer.Stop()
		return nil
	}
	length := time.Duration(m.svc.Settings().PomodoroLength) * time.Minute
	session, err := m.timer.Start(length, taskID)
	if err != nil {
		return m.showNotice(app.ErrorNotice("Focus Timer", err))
	}
	return tea.Batch(m.showNotice(m.svc.FocusStarted(taskID)), m.tick(session))
}

func (m *Model) tick(session string) tea.Cmd {
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return timerTickMsg{session: session}
	})
}

func (m *Model) handleTimerTick(msg timerTickMsg) tea.Cmd {
	switch m.timer.Tick(msg.session, m.tickInterval) {
	case focus.Ticked:
		return m.tick(msg.session)
	case focus.Completed:
		minutes := int(m.timer.Length() / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		n, err := m.svc.CompleteFocusSession(minutes)
		if err != nil {
			return m.showNotice(app.ErrorNotice("Focus Timer", err))
		}
		return m.persist(n)
	default:
		return nil
	}
}

func (m *Model) toggleVoice() tea.Cmd {
	if m.listening {
		m.stopListening()
		return nil
	}
	if !m.svc.Settings().VoiceEnabled {
		return m.showNotice(app.WarningNotice("Voice Disabled", "Enable voice input in settings (s)"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.listening = true
	m.listenSeq++
	m.cancelListen = cancel
	seq := m.listenSeq
	rec := m.recognizer
	return func() tea.Msg {
		phrase, err := rec.Listen(ctx)
		return voiceResultMsg{seq: seq, phrase: phrase, err: err}
	}
}

func (m *Model) stopListening() {
	if m.cancelListen != nil {
		m.cancelListen()
		m.cancelListen = nil
	}
	m.listening = false
	m.listenSeq++
}

func (m *Model) handleVoiceResult(msg voiceResultMsg) tea.Cmd {
	if !m.listening || msg.seq != m.listenSeq {
		return nil
	}
	m.stopListening()
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		return m.showNotice(app.ErrorNotice("Voice Command", msg.err))
	}

	cmd := voice.Parse(msg.phrase)
	switch cmd.Action {
	case voice.ActionAddTask:
		processed := app.Notice{Title: "Voice Command", Message: "Task command processed", Severity: app.SeveritySuccess}
		if cmd.Title == "" {
			open := m.openTaskForm(nil)
			return tea.Batch(open, m.showNotice(processed))
		}
		task, n, err := m.svc.QuickAdd(cmd.Title)
		if err != nil {
			return m.showNotice(app.ErrorNotice("Error", err))
		}
		m.selectTask(task.ID)
		saved := m.persist(n)
		return tea.Batch(saved, m.showNotice(processed))
	case voice.ActionStartTimer:
		var start tea.Cmd
		if !m.timer.Running() {
			start = m.toggleTimer(0)
		}
		return tea.Batch(start, m.showNotice(app.Notice{Title: "Voice Command", Message: "Starting focus timer", Severity: app.SeveritySuccess}))
	default:
		return m.showNotice(app.Notice{Title: "Voice Command", Message: voice.HelpMessage, Severity: app.SeverityInfo})
	}
}

// persist saves after a mutation and shows n, or a warning when the save fails.
// In-memory state stays authoritative either way.
func (m *Model) persist(n app.Notice) tea.Cmd {
	m.svc.MarkOnboardingSeen()
	if err := m.saver.Save(m.svc.State()); err != nil {
		return m.showNotice(app.WarningNotice("Storage Unavailable", "Changes are kept for this session but could not be saved"))
	}
	return m.showNotice(n)
}

func (m *Model) saveQuietly() tea.Cmd {
	if err := m.saver.Save(m.svc.State()); err != nil {
		return m.showNotice(app.WarningNotice("Storage Unavailable", "Autosave failed; changes are kept for this session"))
	}
	return nil
}

// showNotice queues n and schedules its removal. With notifications turned
// off only warnings and errors are shown.
func (m *Model) showNotice(n app.Notice) tea.Cmd {
	if !m.svc.Settings().Notifications && (n.Severity == app.SeveritySuccess || n.Severity == app.SeverityInfo) {
		return nil
	}
	m.noticeID++
	id := m.noticeID
	m.notices = append(m.notices, shownNotice{id: id, Notice: n})
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (m *Model) dropNotice(id int) {
	for i, n := range m.notices {
		if n.id == id {
			m.notices = append(m.notices[:i], m.notices[i+1:]...)
			return
		}
	}
}

func (m *Model) visibleTasks() []model.Task {
	switch m.view {
	case model.ViewToday:
		return m.svc.TodayTasks()
	case model.ViewTasks:
		return m.svc.Tasks()
	default:
		return nil
	}
}

func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) selectTask(id int64) {
	for i, t := range m.visibleTasks() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.ensureSelection()
}

func (m *Model) moveCursor(delta int) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(tasks)-1)
}

func (m *Model) ensureSelection() {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(tasks)-1)
}

func (m *Model) shouldShowOnboarding() bool {
	st := m.svc.State()
	return st.Metadata.FirstRun && len(st.Tasks) == 0
}
