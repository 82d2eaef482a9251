package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nexus-daily/model"
)

var (
	ErrEmptyTitle       = errors.New("task title must not be empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTask      = errors.New("invalid task")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrInvalidView      = errors.New("invalid view")
	ErrInvalidFocusTime = errors.New("focus minutes must be positive")
)

// Service owns the in-memory state and is the only place it is mutated.
// It is not safe for concurrent use; callers drive it from a single loop.
type Service struct {
	state  model.AppState
	now    func() time.Time
	lastID int64
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service with a copy of the provided state.
func NewService(state model.AppState, opts ...Option) *Service {
	s := &Service{state: normalizeState(copyState(state)), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range s.state.Tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

// State returns a copy of current state.
func (s *Service) State() model.AppState {
	return copyState(s.state)
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the current calendar day.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

// Tasks returns all tasks ordered by priority.
func (s *Service) Tasks() []model.Task {
	return SelectAll(copyTasks(s.state.Tasks))
}

// TodayTasks returns the daily view for the current day.
func (s *Service) TodayTasks() []model.Task {
	return SelectToday(copyTasks(s.state.Tasks), s.Today())
}

// GetTask returns a task by id.
func (s *Service) GetTask(id int64) (model.Task, error) {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return cloneTask(t), nil
		}
	}
	return model.Task{}, ErrTaskNotFound
}

// Stats returns the counters as of today. Weekly counters from an earlier week
// read as zero; the stored record is only rolled over by the next event.
func (s *Service) Stats() model.Stats {
	return TrackWeek(s.state.Stats, s.Today())
}

func (s *Service) Settings() model.Settings {
	return s.state.Settings
}

// TodayProgress counts completed and total tasks in the daily view.
func (s *Service) TodayProgress() (completed, total int) {
	today := s.TodayTasks()
	for _, t := range today {
		if t.Completed {
			completed++
		}
	}
	return completed, len(today)
}

// OpenCount is the number of tasks not yet completed.
func (s *Service) OpenCount() int {
	n := 0
	for _, t := range s.state.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// QuickAdd creates a medium-priority task due today with an inferred category.
func (s *Service) QuickAdd(title string) (model.Task, Notice, error) {
	title, err := ValidateTaskInput(title)
	if err != nil {
		return model.Task{}, Notice{}, err
	}
	now := s.now()
	task := model.Task{
		ID:        s.newID(now),
		Title:     title,
		Category:  InferCategory(title),
		Priority:  model.PriorityMedium,
		DueDate:   model.DateOf(now),
		CreatedAt: now,
	}
	s.state.Tasks = append(s.state.Tasks, task)
	return cloneTask(task), success("Task Added!", "%q added to your tasks", title), nil
}

// CreateTask creates a task from form input.
func (s *Service) CreateTask(in TaskInput) (model.Task, Notice, error) {
	in, err := in.normalize()
	if err != nil {
		return model.Task{}, Notice{}, err
	}
	now := s.now()
	task := model.Task{
		ID:          s.newID(now),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		DueDate:     model.Date(in.DueDate),
		DueTime:     in.DueTime,
		CreatedAt:   now,
	}
	s.state.Tasks = append(s.state.Tasks, task)
	return cloneTask(task), success("Task Created!", "%q has been added to your tasks", task.Title), nil
}

// UpdateTask replaces the editable fields of a task. Identity, creation time and
// completion state are kept.
func (s *Service) UpdateTask(id int64, in TaskInput) (model.Task, Notice, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		return model.Task{}, Notice{}, ErrTaskNotFound
	}
	in, err := in.normalize()
	if err != nil {
		return model.Task{}, Notice{}, err
	}
	t := &s.state.Tasks[idx]
	t.Title = in.Title
	t.Description = in.Description
	t.Category = in.Category
	t.Priority = in.Priority
	t.DueDate = model.Date(in.DueDate)
	t.DueTime = in.DueTime
	return cloneTask(*t), success("Task Updated!", "Your changes have been saved"), nil
}

// ToggleComplete flips completion. Completing a task advances the streak;
// reopening it never lowers any counter.
func (s *Service) ToggleComplete(id int64) (model.Task, Notice, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		return model.Task{}, Notice{}, ErrTaskNotFound
	}
	t := &s.state.Tasks[idx]
	t.Completed = !t.Completed
	if !t.Completed {
		t.CompletedAt = nil
		return cloneTask(*t), info("Task Reopened", "%q marked as incomplete", t.Title), nil
	}

	now := s.now()
	t.CompletedAt = &now
	stats := RecordCompletion(s.state.Stats, now)
	stats = TrackWeek(stats, model.DateOf(now))
	stats.WeeklyTasksCompleted++
	s.state.Stats = stats
	return cloneTask(*t), success("Task Completed!", "Great job finishing %q!", t.Title), nil
}

// DeleteTask removes a task permanently.
func (s *Service) DeleteTask(id int64) (Notice, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		return Notice{}, ErrTaskNotFound
	}
	title := s.state.Tasks[idx].Title
	s.state.Tasks = append(s.state.Tasks[:idx], s.state.Tasks[idx+1:]...)
	return info("Task Deleted", "%q has been removed", title), nil
}

// UpdateSettings validates and stores new settings.
func (s *Service) UpdateSettings(settings model.Settings) (Notice, error) {
	settings.Theme = strings.ToLower(strings.TrimSpace(settings.Theme))
	if err := ValidateSettings(settings); err != nil {
		return Notice{}, err
	}
	s.state.Settings = settings
	return success("Settings Saved", "Your preferences have been updated"), nil
}

// FocusStarted builds the notice for a new focus session, optionally bound to a task.
func (s *Service) FocusStarted(taskID int64) Notice {
	if taskID != 0 {
		if t, err := s.GetTask(taskID); err == nil {
			return success("Focus Timer", "Timer started for %q", t.Title)
		}
	}
	return success("Focus Timer Started", "%d minutes of focused work ahead!", s.state.Settings.PomodoroLength)
}

// CompleteFocusSession credits a finished focus session to the weekly counters.
func (s *Service) CompleteFocusSession(minutes int) (Notice, error) {
	if minutes <= 0 {
		return Notice{}, fmt.Errorf("%w: %d", ErrInvalidFocusTime, minutes)
	}
	stats := TrackWeek(s.state.Stats, s.Today())
	stats.WeeklyFocusTime += minutes
	s.state.Stats = stats
	return success("Focus Session Complete!", "Great job! Take a %d-minute break.", s.state.Settings.ShortBreak), nil
}

// SetView records the last active view so it can be restored on restart.
func (s *Service) SetView(view string) error {
	switch view {
	case model.ViewToday, model.ViewTasks, model.ViewAnalytics:
		s.state.Metadata.Session.View = view
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
}

func (s *Service) MarkOnboardingSeen() {
	s.state.Metadata.FirstRun = false
}

func (s *Service) indexOf(id int64) int {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// newID returns a millisecond creation timestamp, bumped to stay strictly increasing.
func (s *Service) newID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func normalizeState(state model.AppState) model.AppState {
	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if state.Metadata.Version == 0 {
		state.Metadata.Version = 1
	}
	switch state.Metadata.Session.View {
	case model.ViewToday, model.ViewTasks, model.ViewAnalytics:
	default:
		state.Metadata.Session.View = model.ViewToday
	}

	for i := range state.Tasks {
		t := &state.Tasks[i]
		if !t.Category.Valid() {
			t.Category = model.CategoryPersonal
		}
		if t.Completed && t.CompletedAt == nil {
			ts := t.CreatedAt
			t.CompletedAt = &ts
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
	}

	defaults := model.DefaultSettings()
	if state.Settings == (model.Settings{}) {
		state.Settings = defaults
	}
	if state.Settings.Theme == "" {
		state.Settings.Theme = defaults.Theme
	}
	if state.Settings.PomodoroLength <= 0 {
		state.Settings.PomodoroLength = defaults.PomodoroLength
	}
	if state.Settings.ShortBreak <= 0 {
		state.Settings.ShortBreak = defaults.ShortBreak
	}
	if state.Settings.LongBreak <= 0 {
		state.Settings.LongBreak = defaults.LongBreak
	}
	if state.Settings.WorkingHours.Start == "" {
		state.Settings.WorkingHours.Start = defaults.WorkingHours.Start
	}
	if state.Settings.WorkingHours.End == "" {
		state.Settings.WorkingHours.End = defaults.WorkingHours.End
	}

	if state.Stats.LongestStreak < state.Stats.CurrentStreak {
		state.Stats.LongestStreak = state.Stats.CurrentStreak
	}
	return state
}

func copyState(state model.AppState) model.AppState {
	out := state
	out.Tasks = copyTasks(state.Tasks)
	return out
}

func copyTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}

func cloneTask(t model.Task) model.Task {
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		t.CompletedAt = &ts
	}
	return t
}
