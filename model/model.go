package model

import "time"

// Category groups tasks by life area.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning:
		return true
	}
	return false
}

// Priority is an ordered task priority: low < medium < high < urgent.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Rank returns the sort weight of p. Unknown or empty priorities rank 0.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Task is a single to-do item.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	DueDate     Date       `json:"dueDate,omitempty"`
	DueTime     string     `json:"dueTime,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Stats tracks completion streaks and counters.
type Stats struct {
	CurrentStreak        int  `json:"currentStreak"`
	LongestStreak        int  `json:"longestStreak"`
	TotalTasksCompleted  int  `json:"totalTasksCompleted"`
	LastCompletionDate   Date `json:"lastCompletionDate,omitempty"`
	WeeklyTasksCompleted int  `json:"weeklyTasksCompleted"`
	// WeeklyFocusTime is in minutes.
	WeeklyFocusTime int  `json:"weeklyFocusTime"`
	WeekStart       Date `json:"weekStart,omitempty"`
}

const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// WorkingHours is a daily window in HH:MM clock times.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Settings is user configuration persisted with the state.
// Durations are in minutes.
type Settings struct {
	Theme          string       `json:"theme"`
	Notifications  bool         `json:"notifications"`
	VoiceEnabled   bool         `json:"voiceEnabled"`
	PomodoroLength int          `json:"pomodoroLength"`
	ShortBreak     int          `json:"shortBreak"`
	LongBreak      int          `json:"longBreak"`
	WorkingHours   WorkingHours `json:"workingHours"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		Theme:          ThemeAuto,
		Notifications:  true,
		VoiceEnabled:   true,
		PomodoroLength: 25,
		ShortBreak:     5,
		LongBreak:      15,
		WorkingHours: WorkingHours{
			Start: "09:00",
			End:   "17:00",
		},
	}
}

const (
	ViewToday     = "today"
	ViewTasks     = "tasks"
	ViewAnalytics = "analytics"
)

// SessionContext stores UI context that should survive restarts.
type SessionContext struct {
	View string `json:"view,omitempty"`
}

// Metadata is app-level metadata persisted alongside the state.
type Metadata struct {
	Version  int            `json:"version"`
	FirstRun bool           `json:"firstRun"`
	Session  SessionContext `json:"session,omitempty"`
}

// AppState is the full persisted state.
type AppState struct {
	Tasks    []Task   `json:"tasks"`
	Settings Settings `json:"settings"`
	Stats    Stats    `json:"stats"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// NewState returns an initialized empty state.
func NewState() AppState {
	return AppState{
		Tasks:    []Task{},
		Settings: DefaultSettings(),
		Stats:    Stats{},
		Metadata: Metadata{
			Version:  1,
			FirstRun: true,
			Session: SessionContext{
				View: ViewToday,
			},
		},
	}
}
