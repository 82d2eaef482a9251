package config

import (
	"os"
	"path/filepath"
	"time"

	"nexus-daily/model"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dir := Dir()
	s := model.DefaultSettings()
	return &Config{
		StatePath:        filepath.Join(dir, "state.json"),
		Backend:          "json",
		LogFile:          filepath.Join(dir, "nexus-daily.log"),
		AutosaveSchedule: "@every 5m",
		ClockSchedule:    "@every 1m",
		NoticeTTL:        5 * time.Second,
		Voice: VoiceConfig{
			Phrase: "Add task review weekly reports",
			Delay:  3 * time.Second,
		},
		Defaults: DefaultsConfig{
			Theme:          s.Theme,
			Notifications:  s.Notifications,
			VoiceEnabled:   s.VoiceEnabled,
			PomodoroLength: s.PomodoroLength,
			ShortBreak:     s.ShortBreak,
			LongBreak:      s.LongBreak,
			WorkingHours: WorkingHoursConfig{
				Start: s.WorkingHours.Start,
				End:   s.WorkingHours.End,
			},
		},
	}
}

// WriteDefault writes a commented default configuration file.
func WriteDefault(path string) error {
	content := `# nexus-daily configuration
# Every key can also be set with a NEXUS_DAILY_ environment variable,
# e.g. NEXUS_DAILY_BACKEND=sqlite or NEXUS_DAILY_DEFAULTS_POMODORO_LENGTH=50.

# Where tasks, settings and stats are kept
# state_path: ~/.config/nexus-daily/state.json

# "json" (file with backups) or "sqlite"
backend: json

# Log file; the terminal UI owns stdout
# log_file: ~/.config/nexus-daily/nexus-daily.log

# Cron specs for periodic jobs
autosave_schedule: "@every 5m"
clock_schedule: "@every 1m"

# How long notices stay on screen
notice_ttl: 5s

# Simulated voice input
voice:
  phrase: "Add task review weekly reports"
  delay: 3s

# Settings for a fresh install (minutes for durations)
defaults:
  theme: auto  # auto, light or dark
  notifications: true
  voice_enabled: true
  pomodoro_length: 25
  short_break: 5
  long_break: 15
  working_hours:
    start: "09:00"
    end: "17:00"
`
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
