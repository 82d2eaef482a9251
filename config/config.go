package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"nexus-daily/model"
)

// Config is the application configuration. Defaults seed the settings of a
// fresh state; once a state exists its stored settings win.
type Config struct {
	StatePath        string        `yaml:"state_path" mapstructure:"state_path" validate:"required"`
	Backend          string        `yaml:"backend" mapstructure:"backend" validate:"oneof=json sqlite"`
	LogFile          string        `yaml:"log_file" mapstructure:"log_file"`
	AutosaveSchedule string        `yaml:"autosave_schedule" mapstructure:"autosave_schedule" validate:"required"`
	ClockSchedule    string        `yaml:"clock_schedule" mapstructure:"clock_schedule" validate:"required"`
	NoticeTTL        time.Duration `yaml:"notice_ttl" mapstructure:"notice_ttl" validate:"gt=0"`

	Voice    VoiceConfig    `yaml:"voice" mapstructure:"voice"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
}

// VoiceConfig drives the simulated recognizer.
type VoiceConfig struct {
	Phrase string        `yaml:"phrase" mapstructure:"phrase"`
	Delay  time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
}

type DefaultsConfig struct {
	Theme          string             `yaml:"theme" mapstructure:"theme" validate:"oneof=auto light dark"`
	Notifications  bool               `yaml:"notifications" mapstructure:"notifications"`
	VoiceEnabled   bool               `yaml:"voice_enabled" mapstructure:"voice_enabled"`
	PomodoroLength int                `yaml:"pomodoro_length" mapstructure:"pomodoro_length" validate:"min=1,max=240"`
	ShortBreak     int                `yaml:"short_break" mapstructure:"short_break" validate:"min=1,max=120"`
	LongBreak      int                `yaml:"long_break" mapstructure:"long_break" validate:"min=1,max=240"`
	WorkingHours   WorkingHoursConfig `yaml:"working_hours" mapstructure:"working_hours"`
}

type WorkingHoursConfig struct {
	Start string `yaml:"start" mapstructure:"start" validate:"datetime=15:04"`
	End   string `yaml:"end" mapstructure:"end" validate:"datetime=15:04"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges and that both schedules parse as cron specs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for name, spec := range map[string]string{
		"autosave_schedule": c.AutosaveSchedule,
		"clock_schedule":    c.ClockSchedule,
	} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("invalid config: %s: %w", name, err)
		}
	}
	return nil
}

// Settings converts the configured defaults into a settings record.
func (c *Config) Settings() model.Settings {
	return model.Settings{
		Theme:          c.Defaults.Theme,
		Notifications:  c.Defaults.Notifications,
		VoiceEnabled:   c.Defaults.VoiceEnabled,
		PomodoroLength: c.Defaults.PomodoroLength,
		ShortBreak:     c.Defaults.ShortBreak,
		LongBreak:      c.Defaults.LongBreak,
		WorkingHours: model.WorkingHours{
			Start: c.Defaults.WorkingHours.Start,
			End:   c.Defaults.WorkingHours.End,
		},
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "nexus-daily")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nexus-daily")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
