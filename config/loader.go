package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. NEXUS_DAILY_BACKEND.
const EnvPrefix = "NEXUS_DAILY"

// Load merges, lowest precedence first: defaults, the YAML file at path,
// variables from a .env file in the working directory, and the environment.
// An empty path means DefaultPath(), which may be absent. An explicit path
// must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	path = ExpandHome(path)

	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.StatePath = ExpandHome(cfg.StatePath)
	cfg.LogFile = ExpandHome(cfg.LogFile)
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return v.ReadInConfig()
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("state_path", cfg.StatePath)
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("autosave_schedule", cfg.AutosaveSchedule)
	v.SetDefault("clock_schedule", cfg.ClockSchedule)
	v.SetDefault("notice_ttl", cfg.NoticeTTL)
	v.SetDefault("voice.phrase", cfg.Voice.Phrase)
	v.SetDefault("voice.delay", cfg.Voice.Delay)
	v.SetDefault("defaults.theme", cfg.Defaults.Theme)
	v.SetDefault("defaults.notifications", cfg.Defaults.Notifications)
	v.SetDefault("defaults.voice_enabled", cfg.Defaults.VoiceEnabled)
	v.SetDefault("defaults.pomodoro_length", cfg.Defaults.PomodoroLength)
	v.SetDefault("defaults.short_break", cfg.Defaults.ShortBreak)
	v.SetDefault("defaults.long_break", cfg.Defaults.LongBreak)
	v.SetDefault("defaults.working_hours.start", cfg.Defaults.WorkingHours.Start)
	v.SetDefault("defaults.working_hours.end", cfg.Defaults.WorkingHours.End)
}
