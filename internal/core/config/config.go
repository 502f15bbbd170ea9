package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/trackhq/track/internal/core/reminder"
)

// DefaultReminderTemplate renders the modal body. Fields: title, start,
// end, reminder, type.
const DefaultReminderTemplate = `{{title}} starts in {{reminder}} minutes!`

type Config struct {
	DBPath           string
	PollInterval     time.Duration
	DefaultSnoozeMin int
	ReminderTemplate string
	SoundsDir        string            // directory of per-type sound files
	Sounds           map[string]string // type -> file name override
}

type tomlConfig struct {
	DBPath           string            `toml:"db_path"`
	PollInterval     string            `toml:"poll_interval"`
	DefaultSnoozeMin int               `toml:"default_snooze_minutes"`
	ReminderTemplate string            `toml:"reminder_template"`
	SoundsDir        string            `toml:"sounds_dir"`
	Sounds           map[string]string `toml:"sounds"`
}

// Load reads config from ~/.config/track/config.toml. A missing file, or a
// missing home directory, just means defaults.
func Load() (*Config, error) {
	cfg := &Config{
		PollInterval:     reminder.DefaultInterval,
		DefaultSnoozeMin: 5,
		ReminderTemplate: DefaultReminderTemplate,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}
	cfg.DBPath = filepath.Join(home, ".config", "track", "timetable.db")

	tomlPath := filepath.Join(home, ".config", "track", "config.toml")
	if _, err := os.Stat(tomlPath); err != nil {
		return cfg, nil
	}

	var tc tomlConfig
	if _, err := toml.DecodeFile(tomlPath, &tc); err != nil {
		return cfg, nil // Unreadable config is not fatal; defaults win
	}
	cfg.apply(tc)
	return cfg, nil
}

func (cfg *Config) apply(tc tomlConfig) {
	if tc.DBPath != "" {
		cfg.DBPath = tc.DBPath
	}
	if tc.PollInterval != "" {
		if d, err := time.ParseDuration(tc.PollInterval); err == nil && d > 0 {
			cfg.PollInterval = d
		}
	}
	if tc.DefaultSnoozeMin > 0 {
		cfg.DefaultSnoozeMin = tc.DefaultSnoozeMin
	}
	if tc.ReminderTemplate != "" {
		cfg.ReminderTemplate = tc.ReminderTemplate
	}
	if tc.SoundsDir != "" {
		cfg.SoundsDir = tc.SoundsDir
	}
	if len(tc.Sounds) > 0 {
		cfg.Sounds = tc.Sounds
	}
}
