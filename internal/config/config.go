// Package config loads user settings from ~/.config/dayplan/config.yaml.
// A missing file yields the defaults; a malformed or out-of-range file is
// an error so a typo never silently changes the day's schedule.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "dayplan"
	configFile = "config.yaml"
)

// Config holds the knobs for planning a day.
type Config struct {
	// WorkStart and WorkEnd bound the day in HH:MM, local time.
	WorkStart string `yaml:"work_start"`
	WorkEnd   string `yaml:"work_end"`
	// BufferMinutes shrinks every free window at both edges.
	BufferMinutes int `yaml:"buffer_minutes"`
	// MorningCutoff (HH:MM) ends the block held for the top-ranked task.
	MorningCutoff string `yaml:"morning_cutoff"`
	// CalendarID selects the Google calendar queried for busy times.
	CalendarID string `yaml:"calendar_id"`
	// ProcrastinationThreshold is the mention count that flags a task.
	ProcrastinationThreshold int `yaml:"procrastination_threshold"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		WorkStart:                "09:00",
		WorkEnd:                  "18:00",
		BufferMinutes:            15,
		MorningCutoff:            "10:00",
		CalendarID:               "primary",
		ProcrastinationThreshold: 3,
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// Load reads the config file, falling back to defaults when absent.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0600)
}

// Validate checks field ranges and clock formats.
func (c *Config) Validate() error {
	start, err := parseClock(c.WorkStart)
	if err != nil {
		return fmt.Errorf("work_start: %w", err)
	}
	end, err := parseClock(c.WorkEnd)
	if err != nil {
		return fmt.Errorf("work_end: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("work_start %q must be before work_end %q", c.WorkStart, c.WorkEnd)
	}
	if _, err := parseClock(c.MorningCutoff); err != nil {
		return fmt.Errorf("morning_cutoff: %w", err)
	}
	if c.BufferMinutes < 0 {
		return fmt.Errorf("buffer_minutes must be >= 0, got %d", c.BufferMinutes)
	}
	if c.ProcrastinationThreshold < 1 {
		return fmt.Errorf("procrastination_threshold must be >= 1, got %d", c.ProcrastinationThreshold)
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t, nil
}
