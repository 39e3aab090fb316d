//nolint:testpackage // Tests require internal access for thorough testing
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.WorkStart != "09:00" || cfg.WorkEnd != "18:00" {
		t.Errorf("work hours = %s-%s, want 09:00-18:00", cfg.WorkStart, cfg.WorkEnd)
	}
	if cfg.BufferMinutes != 15 {
		t.Errorf("BufferMinutes = %d, want 15", cfg.BufferMinutes)
	}
	if cfg.MorningCutoff != "10:00" {
		t.Errorf("MorningCutoff = %q, want 10:00", cfg.MorningCutoff)
	}
	if cfg.ProcrastinationThreshold != 3 {
		t.Errorf("ProcrastinationThreshold = %d, want 3", cfg.ProcrastinationThreshold)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("buffer_minutes: 10\ncalendar_id: work@example.com\n")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.BufferMinutes != 10 {
		t.Errorf("BufferMinutes = %d, want 10", cfg.BufferMinutes)
	}
	if cfg.CalendarID != "work@example.com" {
		t.Errorf("CalendarID = %q, want work@example.com", cfg.CalendarID)
	}
	// Unset fields keep defaults
	if cfg.WorkStart != "09:00" {
		t.Errorf("WorkStart = %q, want 09:00", cfg.WorkStart)
	}
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad clock", "work_start: 9am\n"},
		{"inverted hours", "work_start: \"18:00\"\nwork_end: \"09:00\"\n"},
		{"negative buffer", "buffer_minutes: -5\n"},
		{"zero threshold", "procrastination_threshold: 0\n"},
		{"not yaml", "{{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("LoadFrom(%q) succeeded, want error", tt.content)
			}
		})
	}
}
