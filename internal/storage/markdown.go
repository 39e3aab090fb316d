package storage

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avelis/dayplan/internal/task"
)

const frontmatterDelimiter = "---"

// taskFrontmatter is the YAML-serializable portion of a task.
type taskFrontmatter struct {
	ID                  string      `yaml:"id"`
	Name                string      `yaml:"name"`
	Status              task.Status `yaml:"status"`
	Type                task.Type   `yaml:"type,omitempty"`
	Energy              task.Energy `yaml:"energy,omitempty"`
	Mentioned           int         `yaml:"mentioned"`
	CompleteTimeMinutes int         `yaml:"complete_time_minutes,omitempty"`
	ManualPriority      int         `yaml:"manual_priority,omitempty"`
	CreatedAt           string      `yaml:"created_at"`
	UpdatedAt           *string     `yaml:"updated_at,omitempty"`
	BlockedBy           string      `yaml:"blocked_by,omitempty"`
	Source              string      `yaml:"source,omitempty"`
}

// ParseMarkdown parses a markdown file with YAML frontmatter into a Task.
func ParseMarkdown(content []byte) (*task.Task, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, &parseError{"missing YAML frontmatter"}
	}

	// Find closing delimiter
	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return nil, &parseError{"unclosed YAML frontmatter"}
	}

	// Parse YAML
	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}

	// Parse timestamps
	createdAt, err := parseTime(fm.CreatedAt)
	if err != nil {
		return nil, &parseError{"invalid created_at: " + err.Error()}
	}

	var updatedAt *time.Time
	if fm.UpdatedAt != nil {
		t, err := parseTime(*fm.UpdatedAt)
		if err != nil {
			return nil, &parseError{"invalid updated_at: " + err.Error()}
		}
		updatedAt = &t
	}

	// Extract notes (everything after frontmatter)
	var notes string
	if frontmatterEnd+1 < len(lines) {
		notes = strings.TrimSpace(strings.Join(lines[frontmatterEnd+1:], "\n"))
	}

	return &task.Task{
		ID:                  fm.ID,
		Name:                fm.Name,
		Status:              fm.Status,
		Type:                fm.Type,
		Energy:              fm.Energy,
		Mentioned:           fm.Mentioned,
		CompleteTimeMinutes: fm.CompleteTimeMinutes,
		ManualPriority:      fm.ManualPriority,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
		BlockedBy:           fm.BlockedBy,
		Source:              fm.Source,
		Notes:               notes,
	}, nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter.
func SerializeMarkdown(t *task.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:                  t.ID,
		Name:                t.Name,
		Status:              t.Status,
		Type:                t.Type,
		Energy:              t.Energy,
		Mentioned:           t.Mentioned,
		CompleteTimeMinutes: t.CompleteTimeMinutes,
		ManualPriority:      t.ManualPriority,
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
		BlockedBy:           t.BlockedBy,
		Source:              t.Source,
	}
	if t.UpdatedAt != nil {
		s := t.UpdatedAt.Format(time.RFC3339)
		fm.UpdatedAt = &s
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	enc.Close()

	buf.WriteString(frontmatterDelimiter + "\n")

	if t.Notes != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Notes)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

// parseTime tries to parse a time string in common formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &parseError{"unrecognized time format"}
}
