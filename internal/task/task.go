package task

import (
	"time"

	dperrors "github.com/avelis/dayplan/internal/errors"
)

// Status represents the current state of a task.
type Status string

const (
	// StatusTask is the only actionable status: single-sitting work with a
	// clear next step. Everything else is parked, blocked, or terminal.
	StatusTask    Status = "task"
	StatusProject Status = "project"
	StatusIdea    Status = "idea"
	StatusNotNow  Status = "not-now"
	StatusBlocked Status = "blocked"
	StatusWaiting Status = "waiting"
	StatusDone    Status = "done"
	StatusWontDo  Status = "wont-do"
)

// Type is an optional coaching tag assigned at capture time.
type Type string

const (
	TypeIdentity           Type = "identity"
	TypeCompound           Type = "compound"
	TypeDoItNow            Type = "do-it-now"
	TypeNeverMissTwice     Type = "never-miss-2x"
	TypeImportantNotUrgent Type = "important-not-urgent"
	TypeUnblocks           Type = "unblocks"
)

// Energy rates how draining a task is.
type Energy string

const (
	EnergyRed    Energy = "red"
	EnergyYellow Energy = "yellow"
	EnergyGreen  Energy = "green"
)

// Task represents a tracked work item.
type Task struct {
	ID                  string     `yaml:"id"`
	Name                string     `yaml:"name"`
	Status              Status     `yaml:"status"`
	Type                Type       `yaml:"type,omitempty"`
	Energy              Energy     `yaml:"energy,omitempty"`
	Mentioned           int        `yaml:"mentioned"`
	CompleteTimeMinutes int        `yaml:"complete_time_minutes,omitempty"`
	ManualPriority      int        `yaml:"manual_priority,omitempty"`
	CreatedAt           time.Time  `yaml:"created_at"`
	UpdatedAt           *time.Time `yaml:"updated_at,omitempty"`
	BlockedBy           string     `yaml:"blocked_by,omitempty"`
	Source              string     `yaml:"source,omitempty"`
	Notes               string     `yaml:"-"` // Stored as markdown body, not frontmatter
}

// Draft is a capture payload before the repository assigns an identity.
type Draft struct {
	Name                string
	Status              Status
	Type                Type
	Energy              Energy
	Mentioned           int
	CompleteTimeMinutes int
	BlockedBy           string
	Source              string
	Notes               string
}

// Mutation is a partial update decided by a caller and applied through the
// repository. Zero values mean "leave unchanged"; pointer fields allow
// clearing.
type Mutation struct {
	ID                  string
	Name                string
	Status              Status
	Type                Type
	Energy              Energy
	Mentioned           int
	CompleteTimeMinutes int
	ManualPriority      *int
	BlockedBy           *string
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusTask, StatusProject, StatusIdea, StatusNotNow,
		StatusBlocked, StatusWaiting, StatusDone, StatusWontDo:
		return true
	default:
		return false
	}
}

// IsValidType checks if a type string is valid.
func IsValidType(t Type) bool {
	switch t {
	case TypeIdentity, TypeCompound, TypeDoItNow, TypeNeverMissTwice,
		TypeImportantNotUrgent, TypeUnblocks:
		return true
	default:
		return false
	}
}

// IsValidEnergy checks if an energy string is valid.
func IsValidEnergy(e Energy) bool {
	switch e {
	case EnergyRed, EnergyYellow, EnergyGreen:
		return true
	default:
		return false
	}
}

// IsActionable reports whether the status is eligible for ranking.
func (s Status) IsActionable() bool {
	return s == StatusTask
}

// IsTerminal reports whether the status is a closed state.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusWontDo
}

// IsOpen reports whether the task still counts for dedup matching.
func (s Status) IsOpen() bool {
	return !s.IsTerminal()
}

// Validate enforces boundary invariants on a task. The pure engines assume
// these hold and never re-check them.
func (t *Task) Validate() error {
	if t.Name == "" {
		return dperrors.ValidationError{TaskID: t.ID, Field: "name", Reason: "cannot be empty"}
	}
	if !IsValidStatus(t.Status) {
		return dperrors.UnknownStatusError{TaskID: t.ID, Value: string(t.Status)}
	}
	if t.Type != "" && !IsValidType(t.Type) {
		return dperrors.UnknownTypeError{TaskID: t.ID, Value: string(t.Type)}
	}
	if t.Energy != "" && !IsValidEnergy(t.Energy) {
		return dperrors.ValidationError{TaskID: t.ID, Field: "energy", Reason: "unknown value " + string(t.Energy)}
	}
	if t.Mentioned < 1 {
		return dperrors.ValidationError{TaskID: t.ID, Field: "mentioned", Reason: "must be at least 1"}
	}
	if t.CompleteTimeMinutes < 0 {
		return dperrors.ValidationError{TaskID: t.ID, Field: "complete_time_minutes", Reason: "must be positive"}
	}
	if t.ManualPriority < 0 {
		return dperrors.ValidationError{TaskID: t.ID, Field: "manual_priority", Reason: "must be positive"}
	}
	if (t.Status == StatusBlocked || t.Status == StatusWaiting) && t.BlockedBy == "" {
		return dperrors.ValidationError{TaskID: t.ID, Field: "blocked_by", Reason: "required for " + string(t.Status) + " status"}
	}
	return nil
}

// Validate enforces boundary invariants on a draft.
func (d *Draft) Validate() error {
	if d.Name == "" {
		return dperrors.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if !IsValidStatus(d.Status) {
		return dperrors.UnknownStatusError{Value: string(d.Status)}
	}
	if d.Type != "" && !IsValidType(d.Type) {
		return dperrors.UnknownTypeError{Value: string(d.Type)}
	}
	if d.CompleteTimeMinutes < 0 {
		return dperrors.ValidationError{Field: "complete_time_minutes", Reason: "must be positive"}
	}
	if (d.Status == StatusBlocked || d.Status == StatusWaiting) && d.BlockedBy == "" {
		return dperrors.ValidationError{Field: "blocked_by", Reason: "required for " + string(d.Status) + " status"}
	}
	return nil
}
