//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"errors"
	"fmt"
)

// ErrCalendarUnavailable signals that the calendar source could not supply
// free windows. It is a documented degradation, not a failure: callers
// bypass the windowing pipeline and treat every task as fitting.
var ErrCalendarUnavailable = errors.New("calendar unavailable")

// NotInitializedError indicates the dayplan directory doesn't exist.
type NotInitializedError struct{}

func (e NotInitializedError) Error() string {
	return "dayplan not initialized: run 'dayplan init' first"
}

// AlreadyInitializedError indicates the dayplan directory already exists.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "dayplan already initialized"
}

// TaskNotFoundError indicates the task ID doesn't match any record.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// AlreadyExistsError indicates an ID collision.
type AlreadyExistsError struct {
	ID string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("task already exists: %s", e.ID)
}

// ValidationError indicates a task or draft attribute violates a boundary
// invariant. It names the offending record and constraint so callers can
// produce an actionable message.
type ValidationError struct {
	TaskID string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("task %s: invalid %s: %s", e.TaskID, e.Field, e.Reason)
}

// UnknownStatusError indicates a status string outside the fixed enumeration.
type UnknownStatusError struct {
	TaskID string
	Value  string
}

func (e UnknownStatusError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("unknown status: %q", e.Value)
	}
	return fmt.Sprintf("task %s: unknown status: %q", e.TaskID, e.Value)
}

// UnknownTypeError indicates a type tag outside the fixed enumeration.
type UnknownTypeError struct {
	TaskID string
	Value  string
}

func (e UnknownTypeError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("unknown task type: %q", e.Value)
	}
	return fmt.Sprintf("task %s: unknown task type: %q", e.TaskID, e.Value)
}

// SlottingError indicates no free window satisfies a required placement.
type SlottingError struct {
	TaskID           string
	RequestedMinutes int
	RemainingMinutes int
}

func (e SlottingError) Error() string {
	return fmt.Sprintf("no slot for task %s: needs %d min, %d min free",
		e.TaskID, e.RequestedMinutes, e.RemainingMinutes)
}
