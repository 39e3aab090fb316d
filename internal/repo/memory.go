package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/task"
)

// Memory is an in-memory Repository. It is the reference implementation of
// the port and the store used by tests; IDs are uuids so snapshots from
// different Memory instances never collide.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]task.Task
	now   func() time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[string]task.Task), now: time.Now}
}

// NewMemoryAt creates an in-memory repository with a fixed clock, for tests.
func NewMemoryAt(now func() time.Time) *Memory {
	return &Memory{tasks: make(map[string]task.Task), now: now}
}

// Query returns tasks matching the filter, ordered by creation time then ID
// so snapshots are deterministic.
func (m *Memory) Query(f Filter) ([]task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []task.Task
	for _, t := range m.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns a single task by ID.
func (m *Memory) Get(id string) (task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return task.Task{}, dperrors.TaskNotFoundError{ID: id}
	}
	return t, nil
}

// Create persists a new task from a draft and assigns its identity.
func (m *Memory) Create(d task.Draft) (task.Task, error) {
	if err := d.Validate(); err != nil {
		return task.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	mentioned := d.Mentioned
	if mentioned < 1 {
		mentioned = 1
	}
	t := task.Task{
		ID:                  uuid.New().String(),
		Name:                d.Name,
		Status:              d.Status,
		Type:                d.Type,
		Energy:              d.Energy,
		Mentioned:           mentioned,
		CompleteTimeMinutes: d.CompleteTimeMinutes,
		BlockedBy:           d.BlockedBy,
		Source:              d.Source,
		Notes:               d.Notes,
		CreatedAt:           m.now().UTC(),
	}
	m.tasks[t.ID] = t
	return t, nil
}

// Update applies a partial mutation and returns the updated task.
func (m *Memory) Update(mut task.Mutation) (task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[mut.ID]
	if !ok {
		return task.Task{}, dperrors.TaskNotFoundError{ID: mut.ID}
	}

	if mut.Name != "" {
		t.Name = mut.Name
	}
	if mut.Status != "" {
		t.Status = mut.Status
	}
	if mut.Type != "" {
		t.Type = mut.Type
	}
	if mut.Energy != "" {
		t.Energy = mut.Energy
	}
	if mut.Mentioned > 0 {
		t.Mentioned = mut.Mentioned
	}
	if mut.CompleteTimeMinutes > 0 {
		t.CompleteTimeMinutes = mut.CompleteTimeMinutes
	}
	if mut.ManualPriority != nil {
		t.ManualPriority = *mut.ManualPriority
	}
	if mut.BlockedBy != nil {
		t.BlockedBy = *mut.BlockedBy
	}

	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}

	now := m.now().UTC()
	t.UpdatedAt = &now
	m.tasks[t.ID] = t
	return t, nil
}

// IncrementMentioned bumps the mention counter and returns the task.
func (m *Memory) IncrementMentioned(id string) (task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return task.Task{}, dperrors.TaskNotFoundError{ID: id}
	}
	t.Mentioned++
	now := m.now().UTC()
	t.UpdatedAt = &now
	m.tasks[t.ID] = t
	return t, nil
}
