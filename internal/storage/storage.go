// Package storage persists tasks as markdown files with YAML frontmatter
// under a single flat directory. One file per task, named by ID, so the
// store stays greppable and diffable without any tooling.
package storage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/repo"
	"github.com/avelis/dayplan/internal/task"
)

const (
	dayplanDir = ".dayplan"
	fileExt    = ".md"
)

// Store handles task file operations and implements repo.Repository.
type Store struct {
	basePath string
	now      func() time.Time
}

// NewStore creates a Store rooted at ~/.dayplan/tasks.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	basePath := filepath.Join(home, dayplanDir, "tasks")
	return &Store{basePath: basePath, now: time.Now}, nil
}

// NewStoreWithPath creates a Store with a custom base path.
func NewStoreWithPath(path string) *Store {
	return &Store{basePath: path, now: time.Now}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// IsInitialized checks if the dayplan directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Init creates the dayplan directory.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return dperrors.AlreadyInitializedError{}
	}
	return os.MkdirAll(s.basePath, 0755)
}

// taskPath returns the full path for a task file.
func (s *Store) taskPath(id string) string {
	return filepath.Join(s.basePath, id+fileExt)
}

// Exists checks if a task with the given ID exists.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.taskPath(id))
	return err == nil
}

// Save writes a task to disk.
func (s *Store) Save(t *task.Task) error {
	if !s.IsInitialized() {
		return dperrors.NotInitializedError{}
	}
	content, err := SerializeMarkdown(t)
	if err != nil {
		return err
	}
	return os.WriteFile(s.taskPath(t.ID), content, 0644)
}

// Load reads a task from disk.
func (s *Store) Load(id string) (*task.Task, error) {
	if !s.IsInitialized() {
		return nil, dperrors.NotInitializedError{}
	}
	content, err := os.ReadFile(s.taskPath(id))
	if os.IsNotExist(err) {
		return nil, dperrors.TaskNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(content)
}

// Delete removes a task file.
func (s *Store) Delete(id string) error {
	if !s.IsInitialized() {
		return dperrors.NotInitializedError{}
	}
	err := os.Remove(s.taskPath(id))
	if os.IsNotExist(err) {
		return dperrors.TaskNotFoundError{ID: id}
	}
	return err
}

// AllIDs returns all task IDs (for ID generation collision checking).
func (s *Store) AllIDs() (map[string]bool, error) {
	if !s.IsInitialized() {
		return nil, dperrors.NotInitializedError{}
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), fileExt)
		ids[id] = true
	}
	return ids, nil
}

// Query returns all tasks matching the filter, ordered by creation time
// then ID so listings are deterministic.
func (s *Store) Query(f repo.Filter) ([]task.Task, error) {
	if !s.IsInitialized() {
		return nil, dperrors.NotInitializedError{}
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, err
	}

	var tasks []task.Task
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), fileExt)
		t, err := s.Load(id)
		if err != nil {
			continue // Skip malformed files
		}
		if f.Matches(*t) {
			tasks = append(tasks, *t)
		}
	}

	// Sort by created_at (oldest first), then by ID
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})

	return tasks, nil
}

// Get returns a single task by ID.
func (s *Store) Get(id string) (task.Task, error) {
	t, err := s.Load(id)
	if err != nil {
		return task.Task{}, err
	}
	return *t, nil
}

// Create persists a new task from a draft with a generated ID.
func (s *Store) Create(d task.Draft) (task.Task, error) {
	if !s.IsInitialized() {
		return task.Task{}, dperrors.NotInitializedError{}
	}
	if err := d.Validate(); err != nil {
		return task.Task{}, err
	}

	createdAt := s.now().UTC()

	existingIDs, err := s.AllIDs()
	if err != nil {
		return task.Task{}, err
	}
	existsFn := func(id string) bool {
		return existingIDs[id]
	}
	id := task.GenerateID(d.Name, createdAt, existsFn)

	mentioned := d.Mentioned
	if mentioned < 1 {
		mentioned = 1
	}
	t := task.Task{
		ID:                  id,
		Name:                d.Name,
		Status:              d.Status,
		Type:                d.Type,
		Energy:              d.Energy,
		Mentioned:           mentioned,
		CompleteTimeMinutes: d.CompleteTimeMinutes,
		BlockedBy:           d.BlockedBy,
		Source:              d.Source,
		Notes:               d.Notes,
		CreatedAt:           createdAt,
	}
	if err := s.Save(&t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Update applies a partial mutation and returns the updated task.
func (s *Store) Update(mut task.Mutation) (task.Task, error) {
	existing, err := s.Load(mut.ID)
	if err != nil {
		return task.Task{}, err
	}
	t := *existing

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

	now := s.now().UTC()
	t.UpdatedAt = &now
	if err := s.Save(&t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// IncrementMentioned bumps the mention counter and returns the task.
func (s *Store) IncrementMentioned(id string) (task.Task, error) {
	existing, err := s.Load(id)
	if err != nil {
		return task.Task{}, err
	}
	t := *existing
	t.Mentioned++
	now := s.now().UTC()
	t.UpdatedAt = &now
	if err := s.Save(&t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}
