// Package repo defines the task store port and an in-memory reference
// implementation. The core engines only ever exchange plain task values
// with a Repository; they never hold one.
package repo

import (
	"strconv"

	"github.com/avelis/dayplan/internal/ingest"
	"github.com/avelis/dayplan/internal/task"
)

// Filter narrows a Query.
type Filter struct {
	// Status keeps only tasks in this status when set.
	Status task.Status
	// OpenOnly drops terminal tasks (done, wont-do).
	OpenOnly bool
	// ActionableOnly keeps only tasks eligible for ranking.
	ActionableOnly bool
}

// Matches reports whether a task passes the filter.
func (f Filter) Matches(t task.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.OpenOnly && !t.Status.IsOpen() {
		return false
	}
	if f.ActionableOnly && !t.Status.IsActionable() {
		return false
	}
	return true
}

// Repository is read/write access to the task store.
type Repository interface {
	Query(f Filter) ([]task.Task, error)
	Get(id string) (task.Task, error)
	Create(d task.Draft) (task.Task, error)
	Update(m task.Mutation) (task.Task, error)
	IncrementMentioned(id string) (task.Task, error)
}

// ApplyBatch applies ingest batch results to a repository in order, mapping
// in-batch placeholder IDs onto the tasks created earlier in the same
// batch. Returns the affected task per successful result, in result order;
// failed drafts are skipped.
func ApplyBatch(r Repository, results []ingest.Result) ([]task.Task, error) {
	placeholders := make(map[string]string)
	created := 0

	var applied []task.Task
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		switch res.Decision.Action {
		case ingest.ActionCreate:
			t, err := r.Create(res.Decision.Draft)
			if err != nil {
				return applied, err
			}
			created++
			placeholders[placeholderID(created)] = t.ID
			applied = append(applied, t)
		case ingest.ActionMention:
			id := res.Decision.TaskID
			if real, ok := placeholders[id]; ok {
				id = real
			}
			t, err := r.IncrementMentioned(id)
			if err != nil {
				return applied, err
			}
			applied = append(applied, t)
		}
	}
	return applied, nil
}

func placeholderID(n int) string {
	return "pending-" + strconv.Itoa(n)
}
