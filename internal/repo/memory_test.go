package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/ingest"
	"github.com/avelis/dayplan/internal/task"
)

func TestMemoryCreateAndGet(t *testing.T) {
	m := NewMemory()

	created, err := m.Create(task.Draft{Name: "call mom", Status: task.StatusTask})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Mentioned)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = m.Get("nope")
	var nf dperrors.TaskNotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestMemoryCreateValidates(t *testing.T) {
	m := NewMemory()
	_, err := m.Create(task.Draft{Name: "", Status: task.StatusTask})
	assert.Error(t, err)
	_, err = m.Create(task.Draft{Name: "x", Status: "bogus"})
	assert.Error(t, err)
}

func TestMemoryQueryFilters(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tick := 0
	m := NewMemoryAt(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	action, err := m.Create(task.Draft{Name: "do", Status: task.StatusTask})
	require.NoError(t, err)
	_, err = m.Create(task.Draft{Name: "someday", Status: task.StatusIdea})
	require.NoError(t, err)
	doneTask, err := m.Create(task.Draft{Name: "shipped", Status: task.StatusTask})
	require.NoError(t, err)
	_, err = m.Update(task.Mutation{ID: doneTask.ID, Status: task.StatusDone})
	require.NoError(t, err)

	all, err := m.Query(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Deterministic order: by creation time.
	assert.Equal(t, "do", all[0].Name)

	open, err := m.Query(Filter{OpenOnly: true})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	actionable, err := m.Query(Filter{ActionableOnly: true})
	require.NoError(t, err)
	require.Len(t, actionable, 1)
	assert.Equal(t, action.ID, actionable[0].ID)

	ideas, err := m.Query(Filter{Status: task.StatusIdea})
	require.NoError(t, err)
	assert.Len(t, ideas, 1)
}

func TestMemoryUpdate(t *testing.T) {
	m := NewMemory()
	created, err := m.Create(task.Draft{Name: "write report", Status: task.StatusTask})
	require.NoError(t, err)

	prio := 2
	updated, err := m.Update(task.Mutation{ID: created.ID, ManualPriority: &prio, Energy: task.EnergyRed})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.ManualPriority)
	assert.Equal(t, task.EnergyRed, updated.Energy)
	require.NotNil(t, updated.UpdatedAt)

	// Moving to blocked without a blocker is rejected and nothing changes.
	_, err = m.Update(task.Mutation{ID: created.ID, Status: task.StatusBlocked})
	require.Error(t, err)
	still, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusTask, still.Status)

	blocker := "vendor reply"
	blocked, err := m.Update(task.Mutation{ID: created.ID, Status: task.StatusBlocked, BlockedBy: &blocker})
	require.NoError(t, err)
	assert.Equal(t, task.StatusBlocked, blocked.Status)
}

func TestMemoryIncrementMentioned(t *testing.T) {
	m := NewMemory()
	created, err := m.Create(task.Draft{Name: "call mom", Status: task.StatusTask})
	require.NoError(t, err)

	bumped, err := m.IncrementMentioned(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, bumped.Mentioned)

	_, err = m.IncrementMentioned("nope")
	assert.Error(t, err)
}

func TestApplyBatchMapsPlaceholders(t *testing.T) {
	m := NewMemory()

	// "call mom" twice in one batch: one create, then a mention of the
	// placeholder, which must land on the created task.
	results := ingest.IngestBatch([]task.Draft{{Name: "call mom"}, {Name: "Call Mom "}}, nil, nil)
	applied, err := ApplyBatch(m, results)
	require.NoError(t, err)
	require.Len(t, applied, 2)

	all, err := m.Query(Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "call mom", all[0].Name)
	assert.Equal(t, 2, all[0].Mentioned)
}

func TestApplyBatchSkipsFailedDrafts(t *testing.T) {
	m := NewMemory()

	results := ingest.IngestBatch([]task.Draft{{Name: "  "}, {Name: "water plants"}}, nil, nil)
	applied, err := ApplyBatch(m, results)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "water plants", applied[0].Name)
}
