package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/task"
)

func estimated(id string, minutes int) task.Task {
	return task.Task{ID: id, Name: id, Status: task.StatusTask, Mentioned: 1, CompleteTimeMinutes: minutes}
}

func unestimated(id string) task.Task {
	return task.Task{ID: id, Name: id, Status: task.StatusTask, Mentioned: 1}
}

func TestPoolFindSlotFirstFit(t *testing.T) {
	// Task E(10 min) against [09:15-10:00] and [14:15-17:45]: first-fit
	// picks the earlier window even though the afternoon one is larger.
	pool := NewPool([]Window{win(9, 15, 10, 0), win(14, 15, 17, 45)})
	before := pool.RemainingMinutes()

	slot, ok := pool.FindSlot(estimated("e", 10))
	require.True(t, ok)
	assert.Equal(t, win(9, 15, 9, 25), slot)

	rest := pool.Windows()
	require.Len(t, rest, 2)
	assert.Equal(t, win(9, 25, 10, 0), rest[0])
	assert.Equal(t, win(14, 15, 17, 45), rest[1])

	// Remaining free time decreased by exactly the consumed amount.
	assert.Equal(t, before-10, pool.RemainingMinutes())
}

func TestPoolFindSlotSkipsTooSmallWindows(t *testing.T) {
	pool := NewPool([]Window{win(9, 0, 9, 30), win(14, 0, 16, 0)})

	slot, ok := pool.FindSlot(estimated("t", 60))
	require.True(t, ok)
	assert.Equal(t, win(14, 0, 15, 0), slot)

	rest := pool.Windows()
	require.Len(t, rest, 2)
	assert.Equal(t, win(9, 0, 9, 30), rest[0])
	assert.Equal(t, win(15, 0, 16, 0), rest[1])
}

func TestPoolFindSlotConsumesWholeWindowExactly(t *testing.T) {
	pool := NewPool([]Window{win(9, 0, 10, 0)})

	slot, ok := pool.FindSlot(estimated("t", 60))
	require.True(t, ok)
	assert.Equal(t, win(9, 0, 10, 0), slot)
	assert.Empty(t, pool.Windows())
	assert.Zero(t, pool.RemainingMinutes())
}

func TestPoolFindSlotNoEstimateTakesLargestWindow(t *testing.T) {
	pool := NewPool([]Window{win(9, 0, 10, 0), win(14, 0, 17, 0), win(18, 0, 19, 0)})

	slot, ok := pool.FindSlot(unestimated("t"))
	require.True(t, ok)
	assert.Equal(t, win(14, 0, 17, 0), slot)

	rest := pool.Windows()
	require.Len(t, rest, 2)
	assert.Equal(t, win(9, 0, 10, 0), rest[0])
	assert.Equal(t, win(18, 0, 19, 0), rest[1])
}

func TestPoolFindSlotNoFit(t *testing.T) {
	pool := NewPool([]Window{win(9, 0, 9, 30)})
	before := pool.Windows()

	_, ok := pool.FindSlot(estimated("t", 45))
	assert.False(t, ok)
	assert.Equal(t, before, pool.Windows())

	_, ok = NewPool(nil).FindSlot(unestimated("t"))
	assert.False(t, ok)
}

func TestPoolRequireSlot(t *testing.T) {
	// Task D(500 min) against 420 free minutes in total.
	pool := NewPool([]Window{win(9, 0, 12, 0), win(14, 0, 18, 0)})
	require.Equal(t, 420, pool.RemainingMinutes())

	_, err := pool.RequireSlot(estimated("d", 500))
	require.Error(t, err)

	var serr dperrors.SlottingError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "d", serr.TaskID)
	assert.Equal(t, 500, serr.RequestedMinutes)
	assert.Equal(t, 420, serr.RemainingMinutes)
}

func TestDetectConflicts(t *testing.T) {
	pool := NewPool([]Window{win(9, 0, 10, 0), win(14, 0, 15, 0)})

	ranked := []task.Task{
		estimated("fits1", 60),  // takes 09:00-10:00
		unestimated("anywhere"), // never conflicts, consumes nothing
		estimated("fits2", 30),  // takes 14:00-14:30
		estimated("squeezed", 45),
	}

	conflicts, remaining := DetectConflicts(ranked, pool)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "squeezed", conflicts[0].ID)
	assert.Equal(t, 30, remaining)

	// The simulation ran on a clone; the caller's pool is untouched.
	assert.Equal(t, 120, pool.RemainingMinutes())
	assert.Equal(t, win(9, 0, 10, 0), pool.Windows()[0])
}

func TestDetectConflictsOrderMatters(t *testing.T) {
	// A task conflicts iff no window had room when it was considered:
	// the big task ahead of it drains the pool.
	pool := NewPool([]Window{win(9, 0, 11, 0)})

	conflicts, _ := DetectConflicts([]task.Task{estimated("big", 120), estimated("small", 10)}, pool)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "small", conflicts[0].ID)

	// Reversed rank order: both fit.
	conflicts, _ = DetectConflicts([]task.Task{estimated("small", 10), estimated("big", 110)}, pool)
	assert.Empty(t, conflicts)
}

func TestPoolCloneIsIndependent(t *testing.T) {
	pool := NewPool([]Window{win(9, 0, 10, 0)})
	clone := pool.Clone()

	_, ok := clone.FindSlot(estimated("t", 30))
	require.True(t, ok)
	assert.Equal(t, 60, pool.RemainingMinutes())
	assert.Equal(t, 30, clone.RemainingMinutes())
}
