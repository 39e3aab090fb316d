package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelis/dayplan/internal/calendar"
	"github.com/avelis/dayplan/internal/score"
	"github.com/avelis/dayplan/internal/task"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func win(h1, m1, h2, m2 int) calendar.Window {
	return calendar.Window{Start: at(h1, m1), End: at(h2, m2)}
}

func entry(id string, minutes int) score.Entry {
	return score.Entry{
		Task: task.Task{ID: id, Name: id, Status: task.StatusTask, Mentioned: 1, CompleteTimeMinutes: minutes},
	}
}

func defaultCfg() Config {
	return Config{BufferMinutes: 15, MorningCutoff: "10:00"}
}

func TestBuildFullPipeline(t *testing.T) {
	// Raw [09:00-11:00], [14:00-18:00] → buffered [09:15-10:45],
	// [14:15-17:45] → morning [09:15-10:00] + pool [10:00-10:45],
	// [14:15-17:45].
	windows := []calendar.Window{win(9, 0, 11, 0), win(14, 0, 18, 0)}
	ranked := []score.Entry{entry("top", 30), entry("second", 45), entry("third", 200)}

	p, err := Build(ranked, windows, day, defaultCfg())
	require.NoError(t, err)
	assert.True(t, p.CalendarApplied)

	require.NotNil(t, p.Morning)
	assert.Equal(t, "top", p.Morning.Task.ID)
	assert.Equal(t, win(9, 15, 9, 45), p.Morning.Slot)

	require.Len(t, p.Scheduled, 2)
	assert.Equal(t, "second", p.Scheduled[0].Task.ID)
	assert.Equal(t, win(10, 0, 10, 45), p.Scheduled[0].Slot)
	assert.Equal(t, "third", p.Scheduled[1].Task.ID)
	assert.Equal(t, win(14, 15, 17, 35), p.Scheduled[1].Slot)

	assert.Empty(t, p.Unscheduled)
	// Morning leftover 15 + afternoon leftover 10.
	assert.Equal(t, 25, p.RemainingMinutes)
}

func TestBuildDowngradesSlottingToUnscheduled(t *testing.T) {
	windows := []calendar.Window{win(9, 0, 10, 0)}
	ranked := []score.Entry{entry("top", 20), entry("huge", 500)}

	p, err := Build(ranked, windows, day, defaultCfg())
	require.NoError(t, err)

	require.NotNil(t, p.Morning)
	assert.Equal(t, "top", p.Morning.Task.ID)
	require.Len(t, p.Unscheduled, 1)
	assert.Equal(t, "huge", p.Unscheduled[0].ID)
}

func TestBuildMorningTooSmallForTopTask(t *testing.T) {
	// Morning block is 45 min after buffering; the top task needs 90, so
	// the block rejoins the pool and the task lands in the afternoon.
	windows := []calendar.Window{win(9, 0, 10, 15), win(14, 0, 16, 0)}
	ranked := []score.Entry{entry("big", 90), entry("small", 30)}

	p, err := Build(ranked, windows, day, defaultCfg())
	require.NoError(t, err)

	assert.Nil(t, p.Morning)
	require.Len(t, p.Scheduled, 2)
	assert.Equal(t, "big", p.Scheduled[0].Task.ID)
	assert.Equal(t, win(14, 15, 15, 45), p.Scheduled[0].Slot)
	assert.Equal(t, "small", p.Scheduled[1].Task.ID)
	assert.Equal(t, win(9, 15, 9, 45), p.Scheduled[1].Slot)
}

func TestBuildNoEstimateTopTakesWholeMorning(t *testing.T) {
	windows := []calendar.Window{win(9, 0, 11, 0)}
	ranked := []score.Entry{entry("top", 0)}

	p, err := Build(ranked, windows, day, defaultCfg())
	require.NoError(t, err)

	require.NotNil(t, p.Morning)
	assert.Equal(t, win(9, 15, 10, 0), p.Morning.Slot)
}

func TestBuildCalendarUnavailable(t *testing.T) {
	ranked := []score.Entry{entry("a", 30), entry("b", 500)}

	p, err := Build(ranked, nil, day, defaultCfg())
	require.NoError(t, err)

	assert.False(t, p.CalendarApplied)
	assert.Nil(t, p.Morning)
	assert.Empty(t, p.Scheduled)
	assert.Empty(t, p.Unscheduled)
	assert.Equal(t, ranked, p.Ranked)
}

func TestBuildBadCutoff(t *testing.T) {
	_, err := Build(nil, []calendar.Window{win(9, 0, 10, 0)}, day, Config{MorningCutoff: "morning"})
	require.Error(t, err)
}

func TestConflicts(t *testing.T) {
	windows := []calendar.Window{win(9, 0, 11, 0)}
	ranked := []score.Entry{entry("fits", 60), entry("too-big", 120)}

	conflicts, remaining := Conflicts(ranked, windows, defaultCfg())
	require.Len(t, conflicts, 1)
	assert.Equal(t, "too-big", conflicts[0].ID)
	// 90 buffered minutes minus the 60 consumed.
	assert.Equal(t, 30, remaining)
}

func TestConflictsCalendarUnavailable(t *testing.T) {
	conflicts, remaining := Conflicts([]score.Entry{entry("a", 999)}, nil, defaultCfg())
	assert.Empty(t, conflicts)
	assert.Zero(t, remaining)
}
