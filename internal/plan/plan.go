// Package plan fits a ranked task list into a day's free calendar windows.
//
// It wires the windowing pipeline together: buffer the raw windows, reserve
// the morning block for the top-ranked task, then first-fit the rest against
// the shared pool. Slotting failures are downgraded to "unscheduled", never
// a failed plan.
package plan

import (
	"errors"
	"time"

	"github.com/avelis/dayplan/internal/calendar"
	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/score"
	"github.com/avelis/dayplan/internal/task"
)

// Config holds the windowing knobs.
type Config struct {
	BufferMinutes int
	MorningCutoff string // HH:MM
}

// Assignment pairs a task with the window slice it was given.
type Assignment struct {
	Task   task.Task
	Slot   calendar.Window
	Reason string
}

// Plan is the day's schedule: plain data for presentation consumers.
type Plan struct {
	Date    time.Time
	Ranked  []score.Entry
	Morning *Assignment
	// Scheduled holds non-morning assignments in rank order.
	Scheduled []Assignment
	// Unscheduled holds ranked tasks that received no window.
	Unscheduled      []task.Task
	RemainingMinutes int
	// CalendarApplied is false when the calendar source was unavailable:
	// the windowing pipeline was bypassed and every task is treated as
	// fitting.
	CalendarApplied bool
}

// Build produces a day plan from a ranked list and the day's raw free
// windows.
//
// A nil window list means the calendar was unavailable; the whole pipeline
// is bypassed and the plan carries only the ranking. This is the documented
// degradation, not an error.
func Build(ranked []score.Entry, windows []calendar.Window, date time.Time, cfg Config) (*Plan, error) {
	p := &Plan{Date: date, Ranked: ranked}
	if windows == nil {
		return p, nil
	}
	p.CalendarApplied = true

	buffered := calendar.ApplyBuffer(windows, cfg.BufferMinutes)

	cutoff, err := calendar.CutoffOn(date, cfg.MorningCutoff)
	if err != nil {
		return nil, err
	}
	morning, remaining := calendar.ProtectMorning(buffered, cutoff)

	pool := calendar.NewPool(remaining)
	entries := ranked

	// Morning protection: the earliest block is held for the top-ranked
	// task. If the task outgrows the block, the block rejoins the pool and
	// the task competes with everyone else.
	if morning != nil && len(entries) > 0 {
		top := entries[0]
		morningPool := calendar.NewPool([]calendar.Window{*morning})
		if slot, ok := morningPool.FindSlot(top.Task); ok {
			p.Morning = &Assignment{Task: top.Task, Slot: slot, Reason: top.Reason}
			entries = entries[1:]
			pool = calendar.NewPool(append(morningPool.Windows(), pool.Windows()...))
		} else {
			pool = calendar.NewPool(append([]calendar.Window{*morning}, pool.Windows()...))
		}
	}

	for _, entry := range entries {
		slot, err := pool.RequireSlot(entry.Task)
		if err != nil {
			var serr dperrors.SlottingError
			if errors.As(err, &serr) {
				p.Unscheduled = append(p.Unscheduled, entry.Task)
				continue
			}
			return nil, err
		}
		p.Scheduled = append(p.Scheduled, Assignment{Task: entry.Task, Slot: slot, Reason: entry.Reason})
	}

	p.RemainingMinutes = pool.RemainingMinutes()
	return p, nil
}

// Conflicts reports ranked tasks that cannot be placed in the day's windows,
// after buffering. A nil window list (calendar unavailable) yields no
// conflicts: every task is treated as fitting.
func Conflicts(ranked []score.Entry, windows []calendar.Window, cfg Config) ([]task.Task, int) {
	if windows == nil {
		return nil, 0
	}
	buffered := calendar.ApplyBuffer(windows, cfg.BufferMinutes)
	tasks := make([]task.Task, len(ranked))
	for i, e := range ranked {
		tasks[i] = e.Task
	}
	return calendar.DetectConflicts(tasks, calendar.NewPool(buffered))
}
