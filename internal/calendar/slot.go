package calendar

import (
	"time"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/task"
)

// Pool is the day's remaining free time: a single scarce resource that
// callers own, pass explicitly, and let slotting calls consume. It has no
// internal locking; concurrent callers must each work on their own copy.
type Pool struct {
	windows []Window
}

// NewPool creates a Pool from an ordered window list. The input is copied;
// the caller's slice is never mutated.
func NewPool(windows []Window) *Pool {
	ws := make([]Window, len(windows))
	copy(ws, windows)
	return &Pool{windows: ws}
}

// Clone returns an independent copy of the pool.
func (p *Pool) Clone() *Pool {
	return NewPool(p.windows)
}

// Windows returns a copy of the remaining windows.
func (p *Pool) Windows() []Window {
	ws := make([]Window, len(p.windows))
	copy(ws, p.windows)
	return ws
}

// RemainingMinutes returns the total free minutes left in the pool.
func (p *Pool) RemainingMinutes() int {
	return TotalMinutes(p.windows)
}

// FindSlot assigns a task to the best available window, consuming time from
// the pool.
//
// With an estimate, windows are tried first-fit in chronological order: the
// chosen window gives up exactly the estimated minutes from its front, and
// is removed when fully consumed. Without an estimate, the largest window is
// taken whole, so low-information tasks don't fragment big blocks.
//
// Returns the assigned slice and false when nothing qualifies (the pool is
// then unchanged).
func (p *Pool) FindSlot(t task.Task) (Window, bool) {
	if len(p.windows) == 0 {
		return Window{}, false
	}

	if t.CompleteTimeMinutes <= 0 {
		// Largest-available heuristic: ties go to the earliest window.
		best := 0
		for i, w := range p.windows {
			if w.Duration() > p.windows[best].Duration() {
				best = i
			}
		}
		slot := p.windows[best]
		p.windows = append(p.windows[:best], p.windows[best+1:]...)
		return slot, true
	}

	need := time.Duration(t.CompleteTimeMinutes) * time.Minute
	for i, w := range p.windows {
		if !w.Fits(t.CompleteTimeMinutes) {
			continue
		}
		slot := Window{Start: w.Start, End: w.Start.Add(need)}
		rest := Window{Start: slot.End, End: w.End}
		if rest.End.After(rest.Start) {
			p.windows[i] = rest
		} else {
			p.windows = append(p.windows[:i], p.windows[i+1:]...)
		}
		return slot, true
	}
	return Window{}, false
}

// RequireSlot is FindSlot that fails with a SlottingError when no window
// qualifies.
func (p *Pool) RequireSlot(t task.Task) (Window, error) {
	slot, ok := p.FindSlot(t)
	if !ok {
		return Window{}, dperrors.SlottingError{
			TaskID:           t.ID,
			RequestedMinutes: t.CompleteTimeMinutes,
			RemainingMinutes: p.RemainingMinutes(),
		}
	}
	return slot, nil
}

// DetectConflicts simulates first-fit allocation of ranked tasks against a
// clone of the given pool and reports, in rank order, every estimated task
// that found no window with sufficient duration when it was considered. The
// caller's pool is never consumed. Tasks without an estimate are treated as
// fitting anywhere and neither conflict nor consume simulated time.
//
// The second return value is the free minutes left after the full simulated
// run.
func DetectConflicts(ranked []task.Task, p *Pool) ([]task.Task, int) {
	pool := p.Clone()

	var conflicts []task.Task
	for _, t := range ranked {
		if t.CompleteTimeMinutes <= 0 {
			continue
		}
		if _, ok := pool.FindSlot(t); !ok {
			conflicts = append(conflicts, t)
		}
	}
	return conflicts, pool.RemainingMinutes()
}
