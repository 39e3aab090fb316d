// Package calendar turns raw free-time windows into a day's schedulable
// pool: buffering, morning protection, and first-fit slot allocation.
//
// All functions are pure over explicitly passed values. The only mutable
// state is the Pool, which callers own and pass in; nothing here performs
// I/O or touches a clock.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	dperrors "github.com/avelis/dayplan/internal/errors"
)

// Window is a contiguous block of free time within a single day.
// Within any ordered window list, windows are non-overlapping and sorted
// by start.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Minutes returns the window length in whole minutes.
func (w Window) Minutes() int {
	return int(w.Duration() / time.Minute)
}

// Fits reports whether the window can hold the given number of minutes.
func (w Window) Fits(minutes int) bool {
	return w.Minutes() >= minutes
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", w.Start.Format("15:04"), w.End.Format("15:04"))
}

// TotalMinutes sums the duration of all windows.
func TotalMinutes(windows []Window) int {
	total := 0
	for _, w := range windows {
		total += w.Minutes()
	}
	return total
}

// ApplyBuffer shrinks both edges of each window by bufferMinutes and drops
// windows whose remaining duration is not positive. The input slice is
// never mutated; surviving windows keep their relative order.
func ApplyBuffer(windows []Window, bufferMinutes int) []Window {
	if bufferMinutes <= 0 {
		out := make([]Window, len(windows))
		copy(out, windows)
		return out
	}

	delta := time.Duration(bufferMinutes) * time.Minute
	var out []Window
	for _, w := range windows {
		shrunk := Window{Start: w.Start.Add(delta), End: w.End.Add(-delta)}
		if shrunk.End.After(shrunk.Start) {
			out = append(out, shrunk)
		}
	}
	return out
}

// ProtectMorning splits the earliest window at the cutoff instant, reserving
// the portion before the cutoff for the day's top-ranked task.
//
// Returns the morning window (nil when the earliest window starts at or
// after the cutoff, or when there are no windows) and the window list with
// the split applied in place of the original earliest window. Morning and
// remainder together reconstruct the original earliest window exactly; a
// remainder with no duration is dropped. Windows after the first are
// untouched.
func ProtectMorning(windows []Window, cutoff time.Time) (*Window, []Window) {
	if len(windows) == 0 {
		return nil, nil
	}

	first := windows[0]
	if !first.Start.Before(cutoff) {
		out := make([]Window, len(windows))
		copy(out, windows)
		return nil, out
	}

	morning := Window{Start: first.Start, End: first.End}
	if first.End.After(cutoff) {
		morning.End = cutoff
	}

	var out []Window
	remainder := Window{Start: cutoff, End: first.End}
	if remainder.End.After(remainder.Start) {
		out = append(out, remainder)
	}
	out = append(out, windows[1:]...)

	return &morning, out
}

// CutoffOn builds the cutoff instant for a given date from an HH:MM clock
// string, in the date's location.
func CutoffOn(date time.Time, clock string) (time.Time, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, dperrors.ValidationError{Field: "cutoff", Reason: fmt.Sprintf("want HH:MM, got %q", clock)}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, dperrors.ValidationError{Field: "cutoff", Reason: fmt.Sprintf("bad hour in %q", clock)}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, dperrors.ValidationError{Field: "cutoff", Reason: fmt.Sprintf("bad minute in %q", clock)}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
