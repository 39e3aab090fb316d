// Package score ranks actionable tasks with an additive rule table.
//
// Each rule is a (predicate, delta, reason) triple folded over every task:
// rules are not mutually exclusive, deltas stack without a cap, and a lower
// score means higher priority. New heuristics are added by appending to the
// table, not by touching control flow.
package score

import (
	"fmt"
	"sort"
	"time"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/task"
)

const (
	// TwoMinuteThreshold is the estimate, in minutes, at or under which a
	// task should just be done now.
	TwoMinuteThreshold = 2
	// ProcrastinationThreshold is the mention count that flags a task as
	// repeatedly avoided.
	ProcrastinationThreshold = 3
	// StaleDays is the age after which an untouched task gains pressure.
	StaleDays = 14

	noSignalsReason = "No special priority signals detected"
	maxReasonParts  = 3
)

// Rule is one scoring heuristic.
type Rule struct {
	Name    string
	Applies func(t task.Task, now time.Time) bool
	Delta   int
	Reason  func(t task.Task) string
}

// Entry is a ranked task with its score and the rules that fired.
type Entry struct {
	Task   task.Task
	Score  int
	Reason string
	Manual bool
}

// ItemError reports a single task that was rejected; the rest of the batch
// is unaffected.
type ItemError struct {
	TaskID string
	Err    error
}

// DefaultRules returns the rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "two-minute",
			Applies: func(t task.Task, _ time.Time) bool {
				return t.CompleteTimeMinutes > 0 && t.CompleteTimeMinutes <= TwoMinuteThreshold
			},
			Delta: -30,
			Reason: func(t task.Task) string {
				return fmt.Sprintf("Takes %dmin, do it now (2-minute rule)", t.CompleteTimeMinutes)
			},
		},
		{
			Name: "never-miss-twice",
			Applies: func(t task.Task, _ time.Time) bool {
				return t.Type == task.TypeNeverMissTwice
			},
			Delta:  -25,
			Reason: func(task.Task) string { return "Skipped recently, never miss twice" },
		},
		{
			Name: "identity",
			Applies: func(t task.Task, _ time.Time) bool {
				return t.Type == task.TypeIdentity
			},
			Delta:  -20,
			Reason: func(task.Task) string { return "Aligns with identity goals" },
		},
		{
			Name: "unblocks",
			Applies: func(t task.Task, _ time.Time) bool {
				return t.Type == task.TypeUnblocks
			},
			Delta:  -20,
			Reason: func(task.Task) string { return "Upstream work, unlocks other tasks" },
		},
		{
			Name: "procrastinating",
			Applies: func(t task.Task, _ time.Time) bool {
				return t.Mentioned >= ProcrastinationThreshold
			},
			Delta: -15,
			Reason: func(t task.Task) string {
				return fmt.Sprintf("Mentioned %dx, friction analysis needed", t.Mentioned)
			},
		},
		{
			Name: "stale",
			Applies: func(t task.Task, now time.Time) bool {
				return !t.CreatedAt.IsZero() && now.Sub(t.CreatedAt) >= StaleDays*24*time.Hour
			},
			Delta:  -10,
			Reason: func(task.Task) string { return "Created 14+ days ago without progress" },
		},
		{
			Name: "compounding",
			Applies: func(t task.Task, _ time.Time) bool {
				return t.Type == task.TypeCompound || t.Type == task.TypeImportantNotUrgent
			},
			Delta:  -10,
			Reason: func(task.Task) string { return "Builds over time, 1% better" },
		},
	}
}

// Engine scores and orders tasks against a rule table.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine with the default rule table.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules creates an Engine with a custom rule table.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Score computes the additive score and reason text for one task.
func (e *Engine) Score(t task.Task, now time.Time) (int, string) {
	score := 0
	var reasons []string
	for _, r := range e.rules {
		if r.Applies(t, now) {
			score += r.Delta
			reasons = append(reasons, r.Reason(t))
		}
	}
	return score, joinReasons(reasons)
}

// Rank produces a strict, deterministic total order over the given tasks.
//
// Tasks with a manual priority sort before all others, ordered by priority
// ascending then creation time; the rest sort by score ascending then
// creation time. Task ID is the final tie-break so identical input always
// yields identical output.
//
// Tasks in a non-actionable status are a contract violation: each is
// reported as an ItemError carrying a ValidationError, and the rest of the
// batch is ranked normally.
func (e *Engine) Rank(tasks []task.Task, now time.Time) ([]Entry, []ItemError) {
	var entries []Entry
	var errs []ItemError

	for _, t := range tasks {
		if !t.Status.IsActionable() {
			errs = append(errs, ItemError{
				TaskID: t.ID,
				Err: dperrors.ValidationError{
					TaskID: t.ID,
					Field:  "status",
					Reason: fmt.Sprintf("non-actionable status %q", t.Status),
				},
			})
			continue
		}

		s, reason := e.Score(t, now)
		entry := Entry{Task: t, Score: s, Manual: t.ManualPriority > 0}
		if entry.Manual && reason == noSignalsReason {
			entry.Reason = "Manual priority set"
		} else {
			entry.Reason = reason
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})

	return entries, errs
}

// entryLess returns true if entry a ranks before entry b.
func entryLess(a, b Entry) bool {
	if a.Manual != b.Manual {
		return a.Manual
	}
	if a.Manual {
		if a.Task.ManualPriority != b.Task.ManualPriority {
			return a.Task.ManualPriority < b.Task.ManualPriority
		}
		if !a.Task.CreatedAt.Equal(b.Task.CreatedAt) {
			return a.Task.CreatedAt.Before(b.Task.CreatedAt)
		}
		return a.Task.ID < b.Task.ID
	}
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if !a.Task.CreatedAt.Equal(b.Task.CreatedAt) {
		return a.Task.CreatedAt.Before(b.Task.CreatedAt)
	}
	return a.Task.ID < b.Task.ID
}

// joinReasons collapses rule reasons into a short rationale, keeping at most
// the first three fragments.
func joinReasons(reasons []string) string {
	switch {
	case len(reasons) == 0:
		return noSignalsReason
	case len(reasons) == 1:
		return reasons[0]
	default:
		if len(reasons) > maxReasonParts {
			reasons = reasons[:maxReasonParts]
		}
		joined := reasons[0]
		for _, r := range reasons[1:] {
			joined += ". " + r
		}
		return joined
	}
}
