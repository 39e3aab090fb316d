// Package review computes weekly review summaries from a task snapshot.
//
// Everything here is pure computation; persisting review records is the
// caller's concern.
package review

import (
	"fmt"
	"time"

	"github.com/avelis/dayplan/internal/score"
	"github.com/avelis/dayplan/internal/task"
)

const (
	// energyDrainThreshold is the red-task ratio that flags a draining week.
	energyDrainThreshold = 0.5
	// highOverrideThreshold is the manual-priority ratio that suggests the
	// automatic ranking isn't trusted.
	highOverrideThreshold = 0.5
	// staleClusterThreshold is how many stale tasks make a backlog smell.
	staleClusterThreshold = 3

	weekLookback = 7 * 24 * time.Hour
)

// EnergyBreakdown is the distribution of energy ratings across completed
// tasks.
type EnergyBreakdown struct {
	Red     int
	Yellow  int
	Green   int
	Unrated int
}

// Total returns the number of tasks counted.
func (b EnergyBreakdown) Total() int {
	return b.Red + b.Yellow + b.Green + b.Unrated
}

// DrainRatio returns the fraction of rated tasks that were energy-draining.
func (b EnergyBreakdown) DrainRatio() float64 {
	rated := b.Red + b.Yellow + b.Green
	if rated == 0 {
		return 0
	}
	return float64(b.Red) / float64(rated)
}

// ProcrastinationItem is a task flagged for avoidance attention.
type ProcrastinationItem struct {
	Task   task.Task
	Reason string
}

// OverrideSummary counts manual priority overrides among open tasks.
type OverrideSummary struct {
	ManualCount int
	AutoCount   int
	ManualTasks []task.Task
}

// OverrideRate returns the fraction of open tasks with a manual priority.
func (s OverrideSummary) OverrideRate() float64 {
	total := s.ManualCount + s.AutoCount
	if total == 0 {
		return 0
	}
	return float64(s.ManualCount) / float64(total)
}

// Severity grades an insight.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Insight is one data-backed observation about the week.
type Insight struct {
	Category string
	Severity Severity
	Message  string
}

// Summary is the full weekly review output: plain data for presentation.
type Summary struct {
	WeekOf          time.Time
	Completed       []task.Task
	CompletedCount  int
	Energy          EnergyBreakdown
	Procrastination []ProcrastinationItem
	Overrides       OverrideSummary
	Insights        []Insight
}

// Summarize builds the weekly review from the full task snapshot.
func Summarize(tasks []task.Task, now time.Time) Summary {
	s := Summary{WeekOf: now.Add(-weekLookback)}

	for _, t := range tasks {
		switch {
		case t.Status == task.StatusDone:
			if completedThisWeek(t, now) {
				s.Completed = append(s.Completed, t)
				s.Energy = countEnergy(s.Energy, t.Energy)
			}
		case t.Status.IsOpen():
			if t.ManualPriority > 0 {
				s.Overrides.ManualCount++
				s.Overrides.ManualTasks = append(s.Overrides.ManualTasks, t)
			} else {
				s.Overrides.AutoCount++
			}
			if item, flagged := flagProcrastination(t, now); flagged {
				s.Procrastination = append(s.Procrastination, item)
			}
		}
	}
	s.CompletedCount = len(s.Completed)
	s.Insights = buildInsights(s)
	return s
}

func completedThisWeek(t task.Task, now time.Time) bool {
	if t.UpdatedAt == nil {
		return false
	}
	return now.Sub(*t.UpdatedAt) <= weekLookback
}

func countEnergy(b EnergyBreakdown, e task.Energy) EnergyBreakdown {
	switch e {
	case task.EnergyRed:
		b.Red++
	case task.EnergyYellow:
		b.Yellow++
	case task.EnergyGreen:
		b.Green++
	default:
		b.Unrated++
	}
	return b
}

func flagProcrastination(t task.Task, now time.Time) (ProcrastinationItem, bool) {
	if t.Mentioned >= score.ProcrastinationThreshold {
		return ProcrastinationItem{
			Task:   t,
			Reason: fmt.Sprintf("mentioned %d times", t.Mentioned),
		}, true
	}
	if !t.CreatedAt.IsZero() {
		age := now.Sub(t.CreatedAt)
		if age >= score.StaleDays*24*time.Hour {
			return ProcrastinationItem{
				Task:   t,
				Reason: fmt.Sprintf("stale for %d days", int(age.Hours()/24)),
			}, true
		}
	}
	return ProcrastinationItem{}, false
}

func buildInsights(s Summary) []Insight {
	var insights []Insight

	insights = append(insights, Insight{
		Category: "velocity",
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("%d tasks completed this week", s.CompletedCount),
	})

	if ratio := s.Energy.DrainRatio(); ratio >= energyDrainThreshold {
		insights = append(insights, Insight{
			Category: "energy",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%.0f%% of rated completions were energy-draining", ratio*100),
		})
	}

	if rate := s.Overrides.OverrideRate(); rate >= highOverrideThreshold && s.Overrides.ManualCount > 0 {
		insights = append(insights, Insight{
			Category: "override",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%.0f%% of open tasks carry a manual priority; the ranking may need retuning", rate*100),
		})
	}

	staleCount := 0
	for _, item := range s.Procrastination {
		if item.Task.Mentioned < score.ProcrastinationThreshold {
			staleCount++
		}
	}
	if staleCount >= staleClusterThreshold {
		insights = append(insights, Insight{
			Category: "procrastination",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d tasks have sat untouched for %d+ days", staleCount, score.StaleDays),
		})
	}

	return insights
}
