package output

import (
	"fmt"
	"strings"

	"github.com/avelis/dayplan/internal/plan"
	"github.com/avelis/dayplan/internal/review"
	"github.com/avelis/dayplan/internal/score"
	"github.com/avelis/dayplan/internal/task"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", t.ID, t.Name))
	sb.WriteString(fmt.Sprintf("  Status:    %s\n", t.Status))
	if t.Type != "" {
		sb.WriteString(fmt.Sprintf("  Type:      %s\n", t.Type))
	}
	if t.Energy != "" {
		sb.WriteString(fmt.Sprintf("  Energy:    %s\n", t.Energy))
	}
	sb.WriteString(fmt.Sprintf("  Mentioned: %d\n", t.Mentioned))
	if t.CompleteTimeMinutes > 0 {
		sb.WriteString(fmt.Sprintf("  Estimate:  %d min\n", t.CompleteTimeMinutes))
	}
	if t.ManualPriority > 0 {
		sb.WriteString(fmt.Sprintf("  Priority:  %d (manual)\n", t.ManualPriority))
	}
	sb.WriteString(fmt.Sprintf("  Created:   %s\n", t.CreatedAt.Format("2006-01-02 15:04")))
	if t.UpdatedAt != nil {
		sb.WriteString(fmt.Sprintf("  Updated:   %s\n", t.UpdatedAt.Format("2006-01-02 15:04")))
	}
	if t.BlockedBy != "" {
		sb.WriteString(fmt.Sprintf("  Blocked:   %s\n", t.BlockedBy))
	}
	if t.Notes != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Notes)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(f.formatTaskLine(t))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(t task.Task) string {
	icon := f.statusIcon(t.Status)
	estimate := ""
	if t.CompleteTimeMinutes > 0 {
		estimate = fmt.Sprintf(" (%dm)", t.CompleteTimeMinutes)
	}
	blocked := ""
	if t.BlockedBy != "" {
		blocked = fmt.Sprintf(" [blocked by: %s]", t.BlockedBy)
	}
	return fmt.Sprintf("%s [%s] %s%s%s\n", icon, t.ID, t.Name, estimate, blocked)
}

func (f *HumanFormatter) statusIcon(s task.Status) string {
	switch s {
	case task.StatusTask:
		return "[ ]"
	case task.StatusProject:
		return "[P]"
	case task.StatusIdea:
		return "[i]"
	case task.StatusNotNow:
		return "[z]"
	case task.StatusBlocked, task.StatusWaiting:
		return "[B]"
	case task.StatusDone:
		return "[X]"
	case task.StatusWontDo:
		return "[-]"
	default:
		return "[?]"
	}
}

// FormatRanked formats a ranked task list with scores and reasons.
func (f *HumanFormatter) FormatRanked(entries []score.Entry, errs []score.ItemError) string {
	var sb strings.Builder

	if len(entries) == 0 {
		sb.WriteString("No actionable tasks.\n")
	}
	for i, e := range entries {
		marker := " "
		if e.Manual {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("%2d.%s [%s] %s (%d) %s\n", i+1, marker, e.Task.ID, e.Task.Name, e.Score, e.Reason))
	}
	for _, ie := range errs {
		sb.WriteString(fmt.Sprintf("    skipped %s: %s\n", ie.TaskID, ie.Err))
	}
	return sb.String()
}

// FormatPlan formats a day plan as a schedule.
func (f *HumanFormatter) FormatPlan(p plan.Plan) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Plan for %s\n", p.Date.Format("Mon Jan 2")))

	if !p.CalendarApplied {
		sb.WriteString("  (calendar unavailable, showing rank order only)\n")
		for i, e := range p.Ranked {
			sb.WriteString(fmt.Sprintf("  %2d. [%s] %s\n", i+1, e.Task.ID, e.Task.Name))
		}
		return sb.String()
	}

	if p.Morning != nil {
		sb.WriteString(fmt.Sprintf("  %s  [%s] %s (morning block)\n", f.slotLabel(p.Morning), p.Morning.Task.ID, p.Morning.Task.Name))
	}
	for i := range p.Scheduled {
		a := &p.Scheduled[i]
		sb.WriteString(fmt.Sprintf("  %s  [%s] %s\n", f.slotLabel(a), a.Task.ID, a.Task.Name))
	}
	for _, t := range p.Unscheduled {
		sb.WriteString(fmt.Sprintf("  unscheduled  [%s] %s\n", t.ID, t.Name))
	}
	sb.WriteString(fmt.Sprintf("  %d min free\n", p.RemainingMinutes))
	return sb.String()
}

func (f *HumanFormatter) slotLabel(a *plan.Assignment) string {
	return fmt.Sprintf("%s-%s", a.Slot.Start.Format("15:04"), a.Slot.End.Format("15:04"))
}

// FormatConflicts formats the overcommitment report.
func (f *HumanFormatter) FormatConflicts(conflicts []task.Task, overflow int) string {
	if len(conflicts) == 0 {
		return "No conflicts: everything with an estimate fits today.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overcommitted by %d min. Won't fit:\n", overflow))
	for _, t := range conflicts {
		sb.WriteString(fmt.Sprintf("  [%s] %s (%dm)\n", t.ID, t.Name, t.CompleteTimeMinutes))
	}
	return sb.String()
}

// FormatReview formats the weekly review summary.
func (f *HumanFormatter) FormatReview(s review.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Week of %s\n", s.WeekOf.Format("Jan 2")))
	sb.WriteString(fmt.Sprintf("  Completed: %d\n", s.CompletedCount))

	if s.Energy.Total() > 0 {
		sb.WriteString(fmt.Sprintf("  Energy: %d red / %d yellow / %d green", s.Energy.Red, s.Energy.Yellow, s.Energy.Green))
		if s.Energy.Unrated > 0 {
			sb.WriteString(fmt.Sprintf(" (%d unrated)", s.Energy.Unrated))
		}
		sb.WriteString("\n")
	}

	if len(s.Procrastination) > 0 {
		sb.WriteString("  Avoiding:\n")
		for _, p := range s.Procrastination {
			sb.WriteString(fmt.Sprintf("    [%s] %s: %s\n", p.Task.ID, p.Task.Name, p.Reason))
		}
	}

	total := s.Overrides.ManualCount + s.Overrides.AutoCount
	if total > 0 {
		sb.WriteString(fmt.Sprintf("  Manual overrides: %d of %d open tasks\n", s.Overrides.ManualCount, total))
	}

	for _, in := range s.Insights {
		prefix := "  -"
		if in.Severity == review.SeverityWarning {
			prefix = "  !"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", prefix, in.Message))
	}
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
