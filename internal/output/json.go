package output

import (
	"encoding/json"
	"time"

	"github.com/avelis/dayplan/internal/plan"
	"github.com/avelis/dayplan/internal/review"
	"github.com/avelis/dayplan/internal/score"
	"github.com/avelis/dayplan/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Status              string  `json:"status"`
	Type                string  `json:"type,omitempty"`
	Energy              string  `json:"energy,omitempty"`
	Mentioned           int     `json:"mentioned"`
	CompleteTimeMinutes int     `json:"complete_time_minutes,omitempty"`
	ManualPriority      int     `json:"manual_priority,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           *string `json:"updated_at,omitempty"`
	BlockedBy           string  `json:"blocked_by,omitempty"`
	Source              string  `json:"source,omitempty"`
	Notes               string  `json:"notes,omitempty"`
}

func toTaskJSON(t task.Task) taskJSON {
	tj := taskJSON{
		ID:                  t.ID,
		Name:                t.Name,
		Status:              string(t.Status),
		Type:                string(t.Type),
		Energy:              string(t.Energy),
		Mentioned:           t.Mentioned,
		CompleteTimeMinutes: t.CompleteTimeMinutes,
		ManualPriority:      t.ManualPriority,
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
		BlockedBy:           t.BlockedBy,
		Source:              t.Source,
		Notes:               t.Notes,
	}
	if t.UpdatedAt != nil {
		s := t.UpdatedAt.Format(time.RFC3339)
		tj.UpdatedAt = &s
	}
	return tj
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(tasks []task.Task) string {
	jsonTasks := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		jsonTasks[i] = toTaskJSON(t)
	}
	return marshalJSON(jsonTasks)
}

// rankedEntryJSON is the JSON representation of a ranked task.
type rankedEntryJSON struct {
	Rank   int      `json:"rank"`
	Task   taskJSON `json:"task"`
	Score  int      `json:"score"`
	Reason string   `json:"reason"`
	Manual bool     `json:"manual"`
}

// rankedJSON is the JSON representation of a ranking result.
type rankedJSON struct {
	Entries []rankedEntryJSON `json:"entries"`
	Skipped []skippedJSON     `json:"skipped,omitempty"`
}

type skippedJSON struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

// FormatRanked formats a ranking result as JSON.
func (f *JSONFormatter) FormatRanked(entries []score.Entry, errs []score.ItemError) string {
	out := rankedJSON{Entries: make([]rankedEntryJSON, len(entries))}
	for i, e := range entries {
		out.Entries[i] = rankedEntryJSON{
			Rank:   i + 1,
			Task:   toTaskJSON(e.Task),
			Score:  e.Score,
			Reason: e.Reason,
			Manual: e.Manual,
		}
	}
	for _, ie := range errs {
		out.Skipped = append(out.Skipped, skippedJSON{TaskID: ie.TaskID, Error: ie.Err.Error()})
	}
	return marshalJSON(out)
}

// assignmentJSON is the JSON representation of a scheduled task.
type assignmentJSON struct {
	Task   taskJSON `json:"task"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Reason string   `json:"reason,omitempty"`
}

func toAssignmentJSON(a plan.Assignment) assignmentJSON {
	return assignmentJSON{
		Task:   toTaskJSON(a.Task),
		Start:  a.Slot.Start.Format(time.RFC3339),
		End:    a.Slot.End.Format(time.RFC3339),
		Reason: a.Reason,
	}
}

// planJSON is the JSON representation of a day plan.
type planJSON struct {
	Date             string           `json:"date"`
	CalendarApplied  bool             `json:"calendar_applied"`
	Morning          *assignmentJSON  `json:"morning,omitempty"`
	Scheduled        []assignmentJSON `json:"scheduled,omitempty"`
	Unscheduled      []taskJSON       `json:"unscheduled,omitempty"`
	Ranked           []taskJSON       `json:"ranked,omitempty"`
	RemainingMinutes int              `json:"remaining_minutes"`
}

// FormatPlan formats a day plan as JSON.
func (f *JSONFormatter) FormatPlan(p plan.Plan) string {
	out := planJSON{
		Date:             p.Date.Format("2006-01-02"),
		CalendarApplied:  p.CalendarApplied,
		RemainingMinutes: p.RemainingMinutes,
	}
	if !p.CalendarApplied {
		for _, e := range p.Ranked {
			out.Ranked = append(out.Ranked, toTaskJSON(e.Task))
		}
		return marshalJSON(out)
	}
	if p.Morning != nil {
		a := toAssignmentJSON(*p.Morning)
		out.Morning = &a
	}
	for _, a := range p.Scheduled {
		out.Scheduled = append(out.Scheduled, toAssignmentJSON(a))
	}
	for _, t := range p.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, toTaskJSON(t))
	}
	return marshalJSON(out)
}

// conflictsJSON is the JSON representation of the overcommitment report.
type conflictsJSON struct {
	Conflicts       []taskJSON `json:"conflicts"`
	OverflowMinutes int        `json:"overflow_minutes"`
}

// FormatConflicts formats the overcommitment report as JSON.
func (f *JSONFormatter) FormatConflicts(conflicts []task.Task, overflow int) string {
	out := conflictsJSON{Conflicts: make([]taskJSON, len(conflicts)), OverflowMinutes: overflow}
	for i, t := range conflicts {
		out.Conflicts[i] = toTaskJSON(t)
	}
	return marshalJSON(out)
}

// reviewJSON is the JSON representation of the weekly review.
type reviewJSON struct {
	WeekOf          string                `json:"week_of"`
	CompletedCount  int                   `json:"completed_count"`
	Completed       []taskJSON            `json:"completed,omitempty"`
	Energy          energyJSON            `json:"energy"`
	Procrastination []procrastinationJSON `json:"procrastination,omitempty"`
	OverrideRate    float64               `json:"override_rate"`
	Insights        []insightJSON         `json:"insights,omitempty"`
}

type energyJSON struct {
	Red     int `json:"red"`
	Yellow  int `json:"yellow"`
	Green   int `json:"green"`
	Unrated int `json:"unrated"`
}

type procrastinationJSON struct {
	Task   taskJSON `json:"task"`
	Reason string   `json:"reason"`
}

type insightJSON struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// FormatReview formats the weekly review as JSON.
func (f *JSONFormatter) FormatReview(s review.Summary) string {
	out := reviewJSON{
		WeekOf:         s.WeekOf.Format("2006-01-02"),
		CompletedCount: s.CompletedCount,
		Energy: energyJSON{
			Red:     s.Energy.Red,
			Yellow:  s.Energy.Yellow,
			Green:   s.Energy.Green,
			Unrated: s.Energy.Unrated,
		},
		OverrideRate: s.Overrides.OverrideRate(),
	}
	for _, t := range s.Completed {
		out.Completed = append(out.Completed, toTaskJSON(t))
	}
	for _, p := range s.Procrastination {
		out.Procrastination = append(out.Procrastination, procrastinationJSON{Task: toTaskJSON(p.Task), Reason: p.Reason})
	}
	for _, in := range s.Insights {
		out.Insights = append(out.Insights, insightJSON{Category: in.Category, Severity: string(in.Severity), Message: in.Message})
	}
	return marshalJSON(out)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
