package output

import (
	"github.com/avelis/dayplan/internal/plan"
	"github.com/avelis/dayplan/internal/review"
	"github.com/avelis/dayplan/internal/score"
	"github.com/avelis/dayplan/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t task.Task) string
	FormatTaskList(tasks []task.Task) string
	FormatRanked(entries []score.Entry, errs []score.ItemError) string
	FormatPlan(p plan.Plan) string
	FormatConflicts(conflicts []task.Task, overflow int) string
	FormatReview(s review.Summary) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
