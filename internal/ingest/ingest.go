// Package ingest turns noisy capture drafts into repository decisions.
//
// It never talks to the repository itself: callers supply a snapshot of open
// tasks and apply the returned decision (create or mention) through whatever
// store they own. This keeps task identity stable when the same intent is
// captured five different ways.
package ingest

import (
	"fmt"
	"strings"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/task"
)

// bulletPrefixes are the leading markers stripped from raw capture text.
var bulletPrefixes = []string{"- ", "* ", "• ", "→ "}

// Normalize canonicalizes a raw task description: leading bullet markers
// stripped, internal whitespace runs collapsed, edges trimmed. It is
// idempotent.
func Normalize(text string) string {
	name := strings.TrimSpace(text)
	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range bulletPrefixes {
			if strings.HasPrefix(name, prefix) {
				name = strings.TrimPrefix(name, prefix)
				stripped = true
				break
			}
		}
	}
	return strings.Join(strings.Fields(name), " ")
}

// Matcher supplies semantic duplicate detection beyond exact name matching.
// Implementations live outside the core; Match returns the ID of the open
// task the draft duplicates, or false.
type Matcher interface {
	Match(name string, open []task.Task) (string, bool)
}

// Action says what the repository should do with a decision.
type Action string

const (
	// ActionCreate creates a new task from the decision's draft.
	ActionCreate Action = "create"
	// ActionMention increments the mention counter on an existing task.
	ActionMention Action = "mention"
)

// Decision is the pure outcome of ingesting one draft. The caller applies it
// through the task repository.
type Decision struct {
	Action Action
	// Draft is populated for ActionCreate, normalized and with Mentioned = 1.
	Draft task.Draft
	// TaskID is populated for ActionMention.
	TaskID string
}

// Result pairs each processed draft with its decision or per-item error.
type Result struct {
	Decision Decision
	Err      error
}

// Ingest decides whether a draft is a new task or a repeat mention of an
// open task in the snapshot.
//
// The draft's name is normalized first. A case-insensitive match on an open
// task's normalized name, or a hit from the optional semantic matcher,
// yields a mention decision; anything else yields a create decision carrying
// the normalized draft.
func Ingest(draft task.Draft, open []task.Task, matcher Matcher) (Decision, error) {
	name := Normalize(draft.Name)
	if name == "" {
		return Decision{}, dperrors.ValidationError{Field: "name", Reason: "cannot be empty"}
	}

	draft.Name = name
	if draft.Status == "" {
		draft.Status = task.StatusTask
	}
	draft.Mentioned = 1
	if err := draft.Validate(); err != nil {
		return Decision{}, err
	}

	if id, ok := findDuplicate(name, open, matcher); ok {
		return Decision{Action: ActionMention, TaskID: id}, nil
	}
	return Decision{Action: ActionCreate, Draft: draft}, nil
}

// IngestBatch processes drafts in order against a working copy of the
// snapshot, so two drafts that normalize identically inside one batch
// resolve to one create plus one mention, never two creates. A draft that
// fails validation is reported in its Result and the batch continues.
func IngestBatch(drafts []task.Draft, open []task.Task, matcher Matcher) []Result {
	working := make([]task.Task, len(open))
	copy(working, open)

	results := make([]Result, 0, len(drafts))
	pendingID := 0
	for _, d := range drafts {
		decision, err := Ingest(d, working, matcher)
		results = append(results, Result{Decision: decision, Err: err})
		if err != nil {
			continue
		}
		if decision.Action == ActionCreate {
			// Track the create in the working snapshot under a placeholder
			// identity so later duplicates inside this batch become mentions.
			pendingID++
			working = append(working, task.Task{
				ID:        pendingPlaceholder(pendingID),
				Name:      decision.Draft.Name,
				Status:    decision.Draft.Status,
				Mentioned: 1,
			})
		}
	}
	return results
}

// pendingPlaceholder names an in-batch create that has no repository ID yet.
// Callers applying batch results must map mentions of placeholder IDs onto
// the task created earlier in the same batch.
func pendingPlaceholder(n int) string {
	return fmt.Sprintf("pending-%d", n)
}

func findDuplicate(name string, open []task.Task, matcher Matcher) (string, bool) {
	needle := strings.ToLower(name)
	for _, t := range open {
		if !t.Status.IsOpen() {
			continue
		}
		if strings.ToLower(Normalize(t.Name)) == needle {
			return t.ID, true
		}
	}
	if matcher != nil {
		if id, ok := matcher.Match(name, open); ok {
			return id, true
		}
	}
	return "", false
}
