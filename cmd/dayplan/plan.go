package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelis/dayplan/internal/calendar"
	"github.com/avelis/dayplan/internal/config"
	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/gcal"
	"github.com/avelis/dayplan/internal/plan"
	"github.com/avelis/dayplan/internal/repo"
	"github.com/avelis/dayplan/internal/score"
)

// rankActionable loads actionable tasks and ranks them.
func rankActionable(store repo.Repository, now time.Time) ([]score.Entry, []score.ItemError, error) {
	tasks, err := store.Query(repo.Filter{ActionableOnly: true})
	if err != nil {
		return nil, nil, err
	}
	entries, errs := score.NewEngine().Rank(tasks, now)
	return entries, errs, nil
}

// resolveDate parses the --date flag, defaulting to today.
func resolveDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	date, err := time.ParseInLocation("2006-01-02", flag, time.Local)
	if err != nil {
		return time.Time{}, dperrors.ValidationError{Field: "date", Reason: fmt.Sprintf("want YYYY-MM-DD, got %q", flag)}
	}
	return date, nil
}

// fetchWindows queries the calendar for the day's free windows. Calendar
// unavailability returns nil windows and no error; planning degrades to
// rank order.
func fetchWindows(cmd *cobra.Command, cfg *config.Config, date time.Time) ([]calendar.Window, error) {
	ctx := cmd.Context()
	svc, err := gcal.NewService(ctx, cfg.CalendarID)
	if err != nil {
		if errors.Is(err, dperrors.ErrCalendarUnavailable) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return nil, nil
		}
		return nil, err
	}
	windows, err := svc.FreeWindows(ctx, date, cfg.WorkStart, cfg.WorkEnd)
	if err != nil {
		if errors.Is(err, dperrors.ErrCalendarUnavailable) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return nil, nil
		}
		return nil, err
	}
	return windows, nil
}

// rankCmd implements 'dayplan rank'.
func rankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Rank actionable tasks by the scoring rules",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			entries, errs, err := rankActionable(store, time.Now())
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatRanked(entries, errs))
		},
	}
}

// planCmd implements 'dayplan plan'.
func planCmd() *cobra.Command {
	var dateFlag string
	var noCalendar bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Fit ranked tasks into the day's free calendar windows",
		Run: func(c *cobra.Command, _ []string) {
			cfg, err := config.Load()
			if err != nil {
				printError(err)
			}

			store, err := getStore()
			if err != nil {
				printError(err)
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				printError(err)
			}

			entries, _, err := rankActionable(store, time.Now())
			if err != nil {
				printError(err)
			}

			var windows []calendar.Window
			if !noCalendar {
				windows, err = fetchWindows(c, cfg, date)
				if err != nil {
					printError(err)
				}
			}

			p, err := plan.Build(entries, windows, date, plan.Config{
				BufferMinutes: cfg.BufferMinutes,
				MorningCutoff: cfg.MorningCutoff,
			})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatPlan(*p))
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to plan (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&noCalendar, "no-calendar", false, "Plan without querying the calendar")
	return cmd
}

// conflictsCmd implements 'dayplan conflicts'.
func conflictsCmd() *cobra.Command {
	var dateFlag string
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report estimated tasks that won't fit in today's free time",
		Run: func(c *cobra.Command, _ []string) {
			cfg, err := config.Load()
			if err != nil {
				printError(err)
			}

			store, err := getStore()
			if err != nil {
				printError(err)
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				printError(err)
			}

			entries, _, err := rankActionable(store, time.Now())
			if err != nil {
				printError(err)
			}

			windows, err := fetchWindows(c, cfg, date)
			if err != nil {
				printError(err)
			}
			if windows == nil {
				printOutput(formatter.FormatMessage("Calendar unavailable: no conflict detection possible."))
				return
			}

			conflicts, overflow := plan.Conflicts(entries, windows, plan.Config{
				BufferMinutes: cfg.BufferMinutes,
				MorningCutoff: cfg.MorningCutoff,
			})
			printOutput(formatter.FormatConflicts(conflicts, overflow))
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to check (YYYY-MM-DD, default today)")
	return cmd
}
