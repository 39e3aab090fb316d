package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/avelis/dayplan/internal/config"
	"github.com/avelis/dayplan/internal/repo"
	"github.com/avelis/dayplan/internal/review"
	"github.com/avelis/dayplan/internal/task"
)

// naggingCmd implements 'dayplan nagging'.
func naggingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nagging",
		Short: "List open tasks that keep coming up",
		Run: func(_ *cobra.Command, _ []string) {
			cfg, err := config.Load()
			if err != nil {
				printError(err)
			}

			store, err := getStore()
			if err != nil {
				printError(err)
			}

			open, err := store.Query(repo.Filter{OpenOnly: true})
			if err != nil {
				printError(err)
			}

			var nagging []task.Task
			for _, t := range open {
				if t.Mentioned >= cfg.ProcrastinationThreshold {
					nagging = append(nagging, t)
				}
			}
			printOutput(formatter.FormatTaskList(nagging))
		},
	}
}

// blockedCmd implements 'dayplan blocked'.
func blockedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocked",
		Short: "List blocked and waiting tasks with what they're stuck on",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			blocked, err := store.Query(repo.Filter{Status: task.StatusBlocked})
			if err != nil {
				printError(err)
			}
			waiting, err := store.Query(repo.Filter{Status: task.StatusWaiting})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTaskList(append(blocked, waiting...)))
		},
	}
}

// reviewCmd implements 'dayplan review'.
func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Summarize the past week",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			tasks, err := store.Query(repo.Filter{})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatReview(review.Summarize(tasks, time.Now())))
		},
	}
}
