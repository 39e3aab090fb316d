package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	dperrors "github.com/avelis/dayplan/internal/errors"
	"github.com/avelis/dayplan/internal/ingest"
	"github.com/avelis/dayplan/internal/output"
	"github.com/avelis/dayplan/internal/repo"
	"github.com/avelis/dayplan/internal/storage"
	"github.com/avelis/dayplan/internal/task"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput bool
	formatter  output.Formatter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dayplan",
		Short: "A deterministic task prioritizer and day planner",
		Long:  "dayplan - Captures tasks, ranks them by explicit rules, and fits them into your calendar's free windows.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		initCmd(),
		captureCmd(),
		listCmd(),
		showCmd(),
		mentionCmd(),
		tagCmd(),
		energyCmd(),
		statusCmd(),
		doneCmd(),
		priorityCmd(),
		rankCmd(),
		planCmd(),
		conflictsCmd(),
		naggingCmd(),
		blockedCmd(),
		reviewCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*storage.Store, error) {
	return storage.NewStore()
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// initCmd implements 'dayplan init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the dayplan task directory",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized dayplan at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// captureCmd implements 'dayplan capture'.
func captureCmd() *cobra.Command {
	var source, statusFlag, typeFlag, energyFlag string
	var estimate int
	cmd := &cobra.Command{
		Use:   "capture <text>...",
		Short: "Capture one or more task lines, deduplicating against open tasks",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			var status task.Status
			if statusFlag != "" {
				if status, err = task.ResolveStatus(statusFlag); err != nil {
					printError(err)
				}
			}
			var taskType task.Type
			if typeFlag != "" {
				if taskType, err = task.ResolveType(typeFlag); err != nil {
					printError(err)
				}
			}
			var energy task.Energy
			if energyFlag != "" {
				if energy, err = task.ResolveEnergy(energyFlag); err != nil {
					printError(err)
				}
			}

			open, err := store.Query(repo.Filter{OpenOnly: true})
			if err != nil {
				printError(err)
			}

			drafts := make([]task.Draft, len(args))
			for i, line := range args {
				drafts[i] = task.Draft{
					Name:                line,
					Status:              status,
					Type:                taskType,
					Energy:              energy,
					Source:              source,
					CompleteTimeMinutes: estimate,
				}
			}

			results := ingest.IngestBatch(drafts, open, nil)
			applied, err := repo.ApplyBatch(store, results)
			if err != nil {
				printError(err)
			}
			for _, r := range results {
				if r.Err != nil {
					printOutput(formatter.FormatError(r.Err))
				}
			}
			printOutput(formatter.FormatTaskList(applied))
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "capture", "Where the text came from")
	cmd.Flags().IntVarP(&estimate, "estimate", "e", 0, "Estimated minutes to complete")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Status for created tasks (task, project, idea, ...)")
	cmd.Flags().StringVarP(&typeFlag, "tag", "t", "", "Type tag for created tasks (identity, compound, [DO IT], ...)")
	cmd.Flags().StringVar(&energyFlag, "energy", "", "Energy rating for created tasks (red, yellow, green)")
	return cmd
}

// listCmd implements 'dayplan list'.
func listCmd() *cobra.Command {
	var status string
	var openOnly, actionableOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			filter := repo.Filter{OpenOnly: openOnly, ActionableOnly: actionableOnly}
			if status != "" {
				resolved, err := task.ResolveStatus(status)
				if err != nil {
					printError(err)
				}
				filter.Status = resolved
			}

			tasks, err := store.Query(filter)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTaskList(tasks))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Show only tasks with this status")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Show only open tasks")
	cmd.Flags().BoolVar(&actionableOnly, "actionable", false, "Show only actionable tasks")
	return cmd
}

// showCmd implements 'dayplan show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			t, err := store.Get(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// mentionCmd implements 'dayplan mention'.
func mentionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mention <id>",
		Short: "Record that a task came up again",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			t, err := store.IncrementMentioned(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// tagCmd implements 'dayplan tag'.
func tagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> <type>",
		Short: "Set a task's type (identity, compound, do-it-now, ...)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			taskType, err := task.ResolveType(args[1])
			if err != nil {
				printError(err)
			}

			t, err := store.Update(task.Mutation{ID: args[0], Type: taskType})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// energyCmd implements 'dayplan energy'.
func energyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "energy <id> <rating>",
		Short: "Rate how a task affects your energy (red, yellow, green)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			energy, err := task.ResolveEnergy(args[1])
			if err != nil {
				printError(err)
			}

			t, err := store.Update(task.Mutation{ID: args[0], Energy: energy})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// statusCmd implements 'dayplan status'.
func statusCmd() *cobra.Command {
	var blockedBy string
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			status, err := task.ResolveStatus(args[1])
			if err != nil {
				printError(err)
			}

			mut := task.Mutation{ID: args[0], Status: status}
			if blockedBy != "" {
				mut.BlockedBy = &blockedBy
			}

			t, err := store.Update(mut)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
	cmd.Flags().StringVar(&blockedBy, "by", "", "What the task is blocked on or waiting for")
	return cmd
}

// doneCmd implements 'dayplan done'.
func doneCmd() *cobra.Command {
	var actualMinutes int
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			mut := task.Mutation{ID: args[0], Status: task.StatusDone}
			if actualMinutes > 0 {
				mut.CompleteTimeMinutes = actualMinutes
			}

			t, err := store.Update(mut)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
	cmd.Flags().IntVarP(&actualMinutes, "minutes", "m", 0, "Actual minutes it took")
	return cmd
}

// priorityCmd implements 'dayplan priority'.
func priorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <rank>",
		Short: "Set a manual priority (0 clears it)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			rank, err := strconv.Atoi(args[1])
			if err != nil || rank < 0 {
				printError(dperrors.ValidationError{TaskID: args[0], Field: "priority", Reason: fmt.Sprintf("want a non-negative integer, got %q", args[1])})
			}

			t, err := store.Update(task.Mutation{ID: args[0], ManualPriority: &rank})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}
