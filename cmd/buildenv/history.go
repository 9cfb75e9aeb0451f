package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/buildenv/internal/config"
	"github.com/ShayCichocki/buildenv/internal/state"
)

var (
	historyLimit int
	historyPurge time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent environment checks",
	Long: `List recorded environment checks, newest first.

Use --purge to delete entries older than the given duration.

Examples:
  buildenv history
  buildenv history --limit 5
  buildenv history --purge 720h
  buildenv history show <id>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if historyPurge > 0 {
			n, err := store.PurgeOldRuns(historyPurge)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Purged %d run(s) older than %s\n", n, historyPurge)
			return nil
		}

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintf(out, "No checks recorded in %s.\n", store.Path())
			return nil
		}
		printHistory(out, runs)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded check",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		return showRun(cmd.OutOrStdout(), store, args[0])
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show (0 for all)")
	historyCmd.Flags().DurationVar(&historyPurge, "purge", 0, "Delete runs older than this duration")
	historyCmd.AddCommand(historyShowCmd)
}

// openHistory opens the history database at path and applies migrations.
func openHistory(path string) (state.HistoryStore, error) {
	db, err := state.Open(path)
	if err != nil {
		return nil, err
	}

	var store state.HistoryStore = db
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// loadHistory opens the history database named by the configuration.
func loadHistory() (state.HistoryStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return openHistory(cfg.History.Path)
}

// showRun prints every recorded field of the run with the given ID.
func showRun(w io.Writer, store state.RunStore, id string) error {
	r, err := store.GetRun(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no recorded check with id %s", id)
	}

	fmt.Fprintf(w, "ID:         %s\n", r.ID)
	fmt.Fprintf(w, "Checked at: %s\n", r.CheckedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Base path:  %s\n", r.BasePath)
	fmt.Fprintf(w, "App:        %s\n", orDash(r.AppVersion))
	fmt.Fprintf(w, "Bazel:      %s\n", versionPair(r.BazelRequired, r.BazelActual, r.BazelOverridden))
	fmt.Fprintf(w, "Xcode:      %s\n", versionPair(r.XcodeRequired, r.XcodeActual, r.XcodeOverridden))
	fmt.Fprintf(w, "Outcome:    %s\n", r.Outcome)
	if r.Message != "" {
		fmt.Fprintf(w, "Message:    %s\n", r.Message)
	}
	return nil
}

func printHistory(w io.Writer, runs []state.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No checks recorded.")
		return
	}

	for _, r := range runs {
		line := fmt.Sprintf("%s  %s  %s  bazel %s  xcode %s",
			r.CheckedAt.Local().Format("2006-01-02 15:04:05"), r.ID, r.BasePath,
			versionPair(r.BazelRequired, r.BazelActual, r.BazelOverridden),
			versionPair(r.XcodeRequired, r.XcodeActual, r.XcodeOverridden))

		switch r.Outcome {
		case state.OutcomeReady:
			printStatus(w, "✓", line, color.FgGreen)
		case state.OutcomeFatal:
			printStatus(w, "✗", line+"  "+r.Message, color.FgRed)
		default:
			printStatus(w, "⚠", line+"  "+r.Message, color.FgYellow)
		}
	}
}

// printPreviousRun prints a one-line summary of the last check for the
// same base path.
func printPreviousRun(w io.Writer, r *state.Run) {
	fmt.Fprintf(w, "Previous check %s: %s (%s)\n",
		r.CheckedAt.Local().Format("2006-01-02 15:04:05"), r.Outcome, r.ID)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// versionPair formats required/actual versions for one tool.
func versionPair(required, actual string, overridden bool) string {
	switch {
	case actual == "" && required == "":
		return "-"
	case actual == "":
		return required
	case overridden:
		return fmt.Sprintf("%s (required %s)", actual, required)
	default:
		return actual
	}
}
