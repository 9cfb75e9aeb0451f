package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/buildenv/internal/buildenv"
	"github.com/ShayCichocki/buildenv/internal/config"
)

var watchOpts checkFlags

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate whenever versions.json changes",
	Long: `Run a check, then run it again every time versions.json is written.

Failed checks are reported but do not stop watching. Press Ctrl-C to exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := watchOpts.resolve(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runWatch(ctx, cfg, watchOpts, cmd.OutOrStdout())
	},
}

func init() {
	addCheckFlags(watchCmd, &watchOpts)
}

func runWatch(ctx context.Context, cfg *config.Config, f checkFlags, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory instead.
	if err := watcher.Add(cfg.BasePath); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.BasePath, err)
	}

	check := func() {
		if _, err := runCheck(ctx, cfg, f, out); err != nil {
			printCheckError(out, err)
		}
	}

	check()
	return watchLoop(ctx, watcher.Events, watcher.Errors, func(name string) {
		fmt.Fprintf(out, "\n%s changed, checking again\n", name)
		check()
	})
}

// watchLoop calls onChange for every manifest write until ctx is done or
// the watcher is closed.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onChange func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if isManifestChange(ev) {
				onChange(ev.Name)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching manifest: %w", err)
		}
	}
}

func isManifestChange(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != buildenv.ManifestFileName {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// printCheckError reports a failed check without ending the watch.
func printCheckError(w io.Writer, err error) {
	if buildenv.IsFatal(err) {
		printStatus(w, "✗", err.Error(), color.FgRed)
		return
	}
	printStatus(w, "✗", fmt.Sprintf("Error: %v", err), color.FgRed)
}
