package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/buildenv/internal/buildenv"
	"github.com/ShayCichocki/buildenv/internal/exec"
)

var rootCmd = &cobra.Command{
	Use:   "buildenv",
	Short: "Validate the local build environment",
	Long: `buildenv checks that the installed bazel and Xcode match the versions
pinned in versions.json before a build starts.

Executables are resolved against a fixed PATH (/usr/bin:/bin:/usr/sbin:/sbin)
so the result does not depend on shell customization.

A version mismatch stops with exit status 1 unless the matching override
flag is given, in which case the installed version is used instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(err))
	}
}

// reportError prints err and returns the process exit status.
// Fatal validation failures print their diagnostic as-is; a failed child
// process passes its own exit status through.
func reportError(err error) int {
	if buildenv.IsFatal(err) {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return 1
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var procErr *exec.ProcessError
	if errors.As(err, &procErr) && procErr.ExitCode > 0 {
		return procErr.ExitCode
	}
	return 1
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
