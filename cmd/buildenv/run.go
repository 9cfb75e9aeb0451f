package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/buildenv/internal/exec"
)

var (
	runAmbientEnv bool
	runNoCheck    bool
)

var runCmd = &cobra.Command{
	Use:   "run -- <program> [args...]",
	Short: "Run a program resolved from the clean PATH",
	Long: `Resolve <program> against /usr/bin:/bin:/usr/sbin:/sbin and run it with
stdio attached.

By default the child gets the clean environment and a non-zero exit status
is reported as an error.

Flags after <program> are passed to it, so "--" is optional. A failing
program's exit status becomes buildenv's exit status.

Examples:
  buildenv run xcode-select -p
  buildenv run -- xcode-select -p
  buildenv run --ambient-env -- git status
  buildenv run --no-check -- plutil -lint Info.plist`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := newRunner(nil)
		return runner.Call(cmd.Context(), args, exec.CallOptions{
			UseCleanEnv: !runAmbientEnv,
			CheckResult: !runNoCheck,
		})
	},
}

func init() {
	runCmd.Flags().BoolVar(&runAmbientEnv, "ambient-env", false, "Pass the current environment through unchanged")
	runCmd.Flags().BoolVar(&runNoCheck, "no-check", false, "Ignore the program's exit status")
	runCmd.Flags().SetInterspersed(false)
}
