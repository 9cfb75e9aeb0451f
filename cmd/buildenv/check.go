package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/buildenv/internal/buildenv"
	"github.com/ShayCichocki/buildenv/internal/config"
	"github.com/ShayCichocki/buildenv/internal/exec"
	"github.com/ShayCichocki/buildenv/internal/logging"
	"github.com/ShayCichocki/buildenv/internal/state"
)

// checkFlags holds the flags shared by check and watch.
type checkFlags struct {
	basePath      string
	bazelPath     string
	bazelX86Path  string
	overrideBazel bool
	overrideXcode bool
	output        string
	noHistory     bool
}

var checkOpts checkFlags

// newRunner builds the command runner used for probes. Replaced in tests.
var newRunner = func(logger *logging.DebugLogger) exec.CommandRunner {
	r := exec.NewRunner()
	r.Logger = logger
	return r
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate bazel and Xcode against versions.json",
	Long: `Validate the installed bazel and Xcode against <base-path>/versions.json.

Settings come from flags, BUILDENV_* environment variables, .buildenv.yaml
in the current directory or a parent, and ~/.config/buildenv/config.yaml,
in that order of precedence.

Examples:
  buildenv check
  buildenv check --base-path ~/src/app --bazel ~/bin/bazel
  buildenv check --override-bazel-version
  buildenv check --output yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := checkOpts.resolve(cmd)
		if err != nil {
			return err
		}
		_, err = runCheck(cmd.Context(), cfg, checkOpts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	addCheckFlags(checkCmd, &checkOpts)
}

func addCheckFlags(cmd *cobra.Command, f *checkFlags) {
	cmd.Flags().StringVar(&f.basePath, "base-path", "", "Directory containing versions.json")
	cmd.Flags().StringVar(&f.bazelPath, "bazel", "", "Path to the bazel binary")
	cmd.Flags().StringVar(&f.bazelX86Path, "bazel-x86-64", "", "Path to an x86_64 bazel binary")
	cmd.Flags().BoolVar(&f.overrideBazel, "override-bazel-version", false, "Use the installed bazel version on mismatch")
	cmd.Flags().BoolVar(&f.overrideXcode, "override-xcode-version", false, "Use the installed Xcode version on mismatch")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "Output format: text, yaml or json")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "Do not record this check in the history database")
}

// resolve loads the configuration and applies any flags set on cmd.
func (f checkFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	f.apply(cfg, func(name string) bool { return cmd.Flags().Changed(name) })

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if !isOutputFormat(f.output) {
		return nil, fmt.Errorf("unknown output format %q (want text, yaml or json)", f.output)
	}
	return cfg, nil
}

// apply copies explicitly set flags onto cfg.
func (f checkFlags) apply(cfg *config.Config, changed func(string) bool) {
	if changed("base-path") {
		cfg.BasePath = config.ExpandHome(f.basePath)
	}
	if changed("bazel") {
		cfg.Bazel.Path = config.ExpandHome(f.bazelPath)
	}
	if changed("bazel-x86-64") {
		cfg.Bazel.X86_64Path = config.ExpandHome(f.bazelX86Path)
	}
	if changed("override-bazel-version") {
		cfg.Overrides.BazelVersion = f.overrideBazel
	}
	if changed("override-xcode-version") {
		cfg.Overrides.XcodeVersion = f.overrideXcode
	}
	if changed("no-history") && f.noHistory {
		cfg.History.Enabled = false
	}
}

// runCheck validates the environment once, records the outcome and prints
// a report to out. Fatal failures come back as *buildenv.FatalError.
func runCheck(ctx context.Context, cfg *config.Config, f checkFlags, out io.Writer) (*buildenv.BuildEnvironment, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.NewDebugLogger(cfg.Log.Path)
	if err != nil {
		printStatus(os.Stderr, "⚠", fmt.Sprintf("debug log disabled: %v", err), color.FgYellow)
		logger = logging.NopLogger()
	}
	defer logger.Close()

	// Override notices go to stderr when a machine-readable report is requested.
	notices := out
	if f.output != "text" {
		notices = os.Stderr
	}

	env, checkErr := buildenv.New(ctx, buildenv.Options{
		BasePath:             cfg.BasePath,
		BazelPath:            cfg.Bazel.Path,
		BazelX86_64Path:      cfg.Bazel.X86_64Path,
		OverrideBazelVersion: cfg.Overrides.BazelVersion,
		OverrideXcodeVersion: cfg.Overrides.XcodeVersion,
		Runner:               newRunner(logger),
		Out:                  notices,
		Logger:               logger,
	})

	var previous *state.Run
	if cfg.History.Enabled {
		previous, err = recordRun(cfg, env, checkErr)
		if err != nil {
			logger.Log("history: %v", err)
			printStatus(os.Stderr, "⚠", fmt.Sprintf("could not record history: %v", err), color.FgYellow)
		}
	}

	if checkErr != nil {
		return nil, checkErr
	}
	if err := writeReport(out, f.output, env); err != nil {
		return nil, err
	}
	if f.output == "text" && previous != nil {
		printPreviousRun(out, previous)
	}
	return env, nil
}

// recordRun appends the outcome of a check to the history database and
// returns the run previously recorded for the same base path, if any.
func recordRun(cfg *config.Config, env *buildenv.BuildEnvironment, checkErr error) (*state.Run, error) {
	store, err := openHistory(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	run := runFromCheck(cfg.BasePath, env, checkErr)
	previous, err := store.LastRun(run.BasePath)
	if err != nil {
		return nil, err
	}
	if err := store.RecordRun(run); err != nil {
		return nil, err
	}
	return previous, nil
}

// runFromCheck converts the result of buildenv.New into a history row.
func runFromCheck(basePath string, env *buildenv.BuildEnvironment, checkErr error) *state.Run {
	r := &state.Run{BasePath: basePath}

	switch {
	case checkErr == nil:
		r.Outcome = state.OutcomeReady
	case buildenv.IsFatal(checkErr):
		r.Outcome = state.OutcomeFatal
		r.Message = checkErr.Error()
	default:
		r.Outcome = state.OutcomeError
		r.Message = checkErr.Error()
	}

	if env != nil {
		r.BasePath = env.BasePath
		r.AppVersion = env.AppVersion
		r.BazelRequired = env.Required.Bazel
		r.BazelActual = env.BazelVersion
		r.BazelOverridden = env.BazelOverridden
		r.XcodeRequired = env.Required.Xcode
		r.XcodeActual = env.XcodeVersion
		r.XcodeOverridden = env.XcodeOverridden
	} else if m, err := buildenv.LoadManifest(basePath); err == nil {
		r.AppVersion = m.App
		r.BazelRequired = m.Bazel
		r.XcodeRequired = m.Xcode
	}
	return r
}
