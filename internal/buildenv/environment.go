package buildenv

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ShayCichocki/buildenv/internal/config"
	"github.com/ShayCichocki/buildenv/internal/exec"
	"github.com/ShayCichocki/buildenv/internal/logging"
)

// Stage is a step of environment initialization.
type Stage string

const (
	StageStart          Stage = "start"
	StageManifestLoaded Stage = "manifest_loaded"
	StageBazelChecked   Stage = "bazel_checked"
	StageXcodeChecked   Stage = "xcode_checked"
	StageReady          Stage = "ready"
)

// Options configures New.
type Options struct {
	// BasePath is the directory holding versions.json.
	BasePath string
	// BazelPath is the primary bazel binary.
	BazelPath string
	// BazelX86_64Path is an optional x86_64 bazel binary.
	BazelX86_64Path string

	// OverrideBazelVersion accepts the installed bazel version on mismatch.
	OverrideBazelVersion bool
	// OverrideXcodeVersion accepts the installed Xcode version on mismatch.
	OverrideXcodeVersion bool

	// Runner executes probes. Defaults to exec.NewRunner().
	Runner exec.CommandRunner
	// Out receives override notices. Defaults to os.Stdout.
	Out io.Writer
	// DirExists checks the developer directory. Defaults to os.Stat.
	DirExists func(string) bool
	// Logger receives stage transitions. Nil disables logging.
	Logger *logging.DebugLogger
}

// BuildEnvironment is a validated build environment.
type BuildEnvironment struct {
	BasePath        string
	BazelPath       string
	BazelX86_64Path string

	AppVersion   string
	BazelVersion string
	XcodeVersion string

	// Required holds the versions as read from the manifest, before any
	// override was applied.
	Required Manifest

	BazelOverridden bool
	XcodeOverridden bool
}

// New loads the manifest under opts.BasePath and checks the installed bazel
// and Xcode against it. On success every version field is final.
//
// A mismatch without the matching override flag, or a broken Xcode install,
// is reported as a *FatalError. Other failures are ordinary errors.
func New(ctx context.Context, opts Options) (*BuildEnvironment, error) {
	runner := opts.Runner
	if runner == nil {
		runner = exec.NewRunner()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := opts.Logger

	env := &BuildEnvironment{
		BasePath:  config.ExpandHome(opts.BasePath),
		BazelPath: config.ExpandHome(opts.BazelPath),
	}
	if opts.BazelX86_64Path != "" {
		env.BazelX86_64Path = config.ExpandHome(opts.BazelX86_64Path)
	}
	log.Log("buildenv: %s base=%s bazel=%s", StageStart, env.BasePath, env.BazelPath)

	manifest, err := LoadManifest(env.BasePath)
	if err != nil {
		return nil, err
	}
	env.Required = *manifest
	env.AppVersion = manifest.App
	env.BazelVersion = manifest.Bazel
	env.XcodeVersion = manifest.Xcode
	log.Log("buildenv: %s app=%s bazel=%s xcode=%s", StageManifestLoaded, manifest.App, manifest.Bazel, manifest.Xcode)

	actualBazel, err := BazelVersion(ctx, runner, env.BazelPath)
	if err != nil {
		return nil, err
	}
	if actualBazel != env.BazelVersion {
		if !opts.OverrideBazelVersion {
			return nil, fatalf(StageManifestLoaded, "Required bazel version is %q, but %q is reported by %s",
				env.BazelVersion, actualBazel, env.BazelPath)
		}
		fmt.Fprintf(out, "Overriding the required bazel version %s with %s as reported by %s\n",
			env.BazelVersion, actualBazel, env.BazelPath)
		env.BazelVersion = actualBazel
		env.BazelOverridden = true
	}
	log.Log("buildenv: %s bazel=%s overridden=%t", StageBazelChecked, env.BazelVersion, env.BazelOverridden)

	actualXcode, err := XcodeVersion(ctx, runner, opts.DirExists)
	if err != nil {
		return nil, err
	}
	if actualXcode != env.XcodeVersion {
		if !opts.OverrideXcodeVersion {
			return nil, fatalf(StageBazelChecked, "Required Xcode version is %s, but %s is reported by 'xcode-select -p'",
				env.XcodeVersion, actualXcode)
		}
		fmt.Fprintf(out, "Overriding the required Xcode version %s with %s as reported by 'xcode-select -p'\n",
			env.XcodeVersion, actualXcode)
		env.XcodeVersion = actualXcode
		env.XcodeOverridden = true
	}
	log.Log("buildenv: %s xcode=%s overridden=%t", StageXcodeChecked, env.XcodeVersion, env.XcodeOverridden)

	log.Log("buildenv: %s", StageReady)
	return env, nil
}
