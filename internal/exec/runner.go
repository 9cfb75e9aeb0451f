package exec

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ShayCichocki/buildenv/internal/logging"
)

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct {
	// Resolver locates executables. The zero value searches the clean PATH.
	Resolver Resolver
	// Environ returns the ambient environment. Defaults to os.Environ.
	Environ func() []string
	// Stdin, Stdout and Stderr are attached to direct-mode invocations.
	// They default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives a line per invocation. Nil disables logging.
	Logger *logging.DebugLogger
}

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Output runs program with the clean environment and returns the combined
// output as text, trailing newline included.
func (r *ExecRunner) Output(ctx context.Context, program string, args ...string) (string, error) {
	path, ok := r.Resolver.Resolve(program)
	if !ok {
		return "", &ResolveError{Program: program}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = CleanEnv(r.environ())
	r.Logger.Log("output: %s %s", path, strings.Join(args, " "))

	out, err := cmd.CombinedOutput()
	if err != nil {
		// The exit status belongs to the caller; only start failures matter.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", err
		}
	}
	return strings.ToValidUTF8(string(out), "�"), nil
}

// Call runs argv with stdio attached. With opts.CheckResult a non-zero exit
// is reported as a *ProcessError; otherwise the exit status is discarded.
func (r *ExecRunner) Call(ctx context.Context, argv []string, opts CallOptions) error {
	if len(argv) == 0 {
		return &ResolveError{Program: ""}
	}
	path, ok := r.Resolver.Resolve(argv[0])
	if !ok {
		return &ResolveError{Program: argv[0]}
	}

	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	if opts.UseCleanEnv {
		cmd.Env = CleanEnv(r.environ())
	} else {
		cmd.Env = r.environ()
	}
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	r.Logger.Log("call: %s %s (clean_env=%t check=%t)", path, strings.Join(argv[1:], " "), opts.UseCleanEnv, opts.CheckResult)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if !opts.CheckResult {
			return nil
		}
		resolved := append([]string{path}, argv[1:]...)
		return &ProcessError{Argv: resolved, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return err
}

func (r *ExecRunner) environ() []string {
	if r.Environ != nil {
		return r.Environ()
	}
	return os.Environ()
}

// Verify ExecRunner implements CommandRunner at compile time.
var _ CommandRunner = (*ExecRunner)(nil)
