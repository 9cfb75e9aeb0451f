// Package exec provides executable resolution and command execution against
// a sanitized environment.
package exec

import (
	"context"
)

// CommandRunner defines the interface for running external commands.
// This abstraction allows mocking command execution in tests.
type CommandRunner interface {
	// Output resolves program against the clean PATH, runs it with the clean
	// environment and returns combined stdout/stderr decoded as UTF-8.
	// The exit status is not interpreted.
	Output(ctx context.Context, program string, args ...string) (string, error)

	// Call resolves argv[0] and runs it with stdio attached to the current
	// process. See CallOptions for environment and exit-status handling.
	Call(ctx context.Context, argv []string, opts CallOptions) error
}

// CallOptions controls a direct-mode invocation.
type CallOptions struct {
	// UseCleanEnv runs the command with CleanEnv applied to the ambient
	// environment. When false the ambient environment is passed through.
	UseCleanEnv bool
	// CheckResult turns a non-zero exit status into a *ProcessError.
	CheckResult bool
}

// DefaultCallOptions mirrors the common case: clean environment, checked exit.
func DefaultCallOptions() CallOptions {
	return CallOptions{UseCleanEnv: true, CheckResult: true}
}
