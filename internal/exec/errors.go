package exec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotResolved is returned when a program cannot be found on the clean PATH.
var ErrNotResolved = errors.New("could not resolve executable")

// ResolveError reports which program failed to resolve.
type ResolveError struct {
	Program string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("Could not resolve %s to a valid executable file", e.Program)
}

// Unwrap lets errors.Is match ErrNotResolved.
func (e *ResolveError) Unwrap() error {
	return ErrNotResolved
}

// ProcessError is returned by Call when CheckResult is set and the command
// exits with a non-zero status.
type ProcessError struct {
	Argv     []string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", strings.Join(e.Argv, " "), e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
