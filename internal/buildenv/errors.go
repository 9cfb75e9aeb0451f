package buildenv

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when versions.json lacks a required field.
	ErrMissingField = errors.New("missing manifest field")

	// ErrInvalidField is returned when a versions.json field is not a string.
	ErrInvalidField = errors.New("invalid manifest field")

	// ErrInvalidBazelBinary is returned when `bazel --version` output does not
	// start with the expected prefix.
	ErrInvalidBazelBinary = errors.New("not a valid bazel binary")
)

// MissingFieldError names the absent field and the manifest it was read from.
type MissingFieldError struct {
	Field string
	Path  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing %s version in %s", e.Field, e.Path)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidFieldError reports a manifest field holding a non-string value.
type InvalidFieldError struct {
	Field string
	Path  string
	Value any
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid %s version in %s: %v is not a string", e.Field, e.Path, e.Value)
}

func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidField
}

// FatalError is an operator-facing failure that should stop the build.
// Callers at the top of a command line print Message and exit with status 1.
type FatalError struct {
	// Stage is the last stage completed before the failure.
	Stage   Stage
	Message string
}

func (e *FatalError) Error() string {
	return e.Message
}

// IsFatal reports whether err is or wraps a *FatalError.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

func fatalf(stage Stage, format string, args ...any) *FatalError {
	return &FatalError{Stage: stage, Message: fmt.Sprintf(format, args...)}
}
