package autocheck

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the few conditions that stop a run.
// Every other failure is recorded as a CheckResult instead of being returned.
//
// Example usage:
//
//	_, err := service.Run(ctx, opts)
//	if errors.Is(err, autocheck.ErrUserDeclined) {
//	    // the user chose not to continue
//	}
var (
	// ErrTargetNotFound indicates the project directory does not exist.
	ErrTargetNotFound = errors.New("target directory not found")

	// ErrUserDeclined indicates the user answered "no" to a confirmation prompt
	// that guards the whole run.
	ErrUserDeclined = errors.New("user declined")

	// ErrInvalidConfig indicates .autocheck.yaml or a flag value is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrChecksFailed is returned with --fail-on-error when at least one check failed.
	ErrChecksFailed = errors.New("one or more checks failed")
)

// TargetNotFoundError reports the path that could not be resolved.
type TargetNotFoundError struct {
	Path string
	Err  error
}

func (e *TargetNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("target directory not found: %s (%v)", e.Path, e.Err)
	}
	return fmt.Sprintf("target directory not found: %s", e.Path)
}

// Is lets errors.Is(err, ErrTargetNotFound) match.
func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}

func (e *TargetNotFoundError) Unwrap() error {
	return e.Err
}

// usageErrorFragments are the prefixes cobra uses for argument and flag errors.
var usageErrorFragments = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts at most",
	"accepts between",
	"accepts 1 arg",
	"invalid argument",
	"required flag",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrTargetNotFound):
		return ExitTargetNotFound
	case errors.Is(err, ErrUserDeclined):
		return ExitUserDeclined
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrChecksFailed):
		return ExitGeneralError
	}

	errStr := err.Error()
	for _, fragment := range usageErrorFragments {
		if strings.Contains(errStr, fragment) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
