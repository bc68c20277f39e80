// Package toolrun runs project tooling (install, lint, build, tsc) and turns
// its output into a ToolOutcome.
package toolrun

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// waitDelay bounds how long Run waits for output pipes after the process is
// killed, so a grandchild holding stdout cannot hang the run.
const waitDelay = 2 * time.Second

// Runner implements autocheck.CommandRunner with os/exec.
type Runner struct {
	logger         autocheck.Logger
	defaultTimeout time.Duration
}

// NewRunner creates a Runner. A non-positive defaultTimeout means
// autocheck.DefaultToolTimeout.
// Panics if logger is nil.
func NewRunner(logger autocheck.Logger, defaultTimeout time.Duration) *Runner {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if defaultTimeout <= 0 {
		defaultTimeout = autocheck.DefaultToolTimeout
	}
	return &Runner{logger: logger, defaultTimeout: defaultTimeout}
}

// Run executes cmd once in cmd.Dir and captures stdout and stderr together.
// It never returns an error: a missing binary, a non-zero exit and a timeout
// all come back as an unsuccessful outcome.
func (r *Runner) Run(ctx context.Context, cmd autocheck.Command) autocheck.ToolOutcome {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	outcome := autocheck.ToolOutcome{Command: CommandLine(cmd)}
	r.logger.Verbose("Running %s in %s (timeout %s)", outcome.Command, cmd.Dir, timeout)

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// one writer for both streams, so exec serializes the writes
	out := newCappedWriter(autocheck.MaxToolOutputBytes)
	c := exec.CommandContext(execCtx, cmd.Bin, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = out
	c.Stderr = out
	c.WaitDelay = waitDelay

	start := time.Now()
	err := c.Run()
	outcome.Duration = time.Since(start)
	outcome.Output = out.String()
	if omitted := out.Omitted(); omitted > 0 {
		r.logger.Verbose("%s: kept the first and last %d bytes of output, %d bytes omitted",
			outcome.Command, autocheck.MaxToolOutputBytes, omitted)
	}

	switch {
	case err == nil:
		outcome.Success = true
	case errors.Is(execCtx.Err(), context.DeadlineExceeded):
		outcome.TimedOut = true
		outcome.ExitCode = -1
		outcome.Output = appendLine(outcome.Output, fmt.Sprintf("error: %s timed out after %s", cmd.Name, timeout))
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			// the process never started, e.g. the binary is not installed
			outcome.ExitCode = -1
			outcome.Output = appendLine(outcome.Output, fmt.Sprintf("error: %v", err))
		}
	}

	Triage(&outcome)

	if outcome.Success {
		r.logger.Verbose("%s finished in %s", outcome.Command, outcome.Duration.Round(time.Millisecond))
	} else {
		r.logger.Verbose("%s failed (exit %d) in %s", outcome.Command, outcome.ExitCode, outcome.Duration.Round(time.Millisecond))
	}
	return outcome
}

// CommandLine renders cmd the way a user would type it.
func CommandLine(cmd autocheck.Command) string {
	return strings.TrimSpace(cmd.Bin + " " + strings.Join(cmd.Args, " "))
}

func appendLine(s, line string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s + line + "\n"
}

var (
	// eslintSummary matches "✖ 12 problems (3 errors, 9 warnings)".
	eslintSummary = regexp.MustCompile(`(\d+) problems? \((\d+) errors?, (\d+) warnings?\)`)
	// tscSummary matches "Found 4 errors in 2 files.", "Found 1 error in
	// src/a.ts:3" and "Found 2 errors.".
	tscSummary = regexp.MustCompile(`(?m)^Found (\d+) errors?\b`)
)

// Triage fills Diagnostics, Errors and Warnings from Output.
//
// An ESLint summary line sets the counts whether or not the tool failed,
// since ESLint exits 0 when it only found warnings. A tsc "Found N errors"
// line sets the error count the same way. Without either, a failed
// run counts the lines mentioning "error" and "warning"; a successful run
// reports zero. Diagnostics, the first lines mentioning either word, are
// only collected for failed runs.
func Triage(outcome *autocheck.ToolOutcome) {
	outcome.Diagnostics = nil
	outcome.Errors, outcome.Warnings = 0, 0

	summaryFound := false
	if m := eslintSummary.FindAllStringSubmatch(outcome.Output, -1); len(m) > 0 {
		last := m[len(m)-1]
		outcome.Errors, _ = strconv.Atoi(last[2])
		outcome.Warnings, _ = strconv.Atoi(last[3])
		summaryFound = true
	} else if m := tscSummary.FindAllStringSubmatch(outcome.Output, -1); len(m) > 0 {
		outcome.Errors, _ = strconv.Atoi(m[len(m)-1][1])
		summaryFound = true
	}

	if outcome.Success {
		return
	}

	for _, line := range strings.Split(outcome.Output, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		hasError := strings.Contains(lower, "error")
		hasWarning := strings.Contains(lower, "warning")

		if !summaryFound {
			if hasError {
				outcome.Errors++
			}
			if hasWarning {
				outcome.Warnings++
			}
		}
		if (hasError || hasWarning) && len(outcome.Diagnostics) < autocheck.MaxDiagnosticLines {
			outcome.Diagnostics = append(outcome.Diagnostics, line)
		}
	}
}

var _ autocheck.CommandRunner = (*Runner)(nil)
