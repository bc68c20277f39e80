package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// ForcedApprover implements the Approver interface for --yes: every question is
// approved without reading input. The question is still echoed so the report
// reader can see what was auto-approved.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) autocheck.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr}
}

// RequestApproval approves unless ctx is already cancelled.
func (a *ForcedApprover) RequestApproval(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "%s [y/N]: y (--yes)\n", question)
	return true, nil
}

// NonInteractiveApprover declines every question. It is used when stdin is not
// a terminal and --yes was not given, so CI runs never block on a prompt.
type NonInteractiveApprover struct {
	output io.Writer
}

// NewNonInteractiveApprover creates a new NonInteractiveApprover.
func NewNonInteractiveApprover() autocheck.Approver {
	return &NonInteractiveApprover{output: os.Stderr}
}

// RequestApproval always declines.
func (a *NonInteractiveApprover) RequestApproval(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "%s [y/N]: n (non-interactive, pass --yes to approve)\n", question)
	return false, nil
}

var (
	_ autocheck.Approver = (*ForcedApprover)(nil)
	_ autocheck.Approver = (*NonInteractiveApprover)(nil)
)
