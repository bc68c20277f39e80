package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// InteractiveApprover implements the Approver interface for console-based
// yes/no confirmation. Only "y" or "yes" (any case) approves; every other
// answer, including an empty line, declines.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer

	// reader is shared across prompts so buffered answers are not lost
	// between questions.
	reader *bufio.Reader
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin.
func NewInteractiveApprover(verbose bool) autocheck.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval prints the question and waits for an answer. There is no
// timeout; only ctx cancellation interrupts the wait.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s [y/N]: ", question)
	if a.reader == nil {
		a.reader = bufio.NewReader(a.input)
	}
	reader := a.reader

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.output, "\n✗ No answer received. Treating as 'no'.")
			return false, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if isYes(input) {
			fmt.Fprintln(a.output, "✓ Confirmed.")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Answer '%s' is not 'yes'. Skipping.\n", input)
		return false, nil
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ autocheck.Approver = (*InteractiveApprover)(nil)
