package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/autocheck/internal/tui/components"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// SpinnerRunner decorates a CommandRunner with an animated spinner while the
// command runs. Use it only in interactive mode.
type SpinnerRunner struct {
	inner  autocheck.CommandRunner
	out    io.Writer
	logger autocheck.Logger
}

// NewSpinnerRunner wraps inner, drawing on out (usually stderr).
// Panics if inner, out or logger is nil.
func NewSpinnerRunner(inner autocheck.CommandRunner, out io.Writer, logger autocheck.Logger) *SpinnerRunner {
	if inner == nil {
		panic("inner runner cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SpinnerRunner{inner: inner, out: out, logger: logger}
}

// Run delegates to the wrapped runner. The spinner never changes the outcome:
// if the UI fails to start, the command still runs to completion.
func (r *SpinnerRunner) Run(ctx context.Context, cmd autocheck.Command) autocheck.ToolOutcome {
	label := cmd.Bin
	for _, a := range cmd.Args {
		label += " " + a
	}

	p := tea.NewProgram(
		spinnerModel{spinner: components.NewSpinner(label)},
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(r.out),
		tea.WithoutSignalHandler(),
	)

	result := make(chan autocheck.ToolOutcome, 1)
	go func() {
		outcome := r.inner.Run(ctx, cmd)
		result <- outcome
		p.Send(doneMsg(label, outcome))
	}()

	if _, err := p.Run(); err != nil {
		r.logger.Verbose("spinner stopped: %v", err)
	}
	return <-result
}

func doneMsg(label string, o autocheck.ToolOutcome) components.SpinnerDoneMsg {
	elapsed := o.Duration.Round(100 * time.Millisecond)
	switch {
	case o.Success:
		return components.SpinnerDone(fmt.Sprintf("%s (%s)", label, elapsed))
	case o.TimedOut:
		return components.SpinnerFailed(fmt.Sprintf("%s timed out", label))
	default:
		return components.SpinnerFailed(fmt.Sprintf("%s failed with exit code %d (%s)", label, o.ExitCode, elapsed))
	}
}

// spinnerModel quits as soon as the wrapped spinner is done, leaving the
// final line on screen.
type spinnerModel struct {
	spinner components.Spinner
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Init()
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.spinner.IsDone() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.spinner.View() + "\n"
}

var _ autocheck.CommandRunner = (*SpinnerRunner)(nil)
