// Package components holds bubbletea models shared by autocheck's terminal UI.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerState int

const (
	stateRunning spinnerState = iota
	stateSucceeded
	stateFailed
)

var (
	tickStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Spinner animates next to the command line of a running tool and shows how
// long it has been running. A SpinnerDoneMsg freezes it on a result line.
type Spinner struct {
	tick    spinner.Model
	label   string
	started time.Time
	now     func() time.Time
	state   spinnerState
	result  string
}

// NewSpinner starts the clock for a tool labelled label.
func NewSpinner(label string) Spinner {
	tick := spinner.New()
	tick.Spinner = spinner.Dot
	tick.Style = tickStyle

	return Spinner{
		tick:    tick,
		label:   label,
		started: time.Now(),
		now:     time.Now,
	}
}

// Init implements tea.Model.
func (s Spinner) Init() tea.Cmd {
	return s.tick.Tick
}

// Update implements tea.Model. Ticks stop once the spinner is done.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerDoneMsg:
		s.state = stateFailed
		if msg.Success {
			s.state = stateSucceeded
		}
		s.result = msg.Result
		return s, nil
	case spinner.TickMsg:
		if s.IsDone() {
			return s, nil
		}
		var cmd tea.Cmd
		s.tick, cmd = s.tick.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View implements tea.Model.
func (s Spinner) View() string {
	switch s.state {
	case stateSucceeded:
		return passStyle.Render("✓ " + s.result)
	case stateFailed:
		return failStyle.Render("✗ " + s.result)
	}

	line := s.tick.View() + " " + labelStyle.Render(s.label)
	if elapsed := s.now().Sub(s.started); elapsed >= time.Second {
		line += elapsedStyle.Render(fmt.Sprintf("  %ds", int(elapsed.Seconds())))
	}
	return line
}

// SpinnerDoneMsg ends the animation with a result line.
type SpinnerDoneMsg struct {
	Success bool
	Result  string
}

// SpinnerDone creates a success message.
func SpinnerDone(result string) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: true, Result: result}
}

// SpinnerFailed creates a failure message.
func SpinnerFailed(result string) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: false, Result: result}
}

// IsDone reports whether a SpinnerDoneMsg has been received.
func (s Spinner) IsDone() bool {
	return s.state != stateRunning
}

// IsSuccess reports whether the tool succeeded. False while running.
func (s Spinner) IsSuccess() bool {
	return s.state == stateSucceeded
}
