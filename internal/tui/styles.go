package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for the terminal report.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	// Header box around the run metadata
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	SkipStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolWarning    = "!"
	SymbolInfo       = "i"
	SymbolSkip       = "-"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// StatusSymbol returns the marker printed before a check result.
func StatusSymbol(s autocheck.Status) string {
	switch s {
	case autocheck.StatusPass:
		return SymbolCheck
	case autocheck.StatusFail:
		return SymbolCross
	case autocheck.StatusWarn:
		return SymbolWarning
	case autocheck.StatusInfo:
		return SymbolInfo
	default:
		return SymbolSkip
	}
}

// StatusStyle returns the color for a status.
func StatusStyle(s autocheck.Status) lipgloss.Style {
	switch s {
	case autocheck.StatusPass:
		return SuccessStyle
	case autocheck.StatusFail:
		return ErrorStyle
	case autocheck.StatusWarn:
		return WarningStyle
	case autocheck.StatusInfo:
		return InfoStyle
	default:
		return SkipStyle
	}
}
