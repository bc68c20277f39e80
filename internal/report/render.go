// Package report grades scan counters, lays out the report and writes it to
// disk.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/autocheck/internal/tui"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// Report is everything one run prints.
type Report struct {
	RunID       string
	Target      string
	GeneratedAt time.Time
	Counters    autocheck.ScanCounters
	Results     []autocheck.CheckResult
}

// Render lays out r section by section. styled selects lipgloss colors for a
// terminal; the plain form is what Persist writes. Equal reports render to
// equal text.
func Render(r Report, styled bool) string {
	p := painter{styled: styled}
	var b strings.Builder

	header := strings.Join([]string{
		p.paint(tui.TitleStyle, "autocheck report"),
		"Run:       " + r.RunID,
		"Target:    " + r.Target,
		"Generated: " + r.GeneratedAt.Format("2006-01-02 15:04:05"),
	}, "\n")
	if styled {
		header = tui.BoxStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	for _, section := range autocheck.Sections {
		b.WriteString("\n")
		b.WriteString(p.sectionTitle(section.Title()))
		b.WriteString("\n")

		if section == autocheck.SectionTypeScript {
			writeFeatureCounts(&b, &r.Counters)
		}

		for _, res := range r.Results {
			if res.Section == section {
				writeResult(&b, p, res)
			}
		}

		switch section {
		case autocheck.SectionQuality:
			writeAnyLocations(&b, p, &r.Counters)
		case autocheck.SectionGit:
			writeRecentCommits(&b, p, r.Counters.RecentCommits)
		}
	}

	summary := Summarize(r.Results)
	b.WriteString("\n")
	b.WriteString(p.sectionTitle("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s  %s  %s  %s\n",
		p.paint(tui.SuccessStyle, fmt.Sprintf("%d passed", summary.Pass)),
		p.paint(tui.WarningStyle, fmt.Sprintf("%d warnings", summary.Warn)),
		p.paint(tui.ErrorStyle, fmt.Sprintf("%d failed", summary.Fail)),
		p.paint(tui.SkipStyle, fmt.Sprintf("%d skipped", summary.Skip)),
		p.paint(tui.InfoStyle, fmt.Sprintf("%d info", summary.Info)),
	)
	fmt.Fprintf(&b, "  Verdict: %s\n", p.paint(verdictStyle(summary.Verdict()), string(summary.Verdict())))

	return b.String()
}

type painter struct {
	styled bool
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p painter) sectionTitle(title string) string {
	if p.styled {
		return tui.SectionStyle.Render(title)
	}
	return "== " + title + " =="
}

func writeResult(b *strings.Builder, p painter, r autocheck.CheckResult) {
	marker := fmt.Sprintf("[%s]", tui.StatusSymbol(r.Status))
	line := fmt.Sprintf("  %s %s", p.paint(tui.StatusStyle(r.Status), marker), r.Name)
	if r.Detail != "" {
		line += ": " + r.Detail
	}
	b.WriteString(line)
	b.WriteString("\n")
	for _, hint := range r.Hints {
		fmt.Fprintf(b, "      %s %s\n", tui.SymbolArrowRight, p.paint(tui.DescriptionStyle, hint))
	}
}

func writeFeatureCounts(b *strings.Builder, c *autocheck.ScanCounters) {
	fmt.Fprintf(b, "  Interfaces: %d  Type aliases: %d  Enums: %d  Generics: %d  Classes: %d\n",
		c.Interfaces, c.TypeAliases, c.Enums, c.Generics, c.Classes)
	fmt.Fprintf(b, "  Access modifiers: private %d, public %d, protected %d\n",
		c.PrivateModifiers, c.PublicModifiers, c.ProtectedModifiers)
}

func writeAnyLocations(b *strings.Builder, p painter, c *autocheck.ScanCounters) {
	if len(c.AnyLocations) == 0 {
		return
	}
	b.WriteString("  Explicit any locations:\n")
	shown := c.AnyLocations
	if len(shown) > autocheck.MaxAnyLocationsShown {
		shown = shown[:autocheck.MaxAnyLocationsShown]
	}
	for _, loc := range shown {
		fmt.Fprintf(b, "    %s:%d  %s\n", loc.FilePath, loc.LineNumber, p.paint(tui.DescriptionStyle, loc.LineText))
	}
	if rest := c.AnyUsages - len(shown); rest > 0 {
		fmt.Fprintf(b, "    ... and %d more\n", rest)
	}
}

func writeRecentCommits(b *strings.Builder, p painter, subjects []string) {
	if len(subjects) == 0 {
		return
	}
	b.WriteString("  Recent commits:\n")
	for _, s := range subjects {
		fmt.Fprintf(b, "    %s %s\n", tui.SymbolBullet, p.paint(tui.DescriptionStyle, s))
	}
}

func verdictStyle(v Verdict) lipgloss.Style {
	switch v {
	case VerdictExcellent:
		return tui.SuccessStyle.Bold(true)
	case VerdictGood:
		return tui.WarningStyle.Bold(true)
	default:
		return tui.ErrorStyle.Bold(true)
	}
}
