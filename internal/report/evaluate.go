package report

import (
	"fmt"
	"strings"

	"github.com/vvka-141/autocheck/internal/config"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// TypeScriptTier grades feature adoption. All four categories met is a pass,
// at least two is a warning, fewer is a failure. Each unmet category adds a
// hint naming it.
func TypeScriptTier(c *autocheck.ScanCounters, th config.Thresholds) autocheck.CheckResult {
	categories := []struct {
		name string
		got  int
		min  int
	}{
		{"interfaces and type aliases", c.TypeDeclarations(), th.MinTypeDeclarations},
		{"generics", c.Generics, th.MinGenerics},
		{"enums", c.Enums, th.MinEnums},
		{"classes", c.Classes, th.MinClasses},
	}

	met := 0
	var hints []string
	for _, cat := range categories {
		if cat.got >= cat.min {
			met++
			continue
		}
		hints = append(hints, fmt.Sprintf("Use more %s (found %d, expected at least %d)", cat.name, cat.got, cat.min))
	}

	status := autocheck.StatusFail
	switch {
	case met == len(categories):
		status = autocheck.StatusPass
	case met >= 2:
		status = autocheck.StatusWarn
	}

	return autocheck.CheckResult{
		Name:    "TypeScript feature usage",
		Section: autocheck.SectionTypeScript,
		Status:  status,
		Detail:  fmt.Sprintf("%d of %d categories met", met, len(categories)),
		Hints:   hints,
	}
}

// AnyUsage fails on any occurrence of the disallowed type.
func AnyUsage(c *autocheck.ScanCounters) autocheck.CheckResult {
	r := autocheck.CheckResult{Name: "Explicit any", Section: autocheck.SectionQuality}
	if c.AnyUsages == 0 {
		r.Status = autocheck.StatusPass
		r.Detail = "none found"
		return r
	}
	r.Status = autocheck.StatusFail
	r.Detail = plural(c.AnyUsages, "occurrence")
	r.Hints = []string{"Replace any with a concrete type, unknown, or a generic parameter"}
	return r
}

// ConsoleLog passes at zero, warns up to the threshold and fails above it.
func ConsoleLog(c *autocheck.ScanCounters, th config.Thresholds) autocheck.CheckResult {
	r := graded("console.log statements", c.ConsoleLogs, th.ConsoleLogWarn)
	if r.Status != autocheck.StatusPass {
		r.Hints = []string{"Remove debug logging or route it through a logger"}
	}
	return r
}

// CommentedCode passes at zero, warns up to the threshold and fails above it.
func CommentedCode(c *autocheck.ScanCounters, th config.Thresholds) autocheck.CheckResult {
	r := graded("Commented-out code", c.CommentedCode, th.CommentedCodeWarn)
	if r.Status != autocheck.StatusPass {
		r.Hints = []string{"Delete dead code; version control keeps the history"}
	}
	return r
}

func graded(name string, n, warnMax int) autocheck.CheckResult {
	r := autocheck.CheckResult{Name: name, Section: autocheck.SectionQuality, Detail: plural(n, "line")}
	switch {
	case n == 0:
		r.Status = autocheck.StatusPass
		r.Detail = "none found"
	case n <= warnMax:
		r.Status = autocheck.StatusWarn
	default:
		r.Status = autocheck.StatusFail
	}
	return r
}

// Todo is informational up to the threshold and a warning above it.
func Todo(c *autocheck.ScanCounters, th config.Thresholds) autocheck.CheckResult {
	r := autocheck.CheckResult{
		Name:    "TODO/FIXME markers",
		Section: autocheck.SectionQuality,
		Status:  autocheck.StatusInfo,
		Detail:  plural(c.TodoMarkers, "marker"),
	}
	if c.TodoMarkers > th.TodoWarn {
		r.Status = autocheck.StatusWarn
		r.Hints = []string{"Turn old TODOs into tracked issues"}
	}
	return r
}

// ConventionalCommits grades the share of conventional subjects. A
// repository without commits is a warning.
func ConventionalCommits(c *autocheck.ScanCounters, th config.Thresholds) autocheck.CheckResult {
	r := autocheck.CheckResult{Name: "Conventional commits", Section: autocheck.SectionGit}
	if c.TotalCommits == 0 {
		r.Status = autocheck.StatusWarn
		r.Detail = "no commits yet"
		return r
	}

	pct := c.ConventionalPercent()
	r.Detail = fmt.Sprintf("%d of %d commits (%d%%)", c.ConventionalCommits, c.TotalCommits, pct)
	switch {
	case pct >= th.ConventionalGood:
		r.Status = autocheck.StatusPass
	case pct >= th.ConventionalFair:
		r.Status = autocheck.StatusWarn
	default:
		r.Status = autocheck.StatusFail
	}
	if r.Status != autocheck.StatusPass {
		r.Hints = []string{"Use subjects like \"feat(scope): summary\" or \"fix: summary\""}
	}
	return r
}

// UnwantedTracked fails when generated or secret files are committed.
func UnwantedTracked(c *autocheck.ScanCounters) autocheck.CheckResult {
	r := autocheck.CheckResult{Name: "Tracked build artifacts and secrets", Section: autocheck.SectionGit}
	if len(c.UnwantedTracked) == 0 {
		r.Status = autocheck.StatusPass
		r.Detail = "none tracked"
		return r
	}
	r.Status = autocheck.StatusFail
	r.Detail = plural(len(c.UnwantedTracked), "file")
	shown := c.UnwantedTracked
	if len(shown) > autocheck.MaxAnyLocationsShown {
		shown = shown[:autocheck.MaxAnyLocationsShown]
	}
	r.Hints = []string{"git rm --cached " + strings.Join(shown, " "), "Add the paths to .gitignore"}
	return r
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Verdict is the overall grade of a run.
type Verdict string

const (
	VerdictExcellent Verdict = "EXCELLENT"
	VerdictGood      Verdict = "GOOD"
	VerdictNeedsWork Verdict = "NEEDS WORK"
)

// Summary counts results per status.
type Summary struct {
	Pass, Warn, Fail, Skip, Info int
}

// Summarize tallies results.
func Summarize(results []autocheck.CheckResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case autocheck.StatusPass:
			s.Pass++
		case autocheck.StatusWarn:
			s.Warn++
		case autocheck.StatusFail:
			s.Fail++
		case autocheck.StatusSkip:
			s.Skip++
		case autocheck.StatusInfo:
			s.Info++
		}
	}
	return s
}

// Verdict is EXCELLENT with no failures or warnings, GOOD with no failures,
// NEEDS WORK otherwise.
func (s Summary) Verdict() Verdict {
	switch {
	case s.Fail == 0 && s.Warn == 0:
		return VerdictExcellent
	case s.Fail == 0:
		return VerdictGood
	default:
		return VerdictNeedsWork
	}
}
