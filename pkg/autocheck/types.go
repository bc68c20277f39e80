package autocheck

import (
	"regexp"
	"time"
)

// Status is the outcome tier of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
	StatusInfo Status = "info"
)

// Section groups checks in the report. Sections render in declaration order.
type Section int

const (
	SectionConfiguration Section = iota
	SectionDependencies
	SectionTypeScript
	SectionQuality
	SectionTooling
	SectionGit
)

// Sections lists every section in render order.
var Sections = []Section{
	SectionConfiguration,
	SectionDependencies,
	SectionTypeScript,
	SectionQuality,
	SectionTooling,
	SectionGit,
}

// Title returns the heading used in the report.
func (s Section) Title() string {
	switch s {
	case SectionConfiguration:
		return "Configuration"
	case SectionDependencies:
		return "Dependencies"
	case SectionTypeScript:
		return "TypeScript features"
	case SectionQuality:
		return "Code quality"
	case SectionTooling:
		return "Build & lint"
	case SectionGit:
		return "Git hygiene"
	default:
		return "Other"
	}
}

// CheckResult is produced once per check and never mutated afterwards.
type CheckResult struct {
	Name    string
	Section Section
	Status  Status
	Detail  string
	// Hints are actionable follow-ups shown under the result line.
	Hints []string
}

// Passed reports whether the check reached the pass tier.
func (r CheckResult) Passed() bool {
	return r.Status == StatusPass
}

// AnyUsageLocation records one line that matched a pattern rule.
type AnyUsageLocation struct {
	FilePath   string
	LineNumber int // 1-based
	LineText   string
}

// PatternMatch is the result of scanning a source tree with one rule.
// Count always equals len(Locations).
type PatternMatch struct {
	Count     int
	Locations []AnyUsageLocation
}

// Rule is a line-oriented textual pattern.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// SkipComments excludes lines that are themselves comments.
	SkipComments bool
}

// ScanCounters accumulates everything a run measures. One value is owned by a
// single run and passed by pointer through every step.
type ScanCounters struct {
	FilesScanned int

	Interfaces  int
	TypeAliases int
	Enums       int
	Generics    int
	Classes     int

	PrivateModifiers   int
	PublicModifiers    int
	ProtectedModifiers int

	AnyUsages    int
	AnyLocations []AnyUsageLocation

	ConsoleLogs   int
	CommentedCode int
	TodoMarkers   int

	LintErrors   int
	LintWarnings int

	TotalCommits        int
	ConventionalCommits int
	RecentCommits       []string
	UnwantedTracked     []string

	TypeScriptVersion string
	SourceFingerprint string
}

// ConventionalPercent is the integer share of conventional commits, 0 without commits.
func (c *ScanCounters) ConventionalPercent() int {
	return percent(c.ConventionalCommits, c.TotalCommits)
}

// TypeDeclarations is interfaces plus type aliases.
func (c *ScanCounters) TypeDeclarations() int {
	return c.Interfaces + c.TypeAliases
}

// Command describes one external tool invocation.
type Command struct {
	// Name labels the command in logs and the report, e.g. "lint".
	Name string
	Bin  string
	Args []string
	Dir  string
	// Timeout bounds the run; zero means DefaultToolTimeout.
	Timeout time.Duration
}

// ToolOutcome is the captured result of running a Command.
// A failing tool is an outcome, not an error.
type ToolOutcome struct {
	Command     string
	Success     bool
	TimedOut    bool
	ExitCode    int
	Output      string
	Diagnostics []string
	Errors      int
	Warnings    int
	Duration    time.Duration
}

// GitSummary is what inspecting a repository's history yields.
type GitSummary struct {
	IsRepository        bool
	TotalCommits        int
	ConventionalCommits int
	RecentSubjects      []string
	UnwantedTracked     []string
}

// ConventionalPercent is the integer share of conventional commits, 0 without commits.
func (g GitSummary) ConventionalPercent() int {
	return percent(g.ConventionalCommits, g.TotalCommits)
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
