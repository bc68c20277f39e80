// Package gitinfo reads commit subjects and tracked files from a git work tree.
package gitinfo

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// gitFunc runs git with args in dir and returns stdout.
type gitFunc func(ctx context.Context, dir string, args ...string) (string, error)

func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// Inspector implements autocheck.GitInspector by shelling out to git.
type Inspector struct {
	logger       autocheck.Logger
	git          gitFunc
	conventional *regexp.Regexp
	unwanted     *Matcher
}

// NewInspector creates an Inspector that treats subjects starting with one
// of conventionalTypes as conventional commits and flags tracked files
// matching unwantedPatterns.
// Panics if logger is nil.
func NewInspector(logger autocheck.Logger, conventionalTypes, unwantedPatterns []string) *Inspector {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Inspector{
		logger:       logger,
		git:          execGit,
		conventional: ConventionalPattern(conventionalTypes),
		unwanted:     NewMatcher(unwantedPatterns),
	}
}

// ConventionalPattern builds `^(type1|type2)(\(scope\))?!?: subject`.
func ConventionalPattern(types []string) *regexp.Regexp {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)(\([^)]+\))?!?: .+`)
}

// IsConventional reports whether subject follows the conventional format.
func (i *Inspector) IsConventional(subject string) bool {
	return i.conventional.MatchString(subject)
}

// logFormat prints one record per commit. The hash keeps commits with an
// empty subject from collapsing into blank lines.
const logFormat = "--format=%H %s"

// Inspect counts the commits reachable from HEAD and keeps the newest recent
// subjects. When dir is a subdirectory of the work tree (a project inside a
// monorepo) only commits touching dir are counted and only files under dir
// are checked. A directory outside any work tree yields IsRepository=false
// and no error; so does a missing git binary.
func (i *Inspector) Inspect(ctx context.Context, dir string, recent int) (autocheck.GitSummary, error) {
	var summary autocheck.GitSummary

	out, err := i.git(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		i.logger.Verbose("%s is not a git work tree", dir)
		return summary, nil
	}
	summary.IsRepository = true

	prefix, err := i.git(ctx, dir, "rev-parse", "--show-prefix")
	if err != nil {
		return summary, err
	}
	prefix = strings.TrimSpace(prefix)

	if _, err := i.git(ctx, dir, "rev-parse", "--verify", "--quiet", "HEAD"); err == nil {
		args := []string{"log", logFormat}
		if prefix != "" {
			i.logger.Verbose("%s is %s inside its repository; counting its commits only", dir, prefix)
			args = append(args, "--", ".")
		}
		log, err := i.git(ctx, dir, args...)
		if err != nil {
			return summary, err
		}
		for _, subject := range commitSubjects(log) {
			summary.TotalCommits++
			if i.IsConventional(subject) {
				summary.ConventionalCommits++
			}
			if len(summary.RecentSubjects) < recent {
				summary.RecentSubjects = append(summary.RecentSubjects, subject)
			}
		}
	} else {
		i.logger.Verbose("repository has no commits yet")
	}

	files, err := i.git(ctx, dir, "ls-files", "-z")
	if err != nil {
		return summary, err
	}
	for _, f := range splitNonEmpty(files, "\x00") {
		if i.unwanted.Match(f) {
			summary.UnwantedTracked = append(summary.UnwantedTracked, f)
		}
	}

	i.logger.Verbose("git: %d commits, %d conventional, %d unwanted tracked files",
		summary.TotalCommits, summary.ConventionalCommits, len(summary.UnwantedTracked))
	return summary, nil
}

// commitSubjects parses logFormat output. Every "<hash> <subject>" line is
// one commit, including those whose subject is empty.
func commitSubjects(log string) []string {
	var subjects []string
	for _, line := range strings.Split(log, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		_, subject, _ := strings.Cut(line, " ")
		subjects = append(subjects, subject)
	}
	return subjects
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimRight(part, "\r")
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return out
}

var _ autocheck.GitInspector = (*Inspector)(nil)
