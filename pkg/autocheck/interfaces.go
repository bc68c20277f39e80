package autocheck

import "context"

// FileScanner counts lines matching a rule across a source tree.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanForPattern walks sourceRoot and records every line of a file with one of
	// the given extensions that matches rule. A missing or empty tree is not an error.
	ScanForPattern(sourceRoot string, rule Rule, extensions []string) (PatternMatch, error)

	// Fingerprint hashes the normalized contents of the files ScanForPattern would visit.
	Fingerprint(sourceRoot string, extensions []string) (string, int, error)
}

// CommandRunner runs external tools. Run never returns an error for a tool that
// fails or times out; that is reported through ToolOutcome.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) ToolOutcome
}

// GitInspector reads a repository's history without modifying it.
type GitInspector interface {
	// Inspect returns IsRepository=false, and no error, when dir is not a git work tree.
	Inspect(ctx context.Context, dir string, recent int) (GitSummary, error)
}
