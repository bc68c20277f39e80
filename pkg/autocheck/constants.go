package autocheck

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Scan completed (regardless of check outcomes)
	ExitGeneralError   = 1  // Unknown error, or failed checks with --fail-on-error
	ExitUsageError     = 2  // CLI usage error (invalid arguments or flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid .autocheck.yaml or flag values
	ExitTargetNotFound = 11 // Target project directory does not exist
	ExitUserDeclined   = 12 // User declined to continue
)

const (
	// DefaultToolTimeout bounds a single install, lint, build or type-check invocation.
	DefaultToolTimeout = 5 * time.Minute

	// DefaultRecentCommits is the number of commit subjects kept for display.
	DefaultRecentCommits = 10

	// MaxAnyLocationsShown caps the disallowed-type locations listed in the report.
	// The full count is always reported.
	MaxAnyLocationsShown = 5

	// MaxToolOutputBytes is how much of a tool's combined output is kept from
	// each end. Anything between the first and last MaxToolOutputBytes is
	// dropped.
	MaxToolOutputBytes = 64 << 10

	// MaxDiagnosticLines caps the error/warning lines surfaced from a failed tool run.
	MaxDiagnosticLines = 5

	// ConventionalGoodPercent is the conventional-commit ratio at or above which
	// git history is considered well kept.
	ConventionalGoodPercent = 80

	// ConventionalFairPercent is the ratio at or above which history only warns.
	ConventionalFairPercent = 50

	// ReportFilePrefix and ReportTimeLayout name persisted reports:
	// auto-check-report-20260102-150405.txt
	ReportFilePrefix = "auto-check-report-"
	ReportTimeLayout = "20060102-150405"
	ReportFileExt    = ".txt"
)
