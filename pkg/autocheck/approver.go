package autocheck

import "context"

// Approver handles the yes/no confirmations a run may need: continuing with an
// unrecognized project layout and installing dependencies.
//
// Implementations:
//   - InteractiveApprover: asks on the terminal, only "y"/"yes" approves
//   - ForcedApprover: approves without asking (--yes)
//   - NonInteractiveApprover: declines without asking (CI, piped input)
type Approver interface {
	// RequestApproval asks the question and reports whether it was approved.
	// An error is returned only when the answer could not be obtained.
	RequestApproval(ctx context.Context, question string) (bool, error)
}
