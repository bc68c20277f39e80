package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autocheck [projectDirectory]",
	Short: "Automated quality checks for TypeScript/React projects",
	Long: asciiLogo + `

autocheck inspects a TypeScript/React project and prints a graded report:
configuration files, dependencies, TypeScript feature usage, code quality
heuristics, lint/build/type-check results and git hygiene.

The project directory defaults to the current directory. Checks are advisory:
a completed run exits 0 unless --fail-on-error is set.

Exit Codes:
  0  - Scan completed
  1  - General error (or failed checks with --fail-on-error)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (.autocheck.yaml, environment or flags)
  11 - Target directory not found
  12 - User declined to continue`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runCheck,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for autocheck")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
