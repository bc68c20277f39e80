package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/autocheck/internal/config"
	"github.com/vvka-141/autocheck/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [projectDirectory]",
	Short: "Write a default .autocheck.yaml",
	Long: `Write a .autocheck.yaml with every setting at its default value into the
project directory (default: current directory).

An existing .autocheck.yaml is never overwritten.

Examples:
  autocheck init                # Current directory
  autocheck init ./webapp       # Another project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	pathArg := "."
	if len(args) > 0 {
		pathArg = args[0]
	}
	target, err := project.ResolveTarget(pathArg)
	if err != nil {
		return err
	}

	data, err := config.Template()
	if err != nil {
		return fmt.Errorf("failed to render config template: %w", err)
	}

	path := filepath.Join(target, config.ConfigFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists; remove it first to regenerate", path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if getVerboseFlag(cmd) {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Wrote %d bytes\n", len(data))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
