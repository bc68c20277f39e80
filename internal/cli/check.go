package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/autocheck/internal/config"
	"github.com/vvka-141/autocheck/internal/files/filesystem"
	"github.com/vvka-141/autocheck/internal/files/scanner"
	"github.com/vvka-141/autocheck/internal/gitinfo"
	"github.com/vvka-141/autocheck/internal/logging"
	"github.com/vvka-141/autocheck/internal/project"
	"github.com/vvka-141/autocheck/internal/report"
	"github.com/vvka-141/autocheck/internal/services"
	"github.com/vvka-141/autocheck/internal/toolrun"
	"github.com/vvka-141/autocheck/internal/tui"
	"github.com/vvka-141/autocheck/internal/ui"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

type checkFlagValues struct {
	yes         bool
	skipInstall bool
	skipTools   bool
	timeout     time.Duration
	commits     int
	outputDir   string
	noReport    bool
	noColor     bool
	failOnError bool
	logFormat   string
	configPath  string
}

var checkFlags checkFlagValues

func init() {
	f := rootCmd.Flags()

	f.BoolVarP(&checkFlags.yes, "yes", "y", false,
		"Answer yes to every confirmation prompt\n"+
			"(continue on an unrecognized layout, install missing dependencies)")
	f.BoolVar(&checkFlags.skipInstall, "skip-install", false,
		"Never run the package manager's install command")
	f.BoolVar(&checkFlags.skipTools, "skip-tools", false,
		"Skip lint, build and type-check runs")
	f.DurationVar(&checkFlags.timeout, "timeout", 0,
		"Timeout for each install/lint/build/type-check run\n"+
			"Precedence: --timeout > $AUTOCHECK_TIMEOUT > .autocheck.yaml > 5m")
	f.IntVar(&checkFlags.commits, "commits", 0,
		"Number of recent commit subjects shown in the report\n"+
			"Precedence: --commits > $AUTOCHECK_COMMITS > .autocheck.yaml > 10")
	f.StringVar(&checkFlags.outputDir, "output-dir", "",
		"Directory for the report file (default: current directory)")
	f.BoolVar(&checkFlags.noReport, "no-report", false,
		"Print the report without writing a report file")
	f.BoolVar(&checkFlags.noColor, "no-color", false,
		"Disable colored output (also honored: $NO_COLOR)")
	f.BoolVar(&checkFlags.failOnError, "fail-on-error", false,
		"Exit 1 when any check failed\n"+
			"By default a completed scan exits 0")
	f.StringVar(&checkFlags.logFormat, "log-format", logFormatText,
		"Log format on stderr: text|json")
	f.StringVar(&checkFlags.configPath, "config", "",
		"Path to a config file (default: <projectDirectory>/.autocheck.yaml)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	pathArg := "."
	if len(args) > 0 {
		pathArg = args[0]
	}
	target, err := project.ResolveTarget(pathArg)
	if err != nil {
		return err
	}

	cfg, err := buildCheckConfig(cmd, target)
	if err != nil {
		return err
	}

	logger, flush, err := newLogger(checkFlags.logFormat, verbose)
	if err != nil {
		return err
	}
	defer flush()

	interactive := tui.IsInteractive()

	var approver autocheck.Approver
	switch {
	case checkFlags.yes:
		approver = ui.NewForcedApprover(verbose)
	case interactive:
		approver = ui.NewInteractiveApprover(verbose)
	default:
		approver = ui.NewNonInteractiveApprover()
	}

	timeout, err := cfg.ToolTimeout()
	if err != nil {
		return err
	}
	var runner autocheck.CommandRunner = toolrun.NewRunner(logger, timeout)
	if interactive {
		runner = tui.NewSpinnerRunner(runner, os.Stderr, logger)
	}

	svc := services.NewScanService(
		approver,
		logger,
		scanner.NewScanner(),
		runner,
		gitinfo.NewInspector(logger, cfg.ConventionalTypes, cfg.UnwantedPatterns),
		filesystem.NewOSFileSystem(),
	)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Verbose("Scanning %s", target)
	rep, err := svc.Scan(ctx, services.ScanOptions{
		Target:      target,
		Config:      cfg,
		SkipInstall: checkFlags.skipInstall,
		SkipTools:   checkFlags.skipTools,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render(rep, tui.ColorEnabled(checkFlags.noColor)))

	if !checkFlags.noReport {
		persistReport(cmd.OutOrStdout(), logger, cfg.OutputDir, rep)
	}

	if checkFlags.failOnError && report.Summarize(rep.Results).Fail > 0 {
		return autocheck.ErrChecksFailed
	}
	return nil
}

// buildCheckConfig layers .autocheck.yaml, AUTOCHECK_* variables and flags,
// in increasing precedence.
func buildCheckConfig(cmd *cobra.Command, target string) (*config.Config, error) {
	config.LoadDotEnv(target)

	var (
		cfg *config.Config
		err error
	)
	if checkFlags.configPath != "" {
		cfg, err = config.LoadFile(checkFlags.configPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s not found: %w", checkFlags.configPath, autocheck.ErrInvalidConfig)
		}
	} else {
		cfg, err = config.Load(target)
		if errors.Is(err, config.ErrConfigNotFound) {
			defaults := config.Defaults()
			cfg, err = &defaults, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, autocheck.ErrInvalidConfig)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Timeout = checkFlags.timeout.String()
	}
	if flags.Changed("commits") {
		cfg.RecentCommits = checkFlags.commits
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = checkFlags.outputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns the logger for format and a flush func to defer.
func newLogger(format string, verbose bool) (autocheck.Logger, func(), error) {
	switch format {
	case "", logFormatText:
		return logging.NewConsoleLogger(verbose), func() {}, nil
	case logFormatJSON:
		l, err := logging.NewStructuredLogger(verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build json logger: %w", err)
		}
		return l, l.Sync, nil
	default:
		return nil, nil, fmt.Errorf("invalid --log-format %q (want text or json): %w", format, autocheck.ErrInvalidConfig)
	}
}

// persistReport writes the plain report. A write failure is logged; the scan
// itself already succeeded.
func persistReport(out io.Writer, logger autocheck.Logger, dir string, rep report.Report) {
	path, err := report.Persist(dir, report.Render(rep, false), rep.GeneratedAt)
	if err != nil {
		logger.Error("Failed to save report: %v", err)
		return
	}
	fmt.Fprintf(out, "\nReport saved to %s\n", path)
}
