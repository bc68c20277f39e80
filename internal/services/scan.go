package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/autocheck/internal/config"
	"github.com/vvka-141/autocheck/internal/files/filesystem"
	"github.com/vvka-141/autocheck/internal/project"
	"github.com/vvka-141/autocheck/internal/report"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// ConventionalSourceDirs are the folders whose presence marks a target as a
// JavaScript project when package.json is missing.
var ConventionalSourceDirs = []string{"src", "app", "pages", "lib"}

// ScanOptions configures one run of ScanService.Scan.
type ScanOptions struct {
	// Target is the absolute project directory, as returned by project.ResolveTarget.
	Target      string
	Config      *config.Config
	SkipInstall bool
	SkipTools   bool
}

// ScanService runs every check against one target and assembles the report.
// Thread-Safety: NOT safe for concurrent Scan() calls on the same instance.
type ScanService struct {
	approver    autocheck.Approver
	logger      autocheck.Logger
	fileScanner autocheck.FileScanner
	runner      autocheck.CommandRunner
	git         autocheck.GitInspector
	fsProvider  filesystem.FileSystemProvider
	newRunID    func() string
	now         func() time.Time
}

// NewScanService creates a ScanService with all dependencies injected.
// Panics on nil dependencies: those are wiring mistakes, not runtime
// conditions.
func NewScanService(
	approver autocheck.Approver,
	logger autocheck.Logger,
	fileScanner autocheck.FileScanner,
	runner autocheck.CommandRunner,
	git autocheck.GitInspector,
	fsProvider filesystem.FileSystemProvider,
) *ScanService {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}
	if git == nil {
		panic("git cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	return &ScanService{
		approver:    approver,
		logger:      logger,
		fileScanner: fileScanner,
		runner:      runner,
		git:         git,
		fsProvider:  fsProvider,
		newRunID:    uuid.NewString,
		now:         time.Now,
	}
}

// run carries the state of one Scan call between steps.
type run struct {
	opts     ScanOptions
	cfg      *config.Config
	proj     *project.Project
	pm       project.PackageManager
	manifest project.Manifest
	// hasManifest is false when package.json is missing.
	hasManifest bool
	timeout     time.Duration
	counters    *autocheck.ScanCounters
	results     []autocheck.CheckResult
}

func (r *run) add(results ...autocheck.CheckResult) {
	r.results = append(r.results, results...)
}

// Scan checks opts.Target. It returns an error only when the run cannot
// complete: an invalid configuration, a declined layout confirmation, or a
// cancelled context. Every other problem becomes a CheckResult.
func (s *ScanService) Scan(ctx context.Context, opts ScanOptions) (report.Report, error) {
	cfg := opts.Config
	if cfg == nil {
		defaults := config.Defaults()
		cfg = &defaults
	}
	timeout, err := cfg.ToolTimeout()
	if err != nil {
		return report.Report{}, err
	}
	loader, err := compileLoaderPattern(cfg.BundlerLoaderPattern)
	if err != nil {
		return report.Report{}, err
	}

	r := &run{
		opts:     opts,
		cfg:      cfg,
		proj:     project.New(s.fsProvider, opts.Target),
		timeout:  timeout,
		counters: &autocheck.ScanCounters{},
	}

	layout := r.proj.DetectLayout(ConventionalSourceDirs)
	if !layout.Recognized() {
		s.logger.Warn("%s has no package.json and none of %v", opts.Target, ConventionalSourceDirs)
		approved, err := s.approver.RequestApproval(ctx, "This does not look like a TypeScript/React project. Continue anyway?")
		if err != nil {
			return report.Report{}, fmt.Errorf("confirmation failed: %w", err)
		}
		if !approved {
			return report.Report{}, autocheck.ErrUserDeclined
		}
	}

	runID := s.newRunID()
	s.logger.Verbose("Run %s: checking %s", runID, opts.Target)

	r.manifest, r.hasManifest = r.proj.ReadManifest()
	r.pm = r.proj.DetectPackageManager()

	steps := []struct {
		name string
		fn   func(context.Context, *run) error
	}{
		{"configuration", func(ctx context.Context, r *run) error { s.checkConfiguration(r, loader); return nil }},
		{"dependencies", s.checkDependencies},
		{"typescript features", func(_ context.Context, r *run) error { s.scanFeatures(r, layout); return nil }},
		{"code quality", func(_ context.Context, r *run) error { s.scanQuality(r, layout); return nil }},
		{"build and lint", s.runTooling},
		{"git hygiene", s.inspectGit},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report.Report{}, err
		}
		s.logger.Verbose("Step: %s", step.name)
		if err := step.fn(ctx, r); err != nil {
			return report.Report{}, err
		}
	}

	r.add(report.TypeScriptTier(r.counters, cfg.Thresholds))

	return report.Report{
		RunID:       runID,
		Target:      opts.Target,
		GeneratedAt: s.now(),
		Counters:    *r.counters,
		Results:     orderBySection(r.results),
	}, nil
}

func compileLoaderPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bundler_loader_pattern: %v: %w", err, autocheck.ErrInvalidConfig)
	}
	return re, nil
}

// orderBySection keeps the relative order of results within each section.
func orderBySection(results []autocheck.CheckResult) []autocheck.CheckResult {
	ordered := make([]autocheck.CheckResult, 0, len(results))
	for _, section := range autocheck.Sections {
		for _, res := range results {
			if res.Section == section {
				ordered = append(ordered, res)
			}
		}
	}
	return ordered
}
