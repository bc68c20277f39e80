package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/vvka-141/autocheck/internal/project"
	"github.com/vvka-141/autocheck/internal/report"
	"github.com/vvka-141/autocheck/internal/rules"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

func result(section autocheck.Section, name string, status autocheck.Status, detail string, hints ...string) autocheck.CheckResult {
	return autocheck.CheckResult{Name: name, Section: section, Status: status, Detail: detail, Hints: hints}
}

func (s *ScanService) checkConfiguration(r *run, loader *regexp.Regexp) {
	const sec = autocheck.SectionConfiguration

	hasTSConfig := r.proj.Exists(project.TSConfigFile)
	if hasTSConfig {
		r.add(result(sec, project.TSConfigFile, autocheck.StatusPass, "found"))
	} else {
		r.add(result(sec, project.TSConfigFile, autocheck.StatusFail, "missing", "Run `npx tsc --init` to create one"))
	}

	for _, flag := range r.cfg.ConfigFlags {
		name := fmt.Sprintf("%q enabled", flag)
		switch {
		case !hasTSConfig:
			r.add(result(sec, name, autocheck.StatusFail, "no tsconfig.json"))
		case r.proj.CheckConfigFlag(project.TSConfigFile, flag):
			r.add(result(sec, name, autocheck.StatusPass, ""))
		default:
			r.add(result(sec, name, autocheck.StatusFail, "not set to true",
				fmt.Sprintf(`Add "%s": true to compilerOptions in tsconfig.json`, flag)))
		}
	}

	if eslint, ok := r.proj.FindESLintConfig(r.cfg.ESLintRule); !ok {
		r.add(result(sec, "ESLint", autocheck.StatusWarn, "no ESLint config found",
			"Add an ESLint config with @typescript-eslint"))
	} else if !eslint.HasRule {
		r.add(result(sec, "ESLint", autocheck.StatusWarn, eslint.File+" does not mention "+r.cfg.ESLintRule,
			fmt.Sprintf("Enable %q in %s", r.cfg.ESLintRule, eslint.File)))
	} else {
		r.add(result(sec, "ESLint", autocheck.StatusPass, eslint.File+" enforces "+r.cfg.ESLintRule))
	}

	bundler := r.proj.DetectBundler(loader)
	switch {
	case bundler.Kind == project.BundlerNone:
		r.add(result(sec, "Bundler", autocheck.StatusSkip, "no vite or webpack config"))
	case bundler.TypeScriptReady:
		r.add(result(sec, "Bundler", autocheck.StatusPass, fmt.Sprintf("%s (%s)", bundler.Kind, bundler.ConfigFile)))
	default:
		r.add(result(sec, "Bundler", autocheck.StatusFail, bundler.ConfigFile+" has no TypeScript loader",
			"Use ts-loader, esbuild-loader, or babel-loader with @babel/preset-typescript"))
	}

	if !r.hasManifest {
		r.add(result(sec, project.ManifestFile, autocheck.StatusWarn, "missing"))
		return
	}
	for _, script := range []string{"lint", "build"} {
		name := fmt.Sprintf("%q script", script)
		if r.manifest.HasScript(script) {
			r.add(result(sec, name, autocheck.StatusPass, ""))
		} else {
			r.add(result(sec, name, autocheck.StatusWarn, "not declared in package.json"))
		}
	}
	if r.manifest.HasDependency("typescript") {
		r.add(result(sec, "typescript dependency", autocheck.StatusPass, ""))
	} else {
		r.add(result(sec, "typescript dependency", autocheck.StatusFail, "not declared in package.json",
			r.pm.Name+" add -D typescript"))
	}
}

func (s *ScanService) checkDependencies(ctx context.Context, r *run) error {
	const sec = autocheck.SectionDependencies

	lock := "no lockfile"
	if r.proj.Exists(r.pm.Lockfile) {
		lock = r.pm.Lockfile
	}
	r.add(result(sec, "Package manager", autocheck.StatusInfo, fmt.Sprintf("%s (%s)", r.pm.Name, lock)))

	switch {
	case r.proj.HasNodeModules():
		r.add(result(sec, "node_modules", autocheck.StatusPass, "installed"))
	case !r.hasManifest:
		r.add(result(sec, "node_modules", autocheck.StatusSkip, "no package.json"))
	case r.opts.SkipInstall:
		r.add(result(sec, "node_modules", autocheck.StatusWarn, "missing; install skipped (--skip-install)"))
	default:
		install := r.pm.InstallCommand()
		approved, err := s.approver.RequestApproval(ctx,
			fmt.Sprintf("node_modules is missing. Run `%s %s` now?", install.Bin, strings.Join(install.Args, " ")))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.Warn("Install confirmation failed: %v", err)
		}
		if !approved {
			r.add(result(sec, "node_modules", autocheck.StatusWarn, "missing; install declined"))
			break
		}

		outcome := s.run(ctx, r, install)
		if outcome.Success {
			r.add(result(sec, "node_modules", autocheck.StatusPass, "installed by "+outcome.Command))
		} else {
			r.add(result(sec, "node_modules", autocheck.StatusFail, failureDetail(outcome), outcome.Diagnostics...))
		}
	}

	r.counters.TypeScriptVersion = r.proj.TypeScriptVersion()
	if r.counters.TypeScriptVersion != "" {
		r.add(result(sec, "TypeScript version", autocheck.StatusInfo, r.counters.TypeScriptVersion))
	} else {
		r.add(result(sec, "TypeScript version", autocheck.StatusWarn, "typescript is not installed"))
	}
	return nil
}

// scanRoots returns the configured source dirs that exist, falling back to
// the conventional ones found by the layout detection.
func (s *ScanService) scanRoots(r *run, layout project.Layout) []string {
	var roots []string
	for _, dir := range r.cfg.SourceDirs {
		if r.proj.IsDir(dir) {
			roots = append(roots, dir)
		}
	}
	if len(roots) == 0 {
		roots = layout.SourceDirs
	}
	return roots
}

// scan runs rule over every root and prefixes locations with the root.
func (s *ScanService) scan(r *run, roots []string, rule autocheck.Rule, exts []string) autocheck.PatternMatch {
	var total autocheck.PatternMatch
	for _, root := range roots {
		m, err := s.fileScanner.ScanForPattern(r.proj.Path(root), rule, exts)
		if err != nil {
			s.logger.Warn("Scanning %s for %s failed: %v", root, rule.Name, err)
			continue
		}
		for _, loc := range m.Locations {
			loc.FilePath = path.Join(root, loc.FilePath)
			total.Locations = append(total.Locations, loc)
		}
	}
	total.Count = len(total.Locations)
	return total
}

func (s *ScanService) scanFeatures(r *run, layout project.Layout) {
	roots := s.scanRoots(r, layout)
	if len(roots) == 0 {
		s.logger.Warn("No source directory found; feature counts are zero")
	}
	exts := r.cfg.Extensions.TypeScript

	c := r.counters
	for _, rule := range rules.TypeScriptFeatures() {
		n := s.scan(r, roots, rule, exts).Count
		switch rule.Name {
		case rules.NameInterface:
			c.Interfaces = n
		case rules.NameTypeAlias:
			c.TypeAliases = n
		case rules.NameEnum:
			c.Enums = n
		case rules.NameGeneric:
			c.Generics = n
		case rules.NameClass:
			c.Classes = n
		case rules.NamePrivate:
			c.PrivateModifiers = n
		case rules.NamePublic:
			c.PublicModifiers = n
		case rules.NameProtected:
			c.ProtectedModifiers = n
		}
	}

	r.add(result(autocheck.SectionTypeScript, "Access modifiers", autocheck.StatusInfo,
		fmt.Sprintf("%d private, %d public, %d protected", c.PrivateModifiers, c.PublicModifiers, c.ProtectedModifiers)))
}

func (s *ScanService) scanQuality(r *run, layout project.Layout) {
	roots := s.scanRoots(r, layout)
	c := r.counters
	th := r.cfg.Thresholds

	anyMatch := s.scan(r, roots, rules.Any, r.cfg.Extensions.TypeScript)
	c.AnyUsages = anyMatch.Count
	c.AnyLocations = anyMatch.Locations

	source := r.cfg.Extensions.Source
	c.ConsoleLogs = s.scan(r, roots, rules.ConsoleLog, source).Count
	c.CommentedCode = s.scan(r, roots, rules.CommentedCode, source).Count
	c.TodoMarkers = s.scan(r, roots, rules.Todo, source).Count

	r.add(
		report.AnyUsage(c),
		report.ConsoleLog(c, th),
		report.CommentedCode(c, th),
		report.Todo(c, th),
	)

	var digests []string
	for _, root := range roots {
		digest, files, err := s.fileScanner.Fingerprint(r.proj.Path(root), source)
		if err != nil {
			s.logger.Warn("Fingerprinting %s failed: %v", root, err)
			continue
		}
		c.FilesScanned += files
		digests = append(digests, root+"="+digest)
	}
	c.SourceFingerprint = strings.Join(digests, " ")
	if c.SourceFingerprint == "" {
		r.add(result(autocheck.SectionQuality, "Source fingerprint", autocheck.StatusInfo, "no source files"))
		return
	}
	r.add(result(autocheck.SectionQuality, "Source fingerprint", autocheck.StatusInfo,
		fmt.Sprintf("%s over %d files", shortDigests(digests), c.FilesScanned)))
}

// shortDigests abbreviates each root=sha256 pair to 12 hex characters.
func shortDigests(digests []string) string {
	short := make([]string, len(digests))
	for i, d := range digests {
		if eq := strings.IndexByte(d, '='); eq >= 0 && len(d) > eq+13 {
			d = d[:eq+13]
		}
		short[i] = d
	}
	return strings.Join(short, " ")
}

func (s *ScanService) runTooling(ctx context.Context, r *run) error {
	const sec = autocheck.SectionTooling

	if r.opts.SkipTools {
		for _, name := range []string{"lint", "build", "typecheck"} {
			r.add(result(sec, name, autocheck.StatusSkip, "skipped (--skip-tools)"))
		}
		return nil
	}

	for _, script := range []string{"lint", "build"} {
		if !r.hasManifest || !r.manifest.HasScript(script) {
			r.add(result(sec, script, autocheck.StatusSkip, "no "+script+" script"))
			continue
		}
		outcome := s.run(ctx, r, r.pm.RunScriptCommand(script))
		if script == "lint" {
			r.counters.LintErrors = outcome.Errors
			r.counters.LintWarnings = outcome.Warnings
		}
		r.add(toolResult(script, outcome))
	}

	if !r.proj.Exists(project.TSConfigFile) || !r.cfg.TypecheckEnabled() {
		r.add(result(sec, "typecheck", autocheck.StatusSkip, "no tsconfig.json or typecheck disabled"))
		return nil
	}
	r.add(toolResult("typecheck", s.run(ctx, r, r.pm.TypecheckCommand())))
	return nil
}

func (s *ScanService) run(ctx context.Context, r *run, cmd autocheck.Command) autocheck.ToolOutcome {
	cmd.Dir = r.opts.Target
	cmd.Timeout = r.timeout
	s.logger.Info("Running %s %s", cmd.Bin, strings.Join(cmd.Args, " "))
	return s.runner.Run(ctx, cmd)
}

func toolResult(name string, o autocheck.ToolOutcome) autocheck.CheckResult {
	switch {
	case o.Success && o.Warnings > 0:
		return result(autocheck.SectionTooling, name, autocheck.StatusWarn,
			fmt.Sprintf("%s passed with %d warnings", o.Command, o.Warnings))
	case o.Success:
		return result(autocheck.SectionTooling, name, autocheck.StatusPass, o.Command+" passed")
	default:
		return result(autocheck.SectionTooling, name, autocheck.StatusFail, failureDetail(o), o.Diagnostics...)
	}
}

func failureDetail(o autocheck.ToolOutcome) string {
	if o.TimedOut {
		return o.Command + " timed out"
	}
	return fmt.Sprintf("%s failed (exit %d, %d errors, %d warnings)", o.Command, o.ExitCode, o.Errors, o.Warnings)
}

func (s *ScanService) inspectGit(ctx context.Context, r *run) error {
	const sec = autocheck.SectionGit

	summary, err := s.git.Inspect(ctx, r.opts.Target, r.cfg.RecentCommits)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.logger.Warn("Git inspection failed: %v", err)
		r.add(result(sec, "Git repository", autocheck.StatusWarn, "inspection failed"))
		return nil
	}
	if !summary.IsRepository {
		r.add(
			result(sec, "Git repository", autocheck.StatusSkip, "not a git repository"),
			result(sec, "Conventional commits", autocheck.StatusSkip, "not a git repository"),
			result(sec, "Tracked build artifacts and secrets", autocheck.StatusSkip, "not a git repository"),
		)
		return nil
	}

	c := r.counters
	c.TotalCommits = summary.TotalCommits
	c.ConventionalCommits = summary.ConventionalCommits
	c.RecentCommits = summary.RecentSubjects
	c.UnwantedTracked = summary.UnwantedTracked

	r.add(
		report.ConventionalCommits(c, r.cfg.Thresholds),
		report.UnwantedTracked(c),
	)
	return nil
}
