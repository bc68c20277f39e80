package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/autocheck/internal/config"
	"github.com/vvka-141/autocheck/internal/files/filesystem"
	"github.com/vvka-141/autocheck/internal/files/scanner"
	"github.com/vvka-141/autocheck/internal/logging"
	"github.com/vvka-141/autocheck/internal/report"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

const target = "/app"

type harness struct {
	fs       *filesystem.MemoryFileSystem
	approver *fakeApprover
	runner   *fakeRunner
	git      *fakeGit
	svc      *ScanService
}

func newHarness() *harness {
	fs := filesystem.NewMemoryFileSystem(target)
	h := &harness{
		fs:       fs,
		approver: &fakeApprover{},
		runner:   &fakeRunner{outcomes: map[string]autocheck.ToolOutcome{}},
		git:      &fakeGit{summary: autocheck.GitSummary{IsRepository: true}},
	}
	h.svc = NewScanService(h.approver, logging.NewNullLogger(), scanner.NewScannerWithFS(fs), h.runner, h.git, fs)
	h.svc.newRunID = func() string { return "run-1" }
	h.svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return h
}

// wellFormed lays out a project that passes every configuration check.
func (h *harness) wellFormed() {
	h.fs.AddFile("package.json", `{
  "scripts": { "lint": "eslint .", "build": "vite build" },
  "devDependencies": { "typescript": "^5.4.0" }
}`)
	h.fs.AddFile("package-lock.json", "{}")
	h.fs.AddFile("tsconfig.json", `{"compilerOptions": {"strict": true, "noImplicitAny": true}}`)
	h.fs.AddFile(".eslintrc.json", `{"rules": {"@typescript-eslint/no-explicit-any": "error"}}`)
	h.fs.AddFile("vite.config.ts", "export default {}")
	h.fs.AddFile("node_modules/typescript/package.json", `{"version": "5.4.5"}`)
}

func (h *harness) scan(t *testing.T, opts ScanOptions) report.Report {
	t.Helper()
	if opts.Target == "" {
		opts.Target = target
	}
	rep, err := h.svc.Scan(context.Background(), opts)
	require.NoError(t, err)
	return rep
}

func find(t *testing.T, rep report.Report, section autocheck.Section, name string) autocheck.CheckResult {
	t.Helper()
	for _, r := range rep.Results {
		if r.Section == section && r.Name == name {
			return r
		}
	}
	t.Fatalf("no result %q in section %s", name, section.Title())
	return autocheck.CheckResult{}
}

func TestNewScanService_NilDependencies(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/")
	approver, log, sc, runner, git := &fakeApprover{}, logging.NewNullLogger(), scanner.NewScannerWithFS(fs), &fakeRunner{}, &fakeGit{}

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil approver", func() { NewScanService(nil, log, sc, runner, git, fs) }},
		{"nil logger", func() { NewScanService(approver, nil, sc, runner, git, fs) }},
		{"nil fileScanner", func() { NewScanService(approver, log, nil, runner, git, fs) }},
		{"nil runner", func() { NewScanService(approver, log, sc, nil, git, fs) }},
		{"nil git", func() { NewScanService(approver, log, sc, runner, nil, fs) }},
		{"nil fsProvider", func() { NewScanService(approver, log, sc, runner, git, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestScan_UnrecognizedLayoutDeclined(t *testing.T) {
	h := newHarness()
	h.fs.AddFile("README.md", "# notes")
	h.approver.answers = []bool{false}

	_, err := h.svc.Scan(context.Background(), ScanOptions{Target: target})

	require.Error(t, err)
	assert.True(t, errors.Is(err, autocheck.ErrUserDeclined))
	assert.Equal(t, autocheck.ExitUserDeclined, autocheck.ExitCodeForError(err))
	assert.Len(t, h.approver.questions, 1)
	assert.Empty(t, h.runner.commands)
	assert.Zero(t, h.git.calls)
}

func TestScan_UnrecognizedLayoutApproved(t *testing.T) {
	h := newHarness()
	h.approver.answers = []bool{true}

	rep := h.scan(t, ScanOptions{})
	assert.Len(t, h.approver.questions, 1)
	assert.Equal(t, autocheck.StatusWarn, find(t, rep, autocheck.SectionConfiguration, "package.json").Status)
}

func TestScan_ApproverError(t *testing.T) {
	h := newHarness()
	h.approver.err = errors.New("stdin closed")

	_, err := h.svc.Scan(context.Background(), ScanOptions{Target: target})
	assert.ErrorContains(t, err, "stdin closed")
}

func TestScan_RecognizedLayoutDoesNotPrompt(t *testing.T) {
	h := newHarness()
	h.fs.AddDir("pages")

	h.scan(t, ScanOptions{SkipTools: true})
	assert.Empty(t, h.approver.questions)
}

func TestScan_CountsDisallowedTypeLines(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.fs.AddFile("src/api.ts", "export const a: string = '';\nlet b: any;\n// c: any\nconst d = e as any;\n")
	h.fs.AddFile("src/components/List.tsx", "export function List(props: any) {}\n")

	rep := h.scan(t, ScanOptions{SkipTools: true})

	assert.Equal(t, 3, rep.Counters.AnyUsages)
	assert.Equal(t, []autocheck.AnyUsageLocation{
		{FilePath: "src/api.ts", LineNumber: 2, LineText: "let b: any;"},
		{FilePath: "src/api.ts", LineNumber: 4, LineText: "const d = e as any;"},
		{FilePath: "src/components/List.tsx", LineNumber: 1, LineText: "export function List(props: any) {}"},
	}, rep.Counters.AnyLocations)
	assert.Equal(t, autocheck.StatusFail, find(t, rep, autocheck.SectionQuality, "Explicit any").Status)
}

func TestScan_FeatureCountsAndTier(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.fs.AddFile("src/model.ts", strings.Join([]string{
		"export interface User { id: string }",
		"export interface Team { id: string }",
		"export type Id = string;",
		"type Pair<T> = [T, T];",
		"type Maybe<T> = T | null;",
		"export enum Role { Admin, Member }",
		"export function first<T>(xs: T[]): T { return xs[0]; }",
		"export class Store {",
		"  private items: User[] = [];",
		"  public add(u: User) { this.items.push(u); }",
		"}",
	}, "\n"))

	rep := h.scan(t, ScanOptions{SkipTools: true})
	c := rep.Counters

	assert.Equal(t, 2, c.Interfaces)
	assert.Equal(t, 3, c.TypeAliases)
	assert.Equal(t, 1, c.Enums)
	assert.Equal(t, 3, c.Generics)
	assert.Equal(t, 1, c.Classes)
	assert.Equal(t, 1, c.PrivateModifiers)
	assert.Equal(t, 1, c.PublicModifiers)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionTypeScript, "TypeScript feature usage").Status)
}

func TestScan_EmptySourceDirectory(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.fs.AddDir("src")

	rep := h.scan(t, ScanOptions{SkipTools: true})
	c := rep.Counters

	assert.Zero(t, c.Interfaces+c.TypeAliases+c.Enums+c.Generics+c.Classes)
	assert.Zero(t, c.AnyUsages+c.ConsoleLogs+c.CommentedCode+c.TodoMarkers)
	assert.Zero(t, c.FilesScanned)
	assert.Equal(t, autocheck.StatusFail, find(t, rep, autocheck.SectionTypeScript, "TypeScript feature usage").Status)
}

func TestScan_ConfigurationChecks(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.fs.AddFile("tsconfig.json", `{"compilerOptions": {"strict": true, "noImplicitAny": false}}`)

	rep := h.scan(t, ScanOptions{SkipTools: true})

	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionConfiguration, "tsconfig.json").Status)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionConfiguration, `"strict" enabled`).Status)
	assert.Equal(t, autocheck.StatusFail, find(t, rep, autocheck.SectionConfiguration, `"noImplicitAny" enabled`).Status)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionConfiguration, "ESLint").Status)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionConfiguration, "Bundler").Status)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionConfiguration, "typescript dependency").Status)
	assert.Equal(t, "5.4.5", rep.Counters.TypeScriptVersion)
}

func TestScan_MissingTSConfigFailsFlags(t *testing.T) {
	h := newHarness()
	h.fs.AddFile("package.json", "{}")

	rep := h.scan(t, ScanOptions{SkipTools: true, SkipInstall: true})

	assert.Equal(t, autocheck.StatusFail, find(t, rep, autocheck.SectionConfiguration, "tsconfig.json").Status)
	assert.Equal(t, autocheck.StatusFail, find(t, rep, autocheck.SectionConfiguration, `"strict" enabled`).Status)
	assert.Equal(t, autocheck.StatusWarn, find(t, rep, autocheck.SectionConfiguration, "ESLint").Status)
	assert.Equal(t, autocheck.StatusSkip, find(t, rep, autocheck.SectionConfiguration, "Bundler").Status)
	assert.Equal(t, autocheck.StatusWarn, find(t, rep, autocheck.SectionDependencies, "node_modules").Status)
	assert.Empty(t, h.approver.questions, "--skip-install must not prompt")
}

func TestScan_InstallPrompt(t *testing.T) {
	t.Run("approved runs install once", func(t *testing.T) {
		h := newHarness()
		h.fs.AddFile("package.json", "{}")
		h.fs.AddFile("yarn.lock", "")
		h.approver.answers = []bool{true}

		rep := h.scan(t, ScanOptions{SkipTools: true})

		require.Len(t, h.runner.commands, 1)
		install := h.runner.commands[0]
		assert.Equal(t, "yarn", install.Bin)
		assert.Equal(t, []string{"install"}, install.Args)
		assert.Equal(t, target, install.Dir)
		assert.Equal(t, autocheck.DefaultToolTimeout, install.Timeout)
		assert.Contains(t, h.approver.questions[0], "yarn install")
		assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionDependencies, "node_modules").Status)
	})

	t.Run("declined warns", func(t *testing.T) {
		h := newHarness()
		h.fs.AddFile("package.json", "{}")
		h.approver.answers = []bool{false}

		rep := h.scan(t, ScanOptions{SkipTools: true})

		assert.Empty(t, h.runner.commands)
		assert.Equal(t, autocheck.StatusWarn, find(t, rep, autocheck.SectionDependencies, "node_modules").Status)
	})

	t.Run("failed install is reported", func(t *testing.T) {
		h := newHarness()
		h.fs.AddFile("package.json", "{}")
		h.approver.answers = []bool{true}
		h.runner.outcomes["install"] = autocheck.ToolOutcome{Command: "npm install", ExitCode: 1, Diagnostics: []string{"npm ERR! 404"}}

		rep := h.scan(t, ScanOptions{SkipTools: true})

		r := find(t, rep, autocheck.SectionDependencies, "node_modules")
		assert.Equal(t, autocheck.StatusFail, r.Status)
		assert.Equal(t, []string{"npm ERR! 404"}, r.Hints)
	})
}

func TestScan_LintFailureContinues(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.fs.AddFile("src/index.ts", "export {}")
	h.runner.outcomes["lint"] = autocheck.ToolOutcome{
		Command:     "npm run lint",
		ExitCode:    1,
		Errors:      3,
		Warnings:    2,
		Diagnostics: []string{"src/index.ts 1:1 error no-unused-vars"},
	}
	h.git.summary = autocheck.GitSummary{IsRepository: true, TotalCommits: 4, ConventionalCommits: 4}

	rep := h.scan(t, ScanOptions{})

	assert.Equal(t, []string{"lint", "build", "typecheck"}, h.runner.names())
	assert.Equal(t, 3, rep.Counters.LintErrors)
	assert.Equal(t, 2, rep.Counters.LintWarnings)

	lint := find(t, rep, autocheck.SectionTooling, "lint")
	assert.Equal(t, autocheck.StatusFail, lint.Status)
	assert.Contains(t, lint.Detail, "exit 1, 3 errors, 2 warnings")
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionTooling, "build").Status)
	assert.Equal(t, 1, h.git.calls)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionGit, "Conventional commits").Status)
}

func TestScan_LintWarningsOnlyIsWarn(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.runner.outcomes["lint"] = autocheck.ToolOutcome{Command: "npm run lint", Success: true, Warnings: 4}

	rep := h.scan(t, ScanOptions{})
	assert.Equal(t, autocheck.StatusWarn, find(t, rep, autocheck.SectionTooling, "lint").Status)
}

func TestScan_SkipTools(t *testing.T) {
	h := newHarness()
	h.wellFormed()

	rep := h.scan(t, ScanOptions{SkipTools: true})

	assert.Empty(t, h.runner.commands)
	for _, name := range []string{"lint", "build", "typecheck"} {
		assert.Equal(t, autocheck.StatusSkip, find(t, rep, autocheck.SectionTooling, name).Status)
	}
}

func TestScan_TypecheckDisabled(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	cfg := config.Defaults()
	off := false
	cfg.Typecheck = &off

	h.scan(t, ScanOptions{Config: &cfg})
	assert.Equal(t, []string{"lint", "build"}, h.runner.names())
}

func TestScan_GitHistory(t *testing.T) {
	subjects := make([]string, 10)
	for i := range subjects {
		subjects[i] = fmt.Sprintf("feat: change %d", i)
	}

	h := newHarness()
	h.wellFormed()
	h.git.summary = autocheck.GitSummary{
		IsRepository:        true,
		TotalCommits:        10,
		ConventionalCommits: 8,
		RecentSubjects:      subjects,
		UnwantedTracked:     []string{".env"},
	}
	cfg := config.Defaults()
	cfg.RecentCommits = 3

	rep := h.scan(t, ScanOptions{SkipTools: true, Config: &cfg})

	assert.Equal(t, 10, rep.Counters.TotalCommits)
	assert.Equal(t, 8, rep.Counters.ConventionalCommits)
	assert.Equal(t, 80, rep.Counters.ConventionalPercent())
	assert.Len(t, rep.Counters.RecentCommits, 3)
	assert.Equal(t, autocheck.StatusPass, find(t, rep, autocheck.SectionGit, "Conventional commits").Status)
	assert.Equal(t, autocheck.StatusFail, find(t, rep, autocheck.SectionGit, "Tracked build artifacts and secrets").Status)
}

func TestScan_NotARepository(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.git.summary = autocheck.GitSummary{}

	rep := h.scan(t, ScanOptions{SkipTools: true})
	assert.Equal(t, autocheck.StatusSkip, find(t, rep, autocheck.SectionGit, "Git repository").Status)
	assert.Equal(t, autocheck.StatusSkip, find(t, rep, autocheck.SectionGit, "Conventional commits").Status)
}

func TestScan_GitErrorIsAbsorbed(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.git.err = errors.New("git log failed")

	rep := h.scan(t, ScanOptions{SkipTools: true})
	assert.Equal(t, autocheck.StatusWarn, find(t, rep, autocheck.SectionGit, "Git repository").Status)
}

func TestScan_ResultsOrderedBySection(t *testing.T) {
	h := newHarness()
	h.wellFormed()

	rep := h.scan(t, ScanOptions{})
	for i := 1; i < len(rep.Results); i++ {
		assert.LessOrEqual(t, rep.Results[i-1].Section, rep.Results[i].Section)
	}
}

func TestScan_InvalidConfig(t *testing.T) {
	h := newHarness()
	cfg := config.Defaults()
	cfg.Timeout = "soon"

	_, err := h.svc.Scan(context.Background(), ScanOptions{Target: target, Config: &cfg})
	assert.True(t, errors.Is(err, autocheck.ErrInvalidConfig))
}

func TestScan_CancelledContext(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.svc.Scan(ctx, ScanOptions{Target: target})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.runner.commands)
}

func TestScan_Idempotent(t *testing.T) {
	h := newHarness()
	h.wellFormed()
	h.fs.AddFile("src/app.tsx", "export interface P { x: any }\nconsole.log('x');\n// TODO tidy\n")
	h.git.summary = autocheck.GitSummary{IsRepository: true, TotalCommits: 2, ConventionalCommits: 1, RecentSubjects: []string{"feat: a", "b"}}

	first := h.scan(t, ScanOptions{})
	second := h.scan(t, ScanOptions{})

	if diff := cmp.Diff(first.Counters, second.Counters); diff != "" {
		t.Errorf("counters differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Results, second.Results); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
	assert.NotEmpty(t, first.Counters.SourceFingerprint)

	dir := t.TempDir()
	p1, err := report.Persist(dir, report.Render(first, false), first.GeneratedAt)
	require.NoError(t, err)
	p2, err := report.Persist(dir, report.Render(second, false), second.GeneratedAt)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}
