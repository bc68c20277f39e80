package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/autocheck/internal/checksum"
	"github.com/vvka-141/autocheck/internal/files/filesystem"
	"github.com/vvka-141/autocheck/internal/rules"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// excludedDirs are never descended into, wherever they appear.
var excludedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".git":         true,
	".next":        true,
}

// Scanner implements autocheck.FileScanner.
// It is safe for concurrent use as long as the filesystem provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner over a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanForPattern records every line matching rule in files under sourceRoot
// whose extension is listed. Locations use forward-slash paths relative to
// sourceRoot. For rules that skip comments, lines inside multi-line block
// comments are skipped as well as // lines.
func (s *Scanner) ScanForPattern(sourceRoot string, rule autocheck.Rule, extensions []string) (autocheck.PatternMatch, error) {
	if rule.Pattern == nil {
		return autocheck.PatternMatch{}, fmt.Errorf("rule %q has no pattern", rule.Name)
	}

	var result autocheck.PatternMatch
	err := s.walkSources(sourceRoot, extensions, func(relPath string, content []byte) {
		comments := checksum.CommentLines(content)
		for i, line := range splitLines(content) {
			if !rules.Matches(rule, line, i < len(comments) && comments[i]) {
				continue
			}
			result.Locations = append(result.Locations, autocheck.AnyUsageLocation{
				FilePath:   relPath,
				LineNumber: i + 1,
				LineText:   strings.TrimSpace(line),
			})
		}
	})
	if err != nil {
		return autocheck.PatternMatch{}, err
	}

	result.Count = len(result.Locations)
	return result, nil
}

// Fingerprint returns the comment-insensitive digest of every file
// ScanForPattern would visit, and how many files that was.
func (s *Scanner) Fingerprint(sourceRoot string, extensions []string) (string, int, error) {
	fp := checksum.NewFingerprint()
	err := s.walkSources(sourceRoot, extensions, func(relPath string, content []byte) {
		fp.Add(relPath, content)
	})
	if err != nil {
		return "", 0, err
	}
	return fp.Sum(), fp.Files(), nil
}

// walkSources calls visit for each eligible file in lexical order.
// A missing root is treated as an empty tree.
func (s *Scanner) walkSources(sourceRoot string, extensions []string, visit func(relPath string, content []byte)) error {
	if !filesystem.IsDir(s.fsProvider, sourceRoot) {
		return nil
	}

	dir, err := s.fsProvider.Open(sourceRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open directory: %w", err)
	}

	return dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		relPath := file.RelativePath()
		if file.Info().IsDir() {
			if relPath != "." && isExcludedDir(file.Info().Name()) {
				return filesystem.SkipDir
			}
			return nil
		}

		if !hasExtension(relPath, extensions) {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", relPath, err)
		}
		visit(relPath, content)
		return nil
	})
}

func isExcludedDir(name string) bool {
	return excludedDirs[name] || strings.HasPrefix(name, ".")
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// splitLines splits on \n and drops a trailing \r from each line. A final
// newline does not produce an extra empty line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

var _ autocheck.FileScanner = (*Scanner)(nil)
