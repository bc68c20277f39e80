package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvka-141/autocheck/internal/files/filesystem"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// ManifestFile is the npm package manifest.
const ManifestFile = "package.json"

// ResolveTarget returns the absolute path of the directory to check: pathArg
// when given, otherwise the working directory.
func ResolveTarget(pathArg string) (string, error) {
	target := pathArg
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		target = wd
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", &autocheck.TargetNotFoundError{Path: target, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &autocheck.TargetNotFoundError{Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &autocheck.TargetNotFoundError{Path: abs, Err: fmt.Errorf("not a directory")}
	}
	return abs, nil
}

// Layout is what DetectLayout found at the top of a target.
type Layout struct {
	HasManifest bool
	// SourceDirs lists the conventional source folders that exist, in candidate order.
	SourceDirs []string
}

// Recognized reports whether the target looks like a JavaScript project.
func (l Layout) Recognized() bool {
	return l.HasManifest || len(l.SourceDirs) > 0
}

// Project reads files of one target directory through a FileSystemProvider.
type Project struct {
	fs  filesystem.FileSystemProvider
	dir string
}

// New creates a Project rooted at dir.
// Panics if fsProvider is nil.
func New(fsProvider filesystem.FileSystemProvider, dir string) *Project {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Project{fs: fsProvider, dir: dir}
}

// Path joins name onto the project root.
func (p *Project) Path(name ...string) string {
	return filepath.Join(append([]string{p.dir}, name...)...)
}

// Exists reports whether name exists under the project root.
func (p *Project) Exists(name string) bool {
	return filesystem.Exists(p.fs, p.Path(name))
}

// IsDir reports whether name is a directory under the project root.
func (p *Project) IsDir(name string) bool {
	return filesystem.IsDir(p.fs, p.Path(name))
}

// DetectLayout checks for a manifest and for each of candidates as a directory.
func (p *Project) DetectLayout(candidates []string) Layout {
	layout := Layout{HasManifest: p.Exists(ManifestFile)}
	for _, dir := range candidates {
		if p.IsDir(dir) {
			layout.SourceDirs = append(layout.SourceDirs, dir)
		}
	}
	return layout
}

// read returns the file content, or ok=false if it cannot be read.
func (p *Project) read(name string) (string, bool) {
	data, err := p.fs.ReadFile(p.Path(name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// firstExisting returns the first of names that exists.
func (p *Project) firstExisting(names []string) (string, bool) {
	for _, name := range names {
		if p.Exists(name) {
			return name, true
		}
	}
	return "", false
}
