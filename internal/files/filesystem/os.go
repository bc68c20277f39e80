package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem reads the real disk.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open returns the directory at path. Errors wrap fs.ErrNotExist when the
// path is missing.
func (p *OSFileSystem) Open(path string) (Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", abs)
	}
	return &diskDirectory{root: abs}, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

type diskDirectory struct {
	root string
}

func (d *diskDirectory) Path() string { return d.root }

// Walk uses filepath.WalkDir, so entries arrive in lexical order and file
// info is only fetched for entries that are visited.
func (d *diskDirectory) Walk(fn func(File, error) error) error {
	return filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fn(nil, walkErr)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("stat %s: %w", p, err))
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get relative path: %w", err))
		}

		err = safeVisit(fn, &diskFile{path: p, rel: filepath.ToSlash(rel), info: info})
		// WalkDir treats SkipDir on a file as "skip the parent".
		if errors.Is(err, SkipDir) && !entry.IsDir() {
			return nil
		}
		return err
	})
}

// safeVisit turns a panicking callback into an error that stops the walk.
func safeVisit(fn func(File, error) error, f File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("walk callback panicked at %s: %v", f.Path(), r)
		}
	}()
	return fn(f, nil)
}

type diskFile struct {
	path string
	rel  string
	info FileInfo
}

func (f *diskFile) Path() string                 { return f.path }
func (f *diskFile) RelativePath() string         { return f.rel }
func (f *diskFile) Info() FileInfo               { return f.info }
func (f *diskFile) ReadContent() ([]byte, error) { return os.ReadFile(f.path) }

var _ FileSystemProvider = (*OSFileSystem)(nil)
