package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// SkipDir may be returned from a Walk callback on a directory entry to skip
// that directory's contents. It is not reported as an error by Walk.
var SkipDir = fs.SkipDir

// File represents an individual file or directory met during a walk.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits the directory tree in lexical order, calling fn for each file
	// and directory including the root. Returning SkipDir for a directory skips
	// it; any other error stops the walk and is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the read-only view of a project the scanner works on.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path can be stat'ed through p.
func Exists(p FileSystemProvider, path string) bool {
	_, err := p.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && info.IsDir()
}
