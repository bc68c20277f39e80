package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryEntry is a file or directory held by MemoryFileSystem
type memoryEntry struct {
	absPath string
	content []byte
	info    *memoryFileInfo
}

// memoryFile is the view of an entry handed to a Walk callback
type memoryFile struct {
	*memoryEntry
	relPath string
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	var skipped []string
	for _, entry := range entries {
		if underAny(entry.absPath, skipped) {
			continue
		}

		rel := "."
		if entry.absPath != d.absPath {
			rel = strings.TrimPrefix(entry.absPath, strings.TrimSuffix(d.absPath, "/")+"/")
		}

		callbackErr := safeVisit(fn, &memoryFile{memoryEntry: entry, relPath: rel})

		if errors.Is(callbackErr, SkipDir) {
			if entry.info.IsDir() {
				skipped = append(skipped, entry.absPath)
			}
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func underAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes regardless of platform.
type MemoryFileSystem struct {
	entries map[string]*memoryEntry // absolute path -> entry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.addDir(root)
	return mfs
}

// Root returns the root directory path.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a file, creating parent directories as needed.
// Relative paths are resolved against the root.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	abs := mfs.resolve(filePath)
	data := []byte(content)
	mfs.entries[abs] = &memoryEntry{
		absPath: abs,
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(data)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureParents(abs)
}

// AddDir adds an empty directory, creating parents as needed.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	abs := mfs.resolve(dirPath)
	mfs.addDir(abs)
	mfs.ensureParents(abs)
}

func (mfs *MemoryFileSystem) addDir(abs string) {
	if _, exists := mfs.entries[abs]; exists {
		return
	}
	mfs.entries[abs] = &memoryEntry{
		absPath: abs,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) ensureParents(abs string) {
	for dir := path.Dir(abs); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, exists := mfs.entries[dir]; exists {
			return
		}
		mfs.addDir(dir)
	}
}

// resolve normalizes p to an absolute forward-slash path inside the filesystem.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) entriesUnder(base string) []*memoryEntry {
	var entries []*memoryEntry
	for p, entry := range mfs.entries {
		if p == base || strings.HasPrefix(p, strings.TrimSuffix(base, "/")+"/") {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	abs := mfs.resolve(openPath)
	entry, exists := mfs.entries[abs]
	if !exists {
		return nil, fmt.Errorf("directory not found: %s: %w", openPath, fs.ErrNotExist)
	}
	if !entry.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: abs, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	entry, exists := mfs.entries[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return entry.content, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	entry, exists := mfs.entries[mfs.resolve(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return entry.info, nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
