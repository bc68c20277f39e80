package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/autocheck/internal/files/filesystem"
	"github.com/vvka-141/autocheck/pkg/autocheck"
)

func newTestProject() (*Project, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	return New(fs, "/project"), fs
}

func TestResolveTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	t.Run("existing directory", func(t *testing.T) {
		got, err := ResolveTarget(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("empty means working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		got, err := ResolveTarget("")
		require.NoError(t, err)
		assert.Equal(t, wd, got)
	})

	t.Run("relative path made absolute", func(t *testing.T) {
		got, err := ResolveTarget(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})

	for name, path := range map[string]string{
		"missing":      filepath.Join(dir, "nope"),
		"regular file": file,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveTarget(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, autocheck.ErrTargetNotFound))
			var tnf *autocheck.TargetNotFoundError
			require.True(t, errors.As(err, &tnf))
			assert.Equal(t, path, tnf.Path)
			assert.Equal(t, autocheck.ExitTargetNotFound, autocheck.ExitCodeForError(err))
		})
	}
}

func TestNew_NilProvider(t *testing.T) {
	assert.Panics(t, func() { New(nil, "/") })
}

func TestDetectLayout(t *testing.T) {
	candidates := []string{"src", "app", "pages", "lib"}

	tests := []struct {
		name       string
		setup      func(fs *filesystem.MemoryFileSystem)
		manifest   bool
		dirs       []string
		recognized bool
	}{
		{"empty directory", func(fs *filesystem.MemoryFileSystem) {}, false, nil, false},
		{"manifest only", func(fs *filesystem.MemoryFileSystem) { fs.AddFile("package.json", "{}") }, true, nil, true},
		{"source folder only", func(fs *filesystem.MemoryFileSystem) { fs.AddDir("app") }, false, []string{"app"}, true},
		{"several folders", func(fs *filesystem.MemoryFileSystem) {
			fs.AddDir("lib")
			fs.AddFile("src/index.ts", "")
		}, false, []string{"src", "lib"}, true},
		{"file named like a folder", func(fs *filesystem.MemoryFileSystem) { fs.AddFile("src", "") }, false, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fs := newTestProject()
			tt.setup(fs)
			layout := p.DetectLayout(candidates)
			assert.Equal(t, tt.manifest, layout.HasManifest)
			assert.Equal(t, tt.dirs, layout.SourceDirs)
			assert.Equal(t, tt.recognized, layout.Recognized())
		})
	}
}
