package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

// maxSuffix bounds the search for a free file name.
const maxSuffix = 1000

// FileName returns the report file name for a timestamp.
func FileName(at time.Time) string {
	return autocheck.ReportFilePrefix + at.Format(autocheck.ReportTimeLayout) + autocheck.ReportFileExt
}

// Persist writes text into dir under FileName(at). When that name is taken
// it tries -1, -2 and so on, never overwriting an existing file. It returns
// the path written.
func Persist(dir, text string, at time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	first := FileName(at)
	base := strings.TrimSuffix(first, autocheck.ReportFileExt)
	for n := 0; n < maxSuffix; n++ {
		name := first
		if n > 0 {
			name = base + "-" + strconv.Itoa(n) + autocheck.ReportFileExt
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create report file: %w", err)
		}

		_, writeErr := f.WriteString(text)
		closeErr := f.Close()
		if err := errors.Join(writeErr, closeErr); err != nil {
			return "", fmt.Errorf("failed to write report %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free report file name for %s in %s", first, dir)
}
