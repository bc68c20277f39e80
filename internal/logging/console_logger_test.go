package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w

	outputCh := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outputCh <- buf.String()
	}()

	fn()

	w.Close()
	os.Stderr = old
	return <-outputCh
}

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l *ConsoleLogger)
		want    string
	}{
		{"verbose enabled", true, func(l *ConsoleLogger) { l.Verbose("scanning %s", "src") }, "[VERBOSE] scanning src\n"},
		{"verbose disabled", false, func(l *ConsoleLogger) { l.Verbose("scanning %s", "src") }, ""},
		{"info", false, func(l *ConsoleLogger) { l.Info("found %d files", 3) }, "found 3 files\n"},
		{"warn", false, func(l *ConsoleLogger) { l.Warn("no %s", "package.json") }, "[WARN] no package.json\n"},
		{"error", false, func(l *ConsoleLogger) { l.Error("write failed: %v", "disk full") }, "[ERROR] write failed: disk full\n"},
		{"no args keeps percent", false, func(l *ConsoleLogger) { l.Info("100% done") }, "100% done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewConsoleLogger(tt.verbose)
			got := captureStderr(t, func() { tt.log(logger) })
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	logger := NewConsoleLogger(true)

	output := captureStderr(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				logger.Info("message %d", id)
				logger.Verbose("verbose %d", id)
				logger.Warn("warn %d", id)
				logger.Error("error %d", id)
			}(i)
		}
		wg.Wait()
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 40 {
		t.Fatalf("Expected 40 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if !strings.Contains(line, "message") && !strings.Contains(line, "verbose") &&
			!strings.Contains(line, "warn") && !strings.Contains(line, "error") {
			t.Errorf("Line %d appears corrupted: %q", i, line)
		}
	}
}

func TestNullLogger_DiscardsAllMessages(t *testing.T) {
	logger := NewNullLogger()
	got := captureStderr(t, func() {
		logger.Verbose("verbose")
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error")
	})
	if got != "" {
		t.Errorf("NullLogger should discard all messages, got: %q", got)
	}
}

func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewConsoleLogger(false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

// Example demonstrates NullLogger usage
func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	logger.Warn("This too")
	fmt.Println("Done")
	// Output:
	// Done
}
