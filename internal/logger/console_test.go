package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestLogger(level string) (*ConsoleLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, level)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 8, 7, 0, time.UTC) }
	return l, buf
}

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "debug")

		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.Level() != "debug" {
			t.Errorf("expected log level %q, got %q", "debug", logger.Level())
		}
		if logger.colorOutput {
			t.Error("color should be off for a buffer")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		logger.LogError("dropped")
	})
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := map[string]string{
		"trace":   "trace",
		"DEBUG":   "debug",
		" Warn ":  "warn",
		"error":   "error",
		"":        "info",
		"verbose": "info",
	}
	for in, want := range tests {
		if got := normalizeLogLevel(in); got != want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogFormat(t *testing.T) {
	l, buf := newTestLogger("trace")
	l.LogInfo("hello")

	if got, want := buf.String(), "[09:08:07] [INFO] hello\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, buf := newTestLogger(tt.level)
			l.LogTrace("m")
			l.LogDebug("m")
			l.LogInfo("m")
			l.LogWarn("m")
			l.LogError("m")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d: %q", len(lines), len(tt.want), buf.String())
			}
			for i, lvl := range tt.want {
				if !strings.Contains(lines[i], "["+lvl+"]") {
					t.Errorf("line %d = %q, want level %s", i, lines[i], lvl)
				}
			}
		})
	}
}

func TestLogSkipped(t *testing.T) {
	l, buf := newTestLogger("debug")
	l.LogSkipped("src/.git", "skip")

	if !strings.Contains(buf.String(), "[DEBUG] skipped src/.git (skip)") {
		t.Errorf("unexpected output %q", buf.String())
	}

	quiet, quietBuf := newTestLogger("info")
	quiet.LogSkipped("src/.git", "skip")
	if quietBuf.Len() != 0 {
		t.Errorf("skipped entries should only be logged at debug level, got %q", quietBuf.String())
	}
}

func TestLogFileError(t *testing.T) {
	l, buf := newTestLogger("warn")
	l.LogFileError("a.txt", errors.New("permission denied"))

	if got, want := buf.String(), "[09:08:07] [WARN] a.txt: permission denied\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogSummary(t *testing.T) {
	tests := []struct {
		name       string
		searched   int
		matched    int
		unreadable int
		elapsed    time.Duration
		want       string
	}{
		{"fast", 3, 1, 0, 250 * time.Microsecond, "searched 3 files, 1 matched in 250µs"},
		{"milliseconds", 10, 0, 0, 42 * time.Millisecond, "searched 10 files, 0 matched in 42ms"},
		{"with unreadable", 10, 2, 3, 1500 * time.Millisecond, "searched 10 files, 2 matched (3 unreadable) in 1.5s"},
		{"minutes", 1, 1, 0, 125 * time.Second, "searched 1 files, 1 matched in 2m5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger("info")
			l.LogSummary(tt.searched, tt.matched, tt.unreadable, tt.elapsed)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("got %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestConcurrentLogging(t *testing.T) {
	l, buf := newTestLogger("info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.LogInfo("line")
		}()
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 20 {
		t.Errorf("expected 20 lines, got %d", got)
	}
}

func TestNoOpLogger(t *testing.T) {
	n := NewNoOpLogger()
	n.LogTrace("x")
	n.LogDebug("x")
	n.LogInfo("x")
	n.LogWarn("x")
	n.LogError("x")
	n.LogSkipped("p", "skip")
	n.LogFileError("p", errors.New("x"))
	n.LogSummary(1, 1, 1, time.Second)
}
