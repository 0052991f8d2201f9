package logging

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func setupLogger(t *testing.T, level Level) (string, func()) {
	t.Helper()

	logDir := t.TempDir()
	if err := Initialize(logDir, level); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	logPath := GetLogPath()
	if logPath == "" {
		t.Fatalf("GetLogPath returned empty path")
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			_ = Close()
		})
	}
	t.Cleanup(cleanup)

	return logPath, cleanup
}

func TestInitializeAndLogWrites(t *testing.T) {
	logPath, cleanup := setupLogger(t, LevelInfo)

	Info("spawned %s", "bash")
	cleanup()

	if !strings.Contains(logPath, "mikoshi-") {
		t.Fatalf("expected dated mikoshi log file, got %q", logPath)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "INFO: spawned bash") {
		t.Fatalf("expected log line to contain message, got: %q", string(data))
	}
}

func TestSetEnabledDisablesLogging(t *testing.T) {
	logPath, cleanup := setupLogger(t, LevelDebug)

	SetEnabled(false)
	Info("should not write")
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(strings.TrimSpace(string(data))) != 0 {
		t.Fatalf("expected no log output when disabled, got: %q", string(data))
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, LevelWarn)
	t.Cleanup(func() { _ = Close() })

	Info("info message")
	Warn("warn message")

	content := buf.String()
	if strings.Contains(content, "INFO: info message") {
		t.Fatalf("did not expect info log at warn level: %q", content)
	}
	if !strings.Contains(content, "WARN: warn message") {
		t.Fatalf("expected warn log, got: %q", content)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, LevelError)
	t.Cleanup(func() { _ = Close() })

	Debug("hidden")
	SetLevel(LevelDebug)
	Debug("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug line written before level change: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "DEBUG: visible") {
		t.Fatalf("expected debug line after SetLevel, got %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, LevelDebug)
	t.Cleanup(func() { _ = Close() })

	WithError(nil, "ignored")
	WithError(os.ErrClosed, "write input")

	if strings.Contains(buf.String(), "ignored") {
		t.Fatalf("nil error should not be logged: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "ERROR: write input: file already closed") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestLoggingWithoutInitializeIsNoop(t *testing.T) {
	_ = Close()
	Error("nobody listening %d", 1)
	if GetLogPath() != "" {
		t.Fatalf("expected empty log path without logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
