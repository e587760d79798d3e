package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/markstyle/internal/config"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return logger, &buf
}

func TestLogger_Format(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.WithFields(map[string]any{"b": 2, "a": "x"}).Info("formatted %s %d", "test", 42)

	want := "2026-01-02T03:04:05.000 [INFO] test: formatted test 42 {a=x, b=2}\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	for _, filtered := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, filtered) {
			t.Errorf("expected %s to be filtered out", filtered)
		}
	}
	for _, kept := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(output, kept) {
			t.Errorf("expected %s in output", kept)
		}
	}

	logger.SetLevel(LogLevelDebug)
	if logger.Level() != LogLevelDebug {
		t.Error("SetLevel did not apply")
	}
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("expected debug output after SetLevel")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	child := logger.WithComponent("smartstyle")
	child.Info("test")
	logger.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "{component=smartstyle}") {
		t.Errorf("child line = %q", lines[0])
	}
	if strings.Contains(lines[1], "component") {
		t.Errorf("parent should not carry child fields: %q", lines[1])
	}
}

func TestLogger_Disable(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)
	logger.Disable()
	logger.Error("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output when disabled")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.Info("test")
	NullLogger.WithField("k", 1).Error("test")
}

func TestNewLoggerFromConfig(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := NewLoggerFromConfig(config.LoggingConfig{Level: "debug"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if closer != nil {
		t.Error("stderr logger should have no closer")
	}
	logger.Debug("to stderr")
	if !strings.Contains(stderr.String(), "to stderr") {
		t.Errorf("stderr = %q", stderr.String())
	}

	path := filepath.Join(t.TempDir(), "logs", "markstyle.log")
	logger, closer, err = NewLoggerFromConfig(config.LoggingConfig{Level: "info", File: path, MaxSize: 1}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] markstyle: to file") {
		t.Errorf("log file = %q", data)
	}
}
