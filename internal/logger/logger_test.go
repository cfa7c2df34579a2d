package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMergeKeepsExplicitValues(t *testing.T) {
	config := Config{Level: "DEBUG", FileMaxSizeMB: 50}.Merge(DefaultConfig())

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if config.FileMaxSizeMB != 50 {
		t.Errorf("FileMaxSizeMB = %d, want 50", config.FileMaxSizeMB)
	}
	if config.ConsoleFormat != "text" {
		t.Errorf("ConsoleFormat = %q, want text", config.ConsoleFormat)
	}
	if config.FilePath != "logs/raysight.log" {
		t.Errorf("FilePath = %q, want logs/raysight.log", config.FilePath)
	}
	if config.ConsoleEnabled {
		t.Error("Merge should not turn the console on")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/tmp/env.log")

	config := DefaultConfig().ApplyEnv()

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", config.Level)
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want json", config.ConsoleFormat)
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "/tmp/env.log" {
		t.Errorf("FilePath = %q, want /tmp/env.log", config.FilePath)
	}
}

func TestApplyEnvIgnoresBadBool(t *testing.T) {
	t.Setenv("LOG_FILE_ENABLED", "sometimes")

	if DefaultConfig().ApplyEnv().FileEnabled {
		t.Error("An unparsable LOG_FILE_ENABLED should leave the default")
	}
}

func TestConsoleOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Level = "WARN"

	if err := initialize(config, &buf); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer Close()

	Info("hidden")
	Warningf("door %d opened", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO record leaked through a WARN logger: %q", out)
	}
	if !strings.Contains(out, "door 3 opened") {
		t.Errorf("Missing warning in %q", out)
	}
}

func TestConsoleJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.ConsoleFormat = "json"

	if err := initialize(config, &buf); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer Close()

	Info("level generated", "seed", 42)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "level generated" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["seed"] != float64(42) {
		t.Errorf("seed = %v, want 42", record["seed"])
	}
}

func TestFileOutput(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "raysight.log")

	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = path

	if err := initialize(config, &buf); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	Errorf("cast failed after %d steps", 12)

	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "cast failed after 12 steps") {
		t.Errorf("Log file missing record: %q", data)
	}
	if !strings.Contains(buf.String(), "cast failed after 12 steps") {
		t.Errorf("Console missing record: %q", buf.String())
	}
}

func TestFileEnabledWithoutPath(t *testing.T) {
	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = ""

	if err := initialize(config, &bytes.Buffer{}); err == nil {
		t.Error("Expected an error for file logging without a path")
	}
}

func TestMultiHandlerFiltersPerHandler(t *testing.T) {
	var debug, errs bytes.Buffer
	h := newMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected DEBUG to be enabled by the first handler")
	}

	l := slog.New(h).With("component", "caster")
	l.Debug("rays sorted")
	l.Error("no apex")

	if !strings.Contains(debug.String(), "rays sorted") || !strings.Contains(debug.String(), "no apex") {
		t.Errorf("Debug handler output = %q", debug.String())
	}
	if strings.Contains(errs.String(), "rays sorted") {
		t.Errorf("Error handler received a debug record: %q", errs.String())
	}
	if !strings.Contains(errs.String(), "component=caster") {
		t.Errorf("Attributes not propagated: %q", errs.String())
	}
}

func TestLoggerBeforeInitialize(t *testing.T) {
	mu.Lock()
	saved := logger
	logger = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		logger = saved
		mu.Unlock()
	}()

	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	Info("dropped silently")
}
