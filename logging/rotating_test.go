package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWeekKey(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026.
	got := weekKey(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	if got != "2026-W01" {
		t.Errorf("Expected 2026-W01, got %s", got)
	}

	// 2023-01-01 is a Sunday belonging to ISO week 52 of 2022.
	got = weekKey(time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC))
	if got != "2022-W52" {
		t.Errorf("Expected 2022-W52, got %s", got)
	}
}

func TestRotatingWriterCreatesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 4, 0)
	defer rw.Close()

	if _, err := rw.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := filepath.Join(dir, "app-"+weekKey(time.Now())+".log")
	content, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("Expected weekly log file at %s: %v", expected, err)
	}
	if string(content) != "hello\n" {
		t.Errorf("Unexpected file content: %q", content)
	}
}

func TestRotatingWriterSizeRotation(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 4, 64)
	defer rw.Close()

	line := strings.Repeat("x", 40) + "\n"
	for i := 0; i < 4; i++ {
		if _, err := rw.Write([]byte(line)); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) < 2 {
		t.Errorf("Expected size rotation to open a second file, found %d", len(entries))
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 1, 0)
	defer rw.Close()

	oldPath := filepath.Join(dir, "app-2020-W01.log")
	if err := os.WriteFile(oldPath, []byte("stale"), 0o644); err != nil {
		t.Fatalf("Failed to seed old log: %v", err)
	}
	past := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatalf("Failed to age old log: %v", err)
	}

	keepPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keepPath, []byte("keep"), 0o644); err != nil {
		t.Fatalf("Failed to seed unrelated file: %v", err)
	}
	if err := os.Chtimes(keepPath, past, past); err != nil {
		t.Fatalf("Failed to age unrelated file: %v", err)
	}

	rw.cleanupOldLogs()

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("Expected stale log file to be removed")
	}
	if _, err := os.Stat(keepPath); err != nil {
		t.Error("Expected non-log file to survive cleanup")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLoggerWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	logger, writer := SetupLogger(dir, "info", 4, 0)
	if writer == nil {
		t.Fatal("Expected a file writer")
	}
	defer writer.Close()

	logger.Info("dose calculated", "medication", "ibuprofen")

	path := filepath.Join(dir, "app-"+weekKey(time.Now())+".log")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal(content[:len(content)-1], &record); err != nil {
		t.Fatalf("Log line is not JSON: %v\n%s", err, content)
	}
	if record["msg"] != "dose calculated" {
		t.Errorf("Unexpected msg: %v", record["msg"])
	}
	if record["medication"] != "ibuprofen" {
		t.Errorf("Unexpected attribute: %v", record["medication"])
	}
}
