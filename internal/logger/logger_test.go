package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	l := NewFile(path)
	l.Logf("scene: %d tiles", 15)

	lines := l.Lines()
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "] scene: 15 tiles") {
		t.Fatalf("Lines() = %q", lines)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "scene: 15 tiles\n") {
		t.Errorf("file = %q", data)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	l.Log("ignored")
	if l.Lines() != nil {
		t.Error("nil logger returned lines")
	}
}

func TestSlogHandler(t *testing.T) {
	l := NewFile("")
	log := slog.New(l.Handler(slog.LevelInfo))
	log.Debug("hidden")
	log.WithGroup("gg").Info("backend", "name", "software")

	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "INFO backend gg.name=software") {
		t.Errorf("line = %q", lines[0])
	}
}
