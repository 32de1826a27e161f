package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winkit/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_StderrOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "warning"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "window", "main")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warning level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "window=main") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNew_FileAndStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "winkit.log")
	var buf bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxFiles: 2}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("window realized", "title", "demo")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "window realized") {
		t.Fatalf("log file missing record: %q", data)
	}
	if !strings.Contains(buf.String(), "window realized") {
		t.Fatalf("stderr missing record: %q", buf.String())
	}
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winkit.log")
	rf, err := OpenRotatingFile(path, 1, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile() error = %v", err)
	}
	defer rf.Close()
	rf.maxBytes = 10

	for _, line := range []string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n", "dddddddd\n"} {
		if _, err := rf.Write([]byte(line)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	want := map[string]string{
		path:        "dddddddd\n",
		path + ".1": "cccccccc\n",
		path + ".2": "bbbbbbbb\n",
	}
	for p, content := range want {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(data) != content {
			t.Fatalf("%s = %q, want %q", filepath.Base(p), data, content)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected no third rotated file, stat err = %v", err)
	}
}

func TestRotatingFile_ResumesSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winkit.log")
	if err := os.WriteFile(path, []byte("existing\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	rf, err := OpenRotatingFile(path, 1, 1)
	if err != nil {
		t.Fatalf("OpenRotatingFile() error = %v", err)
	}
	rf.maxBytes = 12
	if _, err := rf.Write([]byte("next\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	rf.Close()

	old, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("expected rotation of pre-existing content: %v", err)
	}
	if string(old) != "existing\n" {
		t.Fatalf("rotated file = %q", old)
	}

	if _, err := rf.Write([]byte("late\n")); err == nil {
		t.Fatalf("write after Close should fail")
	}
}
