package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winkit/internal/config"
	"github.com/1broseidon/winkit/internal/platform/platformtest"
	"github.com/1broseidon/winkit/internal/window"
)

func testManager(t *testing.T) *window.Manager {
	t.Helper()
	f := platformtest.New()
	f.AddMonitor(0, 0, platformtest.Mode(1920, 1080, 60), platformtest.Mode(1920, 1080, 60), platformtest.Mode(1280, 720, 60))
	f.AddMonitor(1920, 0, platformtest.Mode(2560, 1440, 144))

	m, err := window.NewManager(f, window.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Free)
	return m
}

func TestCollectMonitors(t *testing.T) {
	m := testManager(t)

	infos := collectMonitors(m, false)
	if len(infos) != 2 {
		t.Fatalf("len=%d, want 2", len(infos))
	}
	if !infos[0].Primary || infos[1].Primary {
		t.Fatalf("primary flags = %v,%v, want true,false", infos[0].Primary, infos[1].Primary)
	}
	if infos[1].X != 1920 || infos[1].Current.RefreshRate != 144 {
		t.Fatalf("second monitor = %+v", infos[1])
	}
	if infos[0].Modes != nil {
		t.Fatalf("modes should be omitted, got %v", infos[0].Modes)
	}

	infos = collectMonitors(m, true)
	if got := len(infos[0].Modes); got != 2 {
		t.Fatalf("modes len=%d, want 2", got)
	}
	if infos[0].Modes[0].Width != 1280 {
		t.Fatalf("modes should be lowest resolution first, got %v", infos[0].Modes)
	}
}

func TestWriteMonitorTable(t *testing.T) {
	infos := collectMonitors(testManager(t), false)

	var plain bytes.Buffer
	if err := writeMonitorTable(&plain, infos, false); err != nil {
		t.Fatalf("writeMonitorTable: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(plain.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d, want 3:\n%s", len(lines), plain.String())
	}
	if lines[1] != "1\t*\t0,0\t1920x1080@60Hz (8,8,8)" {
		t.Fatalf("row = %q", lines[1])
	}

	var aligned bytes.Buffer
	if err := writeMonitorTable(&aligned, infos, true); err != nil {
		t.Fatalf("writeMonitorTable: %v", err)
	}
	if strings.Contains(aligned.String(), "\t") {
		t.Fatalf("aligned output should not contain tabs:\n%s", aligned.String())
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceEnv, Name: "WINKIT_BACKEND"}, "env:WINKIT_BACKEND"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestConfigOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: glfw\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var buf bytes.Buffer
	if rc := runConfig([]string{"print", "--path", path, "--format", "json"}, &buf); rc != 0 {
		t.Fatalf("print rc=%d", rc)
	}
	if !strings.Contains(buf.String(), `"backend": "glfw"`) || !strings.Contains(buf.String(), `"swap_interval": 1`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}

	buf.Reset()
	if rc := runConfig([]string{"explain", "--path", path, "backend"}, &buf); rc != 0 {
		t.Fatalf("explain rc=%d", rc)
	}
	out := buf.String()
	if !strings.Contains(out, "source: file:") || !strings.Contains(out, ":1:10") || !strings.Contains(out, "glfw") {
		t.Fatalf("unexpected explain output:\n%s", out)
	}
}

func TestRunConfigExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(bad, []byte("window:\n  width: 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no subcommand", nil, 2},
		{"unknown subcommand", []string{"frobnicate"}, 2},
		{"validate ok", []string{"validate", "--path", good}, 0},
		{"validate invalid", []string{"validate", "--path", bad}, 1},
		{"explain missing arg", []string{"explain", "--path", good}, 2},
		{"explain unknown path", []string{"explain", "--path", good, "window.depth"}, 1},
		{"explain ok", []string{"explain", "--path", good, "window.width"}, 0},
		{"print defaults", []string{"print", "--defaults"}, 0},
		{"print json", []string{"print", "--path", good, "--format", "json"}, 0},
		{"print bad format", []string{"print", "--defaults", "--format", "xml"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rc := runConfig(tt.args, io.Discard); rc != tt.want {
				t.Fatalf("runConfig(%v) rc=%d, want %d", tt.args, rc, tt.want)
			}
		})
	}
}
