package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("default window size = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Hotkeys["toggle_fullscreen"] != "F11" {
		t.Fatalf("default toggle_fullscreen = %q", cfg.Hotkeys["toggle_fullscreen"])
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "x11" {
		t.Fatalf("expected default backend x11, got %q", res.Config.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Window.Title != "winkit" {
		t.Fatalf("expected default title, got %q", res.Config.Window.Title)
	}
}

func TestLoadFromPath_PartialWindowKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"window:",
		"  width: 1280",
		"  fullscreen: true",
		"hotkeys:",
		"  close: ctrl+q",
		"  center: \"\"",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w := res.Config.Window
	if w.Width != 1280 || w.Height != 600 || !w.Fullscreen || w.SwapInterval != 1 {
		t.Fatalf("unexpected window config %+v", w)
	}
	if res.Config.Hotkeys["close"] != "ctrl+q" {
		t.Fatalf("close hotkey = %q", res.Config.Hotkeys["close"])
	}
	if res.Config.Hotkeys["center"] != "" {
		t.Fatalf("center should be unbound, got %q", res.Config.Hotkeys["center"])
	}
	if res.Config.Hotkeys["toggle_fullscreen"] != "F11" {
		t.Fatalf("unset hotkeys should keep defaults")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "window:\n  colour: red\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "colour") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
		line int
	}{
		{"backend", "backend: wayland\n", "backend", 1},
		{"negative width", "window:\n  width: -5\n", "window.width", 2},
		{"swap interval", "window:\n  title: x\n  swap_interval: -1\n", "window.swap_interval", 3},
		{"unknown action", "hotkeys:\n  explode: F1\n", "hotkeys.explode", 2},
		{"bad sequence", "hotkeys:\n  close: hyper+q\n", "hotkeys.close", 2},
		{"log level", "logging:\n  level: loud\n", "logging.level", 2},
		{"opengl on x11", "window:\n  client_api: opengl\n", "window.client_api", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.data)

			_, err := LoadFromPath(path)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("Path = %q, want %q", verr.Path, tt.path)
			}
			if verr.Source.Kind != SourceFile || verr.Source.Line != tt.line {
				t.Fatalf("Source = %+v, want file line %d", verr.Source, tt.line)
			}
			if !strings.HasPrefix(err.Error(), verr.Source.File+":") {
				t.Fatalf("expected file:line:col prefix, got %v", err)
			}
		})
	}
}

func TestValidate_OpenGLWithGLFW(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "glfw"
	cfg.Window.ClientAPI = "opengl"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("glfw with opengl should validate, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	writeFile(t, filepath.Join(dir, "config.d", "10-base.yaml"), "window:\n  width: 1000\n  height: 700\n")
	writeFile(t, filepath.Join(dir, "config.d", "20-override.yaml"), "window:\n  width: 1100\n")
	writeFile(t, filepath.Join(dir, "config.d", "notes.txt"), "ignored")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"include:",
		"  - config.d",
		"window:",
		"  title: main",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w := res.Config.Window
	if w.Width != 1100 || w.Height != 700 || w.Title != "main" {
		t.Fatalf("unexpected merged window %+v", w)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
	if filepath.Base(res.Files[2]) != "config.yaml" {
		t.Fatalf("main file should load last, got %v", res.Files)
	}

	_, src, err := Explain(res, "window.width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "20-override.yaml" {
		t.Fatalf("window.width source = %+v, want 20-override.yaml", src)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "backend: glfw\nhotkeys:\n  close: ctrl+w\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		path string
		want any
		kind SourceKind
	}{
		{"backend", "glfw", SourceFile},
		{"hotkeys.close", "ctrl+w", SourceFile},
		{"hotkeys.center", "ctrl+t", SourceDefault},
		{"window.height", 600, SourceDefault},
		{"logging.level", "info", SourceDefault},
	}
	for _, tt := range tests {
		val, src, err := Explain(res, tt.path)
		if err != nil {
			t.Fatalf("Explain(%q): %v", tt.path, err)
		}
		if val != tt.want {
			t.Fatalf("Explain(%q) = %#v, want %#v", tt.path, val, tt.want)
		}
		if src.Kind != tt.kind {
			t.Fatalf("Explain(%q) source = %+v, want %s", tt.path, src, tt.kind)
		}
	}

	for _, bad := range []string{"", "window.depth", "hotkeys.explode", "backend.name", "nope"} {
		if _, _, err := Explain(res, bad); err == nil {
			t.Fatalf("Explain(%q) expected error", bad)
		}
	}
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "backend: x11\nlogging:\n  level: error\n")

	t.Setenv("WINKIT_BACKEND", "glfw")
	t.Setenv("WINKIT_FULLSCREEN", "true")
	t.Setenv("WINKIT_LOG_LEVEL", "")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "glfw" || !res.Config.Window.Fullscreen {
		t.Fatalf("env overrides not applied: backend=%q fullscreen=%v", res.Config.Backend, res.Config.Window.Fullscreen)
	}
	if res.Config.Logging.Level != "error" {
		t.Fatalf("empty env var should not override, level=%q", res.Config.Logging.Level)
	}

	_, src, err := Explain(res, "backend")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceEnv || src.Name != "WINKIT_BACKEND" {
		t.Fatalf("backend source = %+v, want env WINKIT_BACKEND", src)
	}
	if _, src, _ := Explain(res, "logging.level"); src.Kind != SourceFile || src.Line != 3 {
		t.Fatalf("logging.level source = %+v, want file line 3", src)
	}
}

func TestLoadFromPath_EnvOverrideErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("WINKIT_FULLSCREEN", "sometimes")
		_, err := LoadFromPath(missing)
		if err == nil || !strings.Contains(err.Error(), "WINKIT_FULLSCREEN") {
			t.Fatalf("expected WINKIT_FULLSCREEN error, got %v", err)
		}
	})

	t.Run("invalid value names variable", func(t *testing.T) {
		t.Setenv("WINKIT_BACKEND", "wayland")
		_, err := LoadFromPath(missing)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if verr.Source.Kind != SourceEnv || !strings.Contains(err.Error(), "WINKIT_BACKEND") {
			t.Fatalf("unexpected error %v", err)
		}
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/etc/winkit.yaml")
	if got, err := DefaultConfigPath(); err != nil || got != "/etc/winkit.yaml" {
		t.Fatalf("DefaultConfigPath() = %q, %v", got, err)
	}

	home := t.TempDir()
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("HOME", home)
	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if want := filepath.Join(home, ".config", "winkit", "config.yaml"); got != want {
		t.Fatalf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestGetLoggingConfig(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)

	cfg := DefaultConfig()
	cfg.Logging.File = "default"
	cfg.Logging.MaxSizeMB = 0
	cfg.Logging.MaxFiles = 0

	got := cfg.GetLoggingConfig()
	if want := filepath.Join(td, "winkit", "winkit.log"); got.File != want {
		t.Fatalf("File = %q, want %q", got.File, want)
	}
	if got.MaxSizeMB != 10 || got.MaxFiles != 3 {
		t.Fatalf("rotation defaults not applied: %+v", got)
	}

	var nilCfg *Config
	if got := nilCfg.GetLoggingConfig(); got.Level != "info" {
		t.Fatalf("nil config logging = %+v", got)
	}
}
