package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winkit/internal/hotkeys"
	"github.com/1broseidon/winkit/internal/input"
	"github.com/1broseidon/winkit/internal/runtimepath"
)

// WindowConfig describes the window opened by `winkit run`.
type WindowConfig struct {
	Title      string `json:"title" yaml:"title"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	// SwapInterval is the number of refreshes to wait per frame; 0 disables vsync.
	SwapInterval int `json:"swap_interval" yaml:"swap_interval"`
	// ClientAPI is "none" or "opengl". Only the glfw backend creates contexts.
	ClientAPI string `json:"client_api" yaml:"client_api"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warning, error
	Level string `json:"level" yaml:"level"`
	// File is an optional log file path, written in addition to stderr.
	// The default empty value disables file logging.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `json:"max_files" yaml:"max_files"`
}

type Config struct {
	// Backend is "auto", "x11" or "glfw".
	Backend string       `json:"backend" yaml:"backend"`
	Window  WindowConfig `json:"window" yaml:"window"`
	// Hotkeys maps an action name to a key sequence such as "ctrl+f".
	Hotkeys map[string]string `json:"hotkeys" yaml:"hotkeys"`
	Logging LoggingConfig     `json:"logging" yaml:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: "x11",
		Window: WindowConfig{
			Title:        "winkit",
			Width:        800,
			Height:       600,
			SwapInterval: 1,
			ClientAPI:    "none",
		},
		Hotkeys: map[string]string{
			string(hotkeys.ActionToggleFullscreen): "F11",
			string(hotkeys.ActionCenter):           "ctrl+t",
			string(hotkeys.ActionClose):            "Escape",
			string(hotkeys.ActionGrabMouse):        "ctrl+g",
			string(hotkeys.ActionReleaseMouse):     "ctrl+r",
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "x11", "glfw":
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, glfw")}
	}

	if strings.TrimSpace(c.Window.Title) == "" {
		return &ValidationError{Path: "window.title", Err: fmt.Errorf("title must not be empty")}
	}
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if c.Window.SwapInterval < 0 {
		return &ValidationError{Path: "window.swap_interval", Err: fmt.Errorf("swap_interval must be >= 0")}
	}
	switch c.Window.ClientAPI {
	case "none":
	case "opengl":
		if c.Backend == "x11" {
			return &ValidationError{Path: "window.client_api", Err: fmt.Errorf("client_api opengl requires the glfw backend")}
		}
	default:
		return &ValidationError{Path: "window.client_api", Err: fmt.Errorf("client_api must be one of: none, opengl")}
	}

	if c.Hotkeys == nil {
		return &ValidationError{Path: "hotkeys", Err: fmt.Errorf("hotkeys must not be null")}
	}
	for action, seq := range c.Hotkeys {
		if !hotkeys.IsAction(action) {
			return &ValidationError{Path: "hotkeys." + action, Err: fmt.Errorf("unknown action; must be one of: %s", actionList())}
		}
		if seq == "" {
			// An empty sequence unbinds the action.
			continue
		}
		if _, err := input.ParseBinding(seq); err != nil {
			return &ValidationError{Path: "hotkeys." + action, Err: err}
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warning, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	return nil
}

func actionList() string {
	names := make([]string, 0, len(hotkeys.Actions()))
	for _, a := range hotkeys.Actions() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

// GetLoggingConfig returns the logging configuration with defaults applied.
// A File of "default" resolves to the state directory log path.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return DefaultConfig().Logging
	}
	cfg := c.Logging
	if cfg.File == "default" {
		if path, err := runtimepath.LogPath(); err == nil {
			cfg.File = path
		} else {
			cfg.File = ""
		}
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	return cfg
}

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0:
		return fmt.Sprintf("%s: %s: %v", e.Source.position(), e.Path, e.Err)
	case e.Source.Kind == SourceEnv:
		return fmt.Sprintf("%s (from %s): %v", e.Path, e.Source.Name, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
