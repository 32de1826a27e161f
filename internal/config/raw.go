package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// Raw types mirror Config with pointers so a merge can tell "unset" from a
// zero value.

type RawWindowConfig struct {
	Title        *string `yaml:"title"`
	Width        *int    `yaml:"width"`
	Height       *int    `yaml:"height"`
	Fullscreen   *bool   `yaml:"fullscreen"`
	SwapInterval *int    `yaml:"swap_interval"`
	ClientAPI    *string `yaml:"client_api"`
}

type RawLoggingConfig struct {
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawConfig struct {
	Include IncludeList       `yaml:"include"`
	Backend *string           `yaml:"backend"`
	Window  *RawWindowConfig  `yaml:"window"`
	Hotkeys map[string]string `yaml:"hotkeys"`
	Logging *RawLoggingConfig `yaml:"logging"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.Window != nil {
		out.Window = mergeRawWindow(out.Window, overlay.Window)
	}
	if overlay.Hotkeys != nil {
		merged := make(map[string]string, len(out.Hotkeys)+len(overlay.Hotkeys))
		for action, seq := range out.Hotkeys {
			merged[action] = seq
		}
		for action, seq := range overlay.Hotkeys {
			merged[action] = seq
		}
		out.Hotkeys = merged
	}
	if overlay.Logging != nil {
		out.Logging = mergeRawLogging(out.Logging, overlay.Logging)
	}
	return out
}

func mergeRawWindow(base, overlay *RawWindowConfig) *RawWindowConfig {
	out := RawWindowConfig{}
	if base != nil {
		out = *base
	}
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Fullscreen != nil {
		out.Fullscreen = overlay.Fullscreen
	}
	if overlay.SwapInterval != nil {
		out.SwapInterval = overlay.SwapInterval
	}
	if overlay.ClientAPI != nil {
		out.ClientAPI = overlay.ClientAPI
	}
	return &out
}

func mergeRawLogging(base, overlay *RawLoggingConfig) *RawLoggingConfig {
	out := RawLoggingConfig{}
	if base != nil {
		out = *base
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.File != nil {
		out.File = overlay.File
	}
	if overlay.MaxSizeMB != nil {
		out.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxFiles != nil {
		out.MaxFiles = overlay.MaxFiles
	}
	return &out
}

// BuildEffectiveConfig applies raw settings on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if w := raw.Window; w != nil {
		if w.Title != nil {
			cfg.Window.Title = *w.Title
		}
		if w.Width != nil {
			cfg.Window.Width = *w.Width
		}
		if w.Height != nil {
			cfg.Window.Height = *w.Height
		}
		if w.Fullscreen != nil {
			cfg.Window.Fullscreen = *w.Fullscreen
		}
		if w.SwapInterval != nil {
			cfg.Window.SwapInterval = *w.SwapInterval
		}
		if w.ClientAPI != nil {
			cfg.Window.ClientAPI = *w.ClientAPI
		}
	}
	for action, seq := range raw.Hotkeys {
		cfg.Hotkeys[action] = seq
	}
	if l := raw.Logging; l != nil {
		if l.Level != nil {
			cfg.Logging.Level = *l.Level
		}
		if l.File != nil {
			cfg.Logging.File = *l.File
		}
		if l.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *l.MaxSizeMB
		}
		if l.MaxFiles != nil {
			cfg.Logging.MaxFiles = *l.MaxFiles
		}
	}
	return cfg
}
