package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDir returns the directory for winkit's persistent state such as log
// files. Priority:
// 1) $XDG_STATE_HOME/winkit (if XDG_STATE_HOME is set)
// 2) ~/.local/state/winkit
// 3) /tmp/winkit-state-<uid> (when no home directory is known)
func StateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "winkit"), nil
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "winkit"), nil
	}

	tmpDir := fmt.Sprintf("/tmp/winkit-state-%d", os.Getuid())
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create state dir: %w", err)
	}
	return tmpDir, nil
}

// LogPath returns the default log file path.
func LogPath() (string, error) {
	stateDir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "winkit.log"), nil
}
