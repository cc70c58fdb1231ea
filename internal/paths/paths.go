package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns $XDG_CONFIG_HOME/tagpick, or ~/.config/tagpick.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tagpick")
	}
	return filepath.Join(home(), ".config", "tagpick")
}

// StateDir returns $XDG_STATE_HOME/tagpick, or ~/.local/state/tagpick.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tagpick")
	}
	return filepath.Join(home(), ".local", "state", "tagpick")
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogFile returns the default log file path.
func LogFile() string {
	return filepath.Join(StateDir(), "tagpick.log")
}
