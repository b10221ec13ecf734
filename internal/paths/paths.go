// Package paths resolves XDG locations for the adapter's files.
package paths

import (
	"os"
	"path/filepath"
)

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

func xdgDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, "designmcp")
	}
	return filepath.Join(homeDir(), fallbackSuffix, "designmcp")
}

// ConfigDir returns the config directory ($XDG_CONFIG_HOME/designmcp).
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the state directory ($XDG_STATE_HOME/designmcp).
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// PrefsFile returns the path to the user preferences record.
func PrefsFile() string {
	return filepath.Join(StateDir(), "preferences.json")
}

// EnsureDir creates a directory and parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
