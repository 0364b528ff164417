package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.charm).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".charm"), nil
}

// GetCrashLogBasePath returns the directory crash logs are written under.
// Resolution order (first match wins):
// 1. XDG_STATE_HOME/charm (if XDG_STATE_HOME is set)
// 2. ~/.charm
// 3. ./.charm when the home directory cannot be resolved
func GetCrashLogBasePath() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "charm")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ".charm"
	}
	return dir
}
