// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "bibaboba"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", ".local", "share")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	return xdgHome("XDG_STATE_HOME", ".local", "state")
}

func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultCacheDBPath returns the default path for the token cache database.
func DefaultCacheDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "cache.db")
}

// DefaultModelDir returns the directory holding the downloaded tokenizer model.
func DefaultModelDir() string {
	return filepath.Join(XDGDataHome(), appName, "nltk")
}

// DefaultLockDir returns the directory for per-participant cache lock files.
func DefaultLockDir() string {
	return filepath.Join(XDGStateHome(), appName, "locks")
}
