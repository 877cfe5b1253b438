package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "bday"

// xdgHome resolves an XDG base directory: the variable when set, otherwise
// the fallback below $HOME, otherwise the working directory.
func xdgHome(envVar string, fallback ...string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", ".local", "share")
}

// DefaultConfigPath returns the TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultDeckPath returns the deck loaded when --deck is not given.
func DefaultDeckPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "deck.yaml")
}

// DefaultLogPath returns the file BDAY_DEBUG logs go to.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appDir, "debug.log")
}

// EnsureParent creates the directory that will hold path.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
