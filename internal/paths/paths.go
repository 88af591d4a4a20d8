// Package paths resolves configuration and project directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names used when no override is active.
const (
	DefaultConfigDirName  = ".lightbox"
	DefaultProjectDirName = ".lightbox-project"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir  = "LIGHTBOX_CONFIG_DIR"
	EnvProjectDir = "LIGHTBOX_PROJECT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/lightbox (fallback ~/.config/lightbox)
// macOS:   ~/Library/Application Support/lightbox
// Windows: %APPDATA%/lightbox
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lightbox"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "lightbox"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "lightbox"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > LIGHTBOX_CONFIG_DIR env > DefaultConfigDir().
//
// If flag is non-empty it wins. Otherwise the LIGHTBOX_CONFIG_DIR environment
// variable is checked. If neither is set, the platform default is returned.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveProjectDir returns the project directory following the precedence
// chain: flag > configYAMLValue > LIGHTBOX_PROJECT_DIR env > CWD default.
//
// The CWD-relative default ($(CWD)/.lightbox-project) keeps projects next to
// the images they catalog when no override is active.
func ResolveProjectDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvProjectDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultProjectDirName), nil
}
