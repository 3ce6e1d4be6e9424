// Package config provides path resolution and settings for cargo-config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for directories.
	AppName = "cargo-config"
	// SettingsFileName is the tool settings file name.
	SettingsFileName = "settings.yaml"

	// ProfileDirName is the directory under the cargo dir that holds profiles.
	ProfileDirName = "cargo-config"
	// PointerFileName is the file recording the active profile's name.
	PointerFileName = "cargo-config-current"
	// ActiveConfigName is the file cargo actually reads.
	ActiveConfigName = "config.toml"
	// ProfileExt is the extension of profile files.
	ProfileExt = ".toml"
)

// Paths holds the resolved base directories and well-known files.
// Every operation receives these explicitly instead of recomputing them.
type Paths struct {
	// CargoDir is cargo's own directory (default ~/.cargo).
	CargoDir string
	// ProfileDir is the managed profile directory inside CargoDir.
	ProfileDir string
	// PointerFile records the name of the active profile.
	PointerFile string
	// ActiveConfig is the config.toml cargo reads, linked to the active profile.
	ActiveConfig string
	// SettingsDir is the tool's own configuration directory.
	SettingsDir string
	// SettingsFile is the tool settings file.
	SettingsFile string
}

// GetPaths resolves all application paths.
// The cargo dir honors CARGO_HOME, the same variable cargo itself uses.
func GetPaths() (Paths, error) {
	cargoDir, err := getCargoDir()
	if err != nil {
		return Paths{}, err
	}

	profileDir := filepath.Join(cargoDir, ProfileDirName)
	settingsDir := getSettingsDir()

	return Paths{
		CargoDir:     cargoDir,
		ProfileDir:   profileDir,
		PointerFile:  filepath.Join(profileDir, PointerFileName),
		ActiveConfig: filepath.Join(cargoDir, ActiveConfigName),
		SettingsDir:  settingsDir,
		SettingsFile: filepath.Join(settingsDir, SettingsFileName),
	}, nil
}

// getCargoDir returns cargo's directory.
func getCargoDir() (string, error) {
	if dir := os.Getenv("CARGO_HOME"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cargo directory could not be found: %w", err)
	}
	return filepath.Join(home, ".cargo"), nil
}

// getSettingsDir returns the tool's configuration directory.
func getSettingsDir() string {
	// Check for explicit override
	if dir := os.Getenv("CARGO_CONFIG_HOME"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		// Use %APPDATA%\cargo-config on Windows
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			return filepath.Join(userProfile, "AppData", "Roaming", AppName)
		}
	case "darwin":
		// macOS: prefer XDG, fallback to ~/Library/Application Support
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			// Check if ~/.config/cargo-config exists, use it if so
			xdgPath := filepath.Join(home, ".config", AppName)
			if _, err := os.Stat(xdgPath); err == nil {
				return xdgPath
			}
			return filepath.Join(home, "Library", "Application Support", AppName)
		}
	default:
		// Linux and other Unix-like systems: follow XDG
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", AppName)
		}
	}

	// Last resort fallback
	return filepath.Join(".", "."+AppName)
}

// EnsureProfileDir creates the profile directory if it is missing.
// Idempotent; the directory already existing is not an error.
func (p Paths) EnsureProfileDir() error {
	return os.MkdirAll(p.ProfileDir, 0700)
}

// EnsureSettingsDir creates the settings directory if it is missing.
func (p Paths) EnsureSettingsDir() error {
	return os.MkdirAll(p.SettingsDir, 0700)
}

// ProfileFile returns the backing file path for a named profile.
func (p Paths) ProfileFile(name string) string {
	return filepath.Join(p.ProfileDir, name+ProfileExt)
}
