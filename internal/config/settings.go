package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidActivation indicates an unknown activation mode.
	ErrInvalidActivation = errors.New("invalid activation mode")
)

// ActivationMode selects how a profile is put into place on switch.
type ActivationMode string

const (
	// ActivationHardlink links config.toml to the profile file. Edits to the
	// active profile are visible to cargo without re-switching.
	ActivationHardlink ActivationMode = "hardlink"
	// ActivationCopy copies the profile file instead. Works on filesystems
	// without hard-link support, but edits require another switch.
	ActivationCopy ActivationMode = "copy"
)

// NotificationSettings holds settings for desktop notifications.
type NotificationSettings struct {
	// Enabled enables desktop notifications.
	Enabled bool `yaml:"enabled,omitempty"`
	// OnSwitch sends a notification on successful profile switch.
	OnSwitch bool `yaml:"on_switch,omitempty"`
}

// Settings represents the cargo-config tool settings.
// Profile content is opaque to the tool; these settings only affect the tool's
// own behavior.
type Settings struct {
	// Editor is the fallback editor when --editor is not given and
	// $EDITOR/$VISUAL are unset.
	Editor string `yaml:"editor,omitempty"`
	// Activation is the strategy used by switch (hardlink or copy).
	Activation ActivationMode `yaml:"activation,omitempty"`
	// Notifications holds notification settings.
	Notifications NotificationSettings `yaml:"notifications,omitempty"`

	// filePath is the path where these settings were loaded from.
	filePath string `yaml:"-"`
}

// DefaultSettings returns Settings with default values.
func DefaultSettings(paths Paths) *Settings {
	return &Settings{
		Activation: ActivationHardlink,
		Notifications: NotificationSettings{
			Enabled:  false,
			OnSwitch: true,
		},
		filePath: paths.SettingsFile,
	}
}

// LoadSettings loads the settings from the default path.
func LoadSettings(paths Paths) (*Settings, error) {
	return LoadSettingsFrom(paths, paths.SettingsFile)
}

// LoadSettingsFrom loads the settings from a specific path.
// A missing file yields defaults.
func LoadSettingsFrom(paths Paths, path string) (*Settings, error) {
	s := DefaultSettings(paths)
	s.filePath = path

	// #nosec G304 - path is the settings file path from the user config directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if s.Activation == "" {
		s.Activation = ActivationHardlink
	}
	if s.Activation != ActivationHardlink && s.Activation != ActivationCopy {
		return nil, fmt.Errorf("%w: %q (must be %q or %q)",
			ErrInvalidActivation, s.Activation, ActivationHardlink, ActivationCopy)
	}

	return s, nil
}

// Save writes the settings to their file path.
func (s *Settings) Save(paths Paths) error {
	if s.filePath == "" {
		return errors.New("settings file path not set")
	}

	if err := paths.EnsureSettingsDir(); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// FilePath returns the path where these settings were loaded from.
func (s *Settings) FilePath() string {
	return s.filePath
}
