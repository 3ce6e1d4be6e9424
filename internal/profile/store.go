// Package profile implements the profile store: named cargo configuration
// profiles kept in a dedicated directory, one of which is activated into
// cargo's config.toml location.
package profile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/cargoctl/cargo-config/internal/config"
)

var (
	// ErrEmptyName is returned when a profile name is empty.
	ErrEmptyName = errors.New("profile name cannot be empty")
	// ErrReservedName is returned when a profile name collides with an
	// internal file name.
	ErrReservedName = errors.New("profile name is reserved")
	// ErrInvalidName is returned when a profile name contains unsafe characters.
	ErrInvalidName = errors.New("profile name contains invalid characters")
	// ErrNoPointer is returned when the pointer file has not been created yet.
	ErrNoPointer = errors.New("no active profile recorded; switch to a profile first")
)

// Store performs all operations against the profile directory and cargo's
// own directory. It holds the two resolved base directories and the
// activation strategy; it keeps no other state and no open handles.
type Store struct {
	paths     config.Paths
	activator Activator
}

// NewStore creates a Store using the given paths and activation mode.
func NewStore(paths config.Paths, mode config.ActivationMode) *Store {
	return &Store{
		paths:     paths,
		activator: NewActivator(mode),
	}
}

// Paths returns the resolved paths this store operates on.
func (s *Store) Paths() config.Paths {
	return s.paths
}

// ValidateName checks that a name is usable as a profile name.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if name == config.PointerFileName {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	for _, r := range name {
		// Allow alphanumeric, hyphen, underscore, and dot
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.') {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Create creates a new empty profile file.
// It fails if a profile of that name already exists; errors.Is reports
// fs.ErrExist in that case.
func (s *Store) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.paths.EnsureProfileDir(); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	f, err := os.OpenFile(s.paths.ProfileFile(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("profile %q already exists: %w", name, fs.ErrExist)
		}
		return fmt.Errorf("failed to create profile %q: %w", name, err)
	}
	return f.Close()
}

// Switch makes the named profile the active one. The pointer file is
// rewritten with the profile's name, any existing config.toml is removed,
// and the profile is activated into cargo's config.toml location.
//
// The steps are not transactional: if activation fails after the removal
// step, no config is left in place.
func (s *Store) Switch(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.paths.EnsureProfileDir(); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	// Full replacement of the pointer content, never an append.
	if err := os.WriteFile(s.paths.PointerFile, []byte(name), 0644); err != nil {
		return fmt.Errorf("failed to record active profile: %w", err)
	}

	if err := os.Remove(s.paths.ActiveConfig); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove existing %s: %w", config.ActiveConfigName, err)
	}

	if err := s.activator.Activate(s.paths.ProfileFile(name), s.paths.ActiveConfig); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("profile %q does not exist: %w", name, fs.ErrNotExist)
		}
		return fmt.Errorf("failed to activate profile %q: %w", name, err)
	}

	return nil
}

// Current returns the name recorded in the pointer file.
func (s *Store) Current() (string, error) {
	data, err := os.ReadFile(s.paths.PointerFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w", ErrNoPointer)
		}
		return "", fmt.Errorf("failed to read active profile: %w", err)
	}
	return string(data), nil
}

// List enumerates all profiles in directory iteration order and returns the
// active profile's name alongside, so callers need no separate Current call.
// The displayed name is the substring before the first ".toml" occurrence in
// the file name; the pointer file is excluded. Listing requires the pointer
// file to exist, so it fails before the first switch or migration.
func (s *Store) List() ([]Info, string, error) {
	current, err := s.Current()
	if err != nil {
		return nil, "", err
	}

	entries, err := os.ReadDir(s.paths.ProfileDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read profile directory: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		name := DisplayName(entry.Name())
		if name == config.PointerFileName {
			continue
		}
		infos = append(infos, Info{
			Name:   name,
			Active: name == current,
		})
	}

	return infos, current, nil
}

// DisplayName derives a profile's display name from its file name by taking
// the part before the first ".toml" occurrence. A file name without ".toml"
// is displayed as is.
func DisplayName(fileName string) string {
	if i := strings.Index(fileName, config.ProfileExt); i >= 0 {
		return fileName[:i]
	}
	return fileName
}

// Remove deletes the named profile's file.
//
// Removing the active profile is allowed: cargo's config.toml is a hard
// link, so it keeps the bytes while the name disappears from the listing.
func (s *Store) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.paths.ProfileFile(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s does not exist: %w", name, fs.ErrNotExist)
		}
		return fmt.Errorf("failed to remove profile %q: %w", name, err)
	}
	return nil
}

// MigratedProfileName is the profile name an unmanaged config.toml is
// migrated into.
const MigratedProfileName = "config"

// Migrate performs the one-time lazy migration: when no pointer file exists
// but cargo already has a config.toml, that file's content is copied into a
// profile named "config", which is then switched to. Warnings are written
// to w. With nothing to migrate this is a no-op.
func (s *Store) Migrate(w io.Writer) error {
	if _, err := os.Stat(s.paths.PointerFile); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check pointer file: %w", err)
	}

	data, err := os.ReadFile(s.paths.ActiveConfig)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First-time use with nothing to migrate.
			return nil
		}
		return fmt.Errorf("failed to read existing %s: %w", config.ActiveConfigName, err)
	}

	fmt.Fprintf(w, "Warning:   ⚠  %s exists in Cargo directory, moving to %s/%s%s\n",
		config.ActiveConfigName, config.ProfileDirName, MigratedProfileName, config.ProfileExt)

	if err := s.paths.EnsureProfileDir(); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	dst, err := os.OpenFile(s.paths.ProfileFile(MigratedProfileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("profile %q already exists: %w", MigratedProfileName, fs.ErrExist)
		}
		return fmt.Errorf("failed to create migrated profile: %w", err)
	}
	if _, err := dst.Write(data); err != nil {
		dst.Close()
		return fmt.Errorf("failed to write migrated profile: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to write migrated profile: %w", err)
	}

	return s.Switch(MigratedProfileName)
}
