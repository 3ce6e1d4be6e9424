package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/cargoctl/cargo-config/internal/config"
)

// Activator puts a profile file into cargo's config.toml location.
// The destination is known not to exist when Activate is called.
type Activator interface {
	// Activate makes activePath refer to the content of profilePath.
	Activate(profilePath, activePath string) error
}

// NewActivator returns the Activator for the given mode.
// Unknown modes fall back to hard linking, the default.
func NewActivator(mode config.ActivationMode) Activator {
	if mode == config.ActivationCopy {
		return copyActivator{}
	}
	return hardlinkActivator{}
}

// hardlinkActivator links config.toml to the profile file, so edits to the
// active profile are visible to cargo without another switch.
type hardlinkActivator struct{}

func (hardlinkActivator) Activate(profilePath, activePath string) error {
	return os.Link(profilePath, activePath)
}

// copyActivator duplicates the profile bytes instead, for filesystems
// without hard-link support. Edits to the profile require re-switching.
type copyActivator struct{}

func (copyActivator) Activate(profilePath, activePath string) error {
	src, err := os.Open(profilePath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(activePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy profile: %w", err)
	}
	return dst.Close()
}
