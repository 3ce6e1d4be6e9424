// Package notify provides desktop notification support for cargo-config.
package notify

import (
	"fmt"

	"github.com/cargoctl/cargo-config/internal/config"
)

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// NotifySwitch sends a notification about a successful profile switch.
	NotifySwitch(profile string) error
}

// Option configures a Notifier.
type Option func(*notifier)

// WithBackend sets a custom notification backend (for testing).
func WithBackend(backend Backend) Option {
	return func(n *notifier) {
		n.backend = backend
	}
}

// notifier sends desktop notifications using the system notification service.
type notifier struct {
	onSwitch bool
	backend  Backend
}

// NotifySwitch sends a notification about a successful profile switch.
func (n *notifier) NotifySwitch(profile string) error {
	if !n.onSwitch {
		return nil
	}

	title := "cargo-config: Profile Switched"
	message := fmt.Sprintf("Cargo is now using the '%s' configuration profile.", profile)

	return n.backend.Notify(title, message, "")
}

// New creates a new Notifier based on the settings.
func New(cfg config.NotificationSettings, opts ...Option) Notifier {
	n := &notifier{
		onSwitch: cfg.Enabled && cfg.OnSwitch,
		backend:  newDesktopBackend(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}
