package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/cargoctl/cargo-config/internal/config"
)

type notifyCall struct {
	title   string
	message string
}

type mockBackend struct {
	calls []notifyCall
	err   error
}

func (m *mockBackend) Notify(title, message, iconPath string) error {
	m.calls = append(m.calls, notifyCall{title: title, message: message})
	return m.err
}

func TestNotifySwitch(t *testing.T) {
	mock := &mockBackend{}
	n := New(config.NotificationSettings{Enabled: true, OnSwitch: true}, WithBackend(mock))

	if err := n.NotifySwitch("release"); err != nil {
		t.Fatalf("NotifySwitch failed: %v", err)
	}

	if len(mock.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(mock.calls))
	}
	call := mock.calls[0]
	if call.title != "cargo-config: Profile Switched" {
		t.Errorf("unexpected title %q", call.title)
	}
	if !strings.Contains(call.message, "release") {
		t.Errorf("message %q should mention the profile", call.message)
	}
}

func TestNotifySwitchDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.NotificationSettings
	}{
		{name: "all off", cfg: config.NotificationSettings{}},
		{name: "enabled without switch events", cfg: config.NotificationSettings{Enabled: true}},
		{name: "switch events without enable", cfg: config.NotificationSettings{OnSwitch: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockBackend{}
			n := New(tt.cfg, WithBackend(mock))

			if err := n.NotifySwitch("release"); err != nil {
				t.Fatalf("NotifySwitch failed: %v", err)
			}
			if len(mock.calls) != 0 {
				t.Errorf("expected no notifications, got %d", len(mock.calls))
			}
		})
	}
}

func TestNotifySwitchBackendFailure(t *testing.T) {
	backendErr := errors.New("notification daemon unavailable")
	mock := &mockBackend{err: backendErr}
	n := New(config.NotificationSettings{Enabled: true, OnSwitch: true}, WithBackend(mock))

	if err := n.NotifySwitch("release"); !errors.Is(err, backendErr) {
		t.Errorf("expected backend error to propagate, got %v", err)
	}
}
