package tokenstore

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	gokeyring "github.com/zalando/go-keyring"
)

// KeyringStore implements TokenStore using the OS keyring.
type KeyringStore struct {
	mu sync.Mutex
}

// NewKeyringStore creates a new KeyringStore instance.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (k *KeyringStore) IsAvailable() error {
	_, err := gokeyring.Get(ServicePrefix+"_availability_check", "test")
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return nil
		}

		errStr := err.Error()

		if runtime.GOOS == "linux" {
			if containsAny(errStr, "secret service", "dbus", "org.freedesktop.secrets") {
				return fmt.Errorf("%w: D-Bus secret service not available", ErrStoreUnavailable)
			}
		}

		if runtime.GOOS == "darwin" {
			if containsAny(errStr, "keychain", "security") {
				return fmt.Errorf("%w: macOS Keychain not accessible", ErrStoreUnavailable)
			}
		}

		if runtime.GOOS == "windows" {
			if containsAny(errStr, "credential", "wincred") {
				return fmt.Errorf("%w: Windows Credential Manager not accessible", ErrStoreUnavailable)
			}
		}

		return nil
	}

	return nil
}

func (k *KeyringStore) Get(registry string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.IsAvailable(); err != nil {
		return "", err
	}

	key := KeyFromRegistry(registry)
	if key == "" {
		return "", ErrRegistryEmpty
	}

	token, err := gokeyring.Get(key, "")
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", wrapKeyringStoreError(err, ErrTokenRetrieve)
	}

	return token, nil
}

func (k *KeyringStore) Set(registry, token string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.IsAvailable(); err != nil {
		return err
	}

	key := KeyFromRegistry(registry)
	if key == "" {
		return ErrRegistryEmpty
	}

	if token == "" {
		return ErrTokenEmpty
	}

	if err := gokeyring.Set(key, "", token); err != nil {
		return wrapKeyringStoreError(err, ErrTokenStore)
	}

	return nil
}

func (k *KeyringStore) Delete(registry string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.IsAvailable(); err != nil {
		return err
	}

	key := KeyFromRegistry(registry)
	if key == "" {
		return ErrRegistryEmpty
	}

	err := gokeyring.Delete(key, "")
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return nil
		}
		return wrapKeyringStoreError(err, ErrTokenDelete)
	}

	return nil
}

func wrapKeyringStoreError(err error, errType error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if containsAny(errStr, "denied", "permission", "not allowed", "unauthorized") {
		return fmt.Errorf("%w: %s: %v", ErrStoreAccessDenied, errType, err)
	}

	if containsAny(errStr, "not found", "no keyring", "unavailable", "secret service") {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, errType, err)
	}

	return fmt.Errorf("%s: %w", errType, err)
}
