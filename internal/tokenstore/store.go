// Package tokenstore provides secure storage backends for cargo registry
// tokens, keeping them out of plaintext profile files.
package tokenstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrRegistryEmpty is returned when a registry name is empty.
	ErrRegistryEmpty = errors.New("registry name cannot be empty")

	// ErrTokenEmpty is returned when a token is empty.
	ErrTokenEmpty = errors.New("token cannot be empty")
	// ErrTokenNotFound is returned when a token is not found in the store.
	ErrTokenNotFound = errors.New("token not found in store")

	// ErrTokenStore is returned when a token cannot be stored.
	ErrTokenStore = errors.New("failed to store token")
	// ErrTokenRetrieve is returned when a token cannot be retrieved.
	ErrTokenRetrieve = errors.New("failed to retrieve token")
	// ErrTokenDelete is returned when a token cannot be deleted.
	ErrTokenDelete = errors.New("failed to delete token")

	// ErrStoreUnavailable is returned when no secure store is available.
	ErrStoreUnavailable = errors.New("token store is not available")
	// ErrStoreAccessDenied is returned when access to the store is denied.
	ErrStoreAccessDenied = errors.New("access to token store denied")
)

const (
	// ServicePrefix is the prefix used for keyring service names.
	ServicePrefix = "cargo-config"

	// TestStoreEnvVar is the environment variable that, when set to a
	// directory path, selects a file-based store instead of the OS keyring.
	// Intended for testing only.
	TestStoreEnvVar = "CARGO_CONFIG_TEST_KEYRING_DIR"
)

// TokenStore represents a secure registry token storage backend.
type TokenStore interface {
	// IsAvailable checks if the store is available.
	IsAvailable() error
	// Get retrieves the token for the given registry.
	Get(registry string) (string, error)
	// Set stores the token for the given registry.
	Set(registry, token string) error
	// Delete removes the token for the given registry.
	Delete(registry string) error
}

// NewTokenStore returns the default token store for the current platform.
// If CARGO_CONFIG_TEST_KEYRING_DIR is set, a file-based store is used instead.
func NewTokenStore() TokenStore {
	if testDir := os.Getenv(TestStoreEnvVar); testDir != "" {
		fileStore, err := NewFileStore(testDir)
		if err != nil {
			panic(fmt.Sprintf("failed to create file store for testing: %v", err))
		}
		return fileStore
	}
	return NewKeyringStore()
}

// KeyFromRegistry derives the keyring service key for a registry name.
func KeyFromRegistry(registry string) string {
	if registry == "" {
		return ""
	}

	h := sha256.New()
	h.Write([]byte(registry))
	hash := h.Sum(nil)

	return ServicePrefix + "_" + hex.EncodeToString(hash)
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrings ...string) bool {
	sLower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(sLower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
