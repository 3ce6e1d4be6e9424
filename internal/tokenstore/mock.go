package tokenstore

import "sync"

// MockStore is an in-memory token store implementation for testing.
type MockStore struct {
	mu      sync.RWMutex
	data    map[string]string
	failing bool
}

// NewMockStore creates a new mock token store.
func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]string),
	}
}

// SetFailing makes all operations fail.
func (m *MockStore) SetFailing(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = failing
}

// IsAvailable implements TokenStore.
func (m *MockStore) IsAvailable() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failing {
		return ErrStoreUnavailable
	}
	return nil
}

// Set implements TokenStore.
func (m *MockStore) Set(registry, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return ErrStoreUnavailable
	}

	if registry == "" {
		return ErrRegistryEmpty
	}
	if token == "" {
		return ErrTokenEmpty
	}

	m.data[registry] = token
	return nil
}

// Get implements TokenStore.
func (m *MockStore) Get(registry string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failing {
		return "", ErrStoreUnavailable
	}

	if registry == "" {
		return "", ErrRegistryEmpty
	}

	token, ok := m.data[registry]
	if !ok {
		return "", ErrTokenNotFound
	}

	return token, nil
}

// Delete implements TokenStore.
func (m *MockStore) Delete(registry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return ErrStoreUnavailable
	}

	if registry == "" {
		return ErrRegistryEmpty
	}

	delete(m.data, registry)
	return nil
}

// Count returns the number of stored tokens.
func (m *MockStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
