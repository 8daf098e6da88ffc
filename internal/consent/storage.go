package consent

import (
	"errors"
	"sync"
)

// ErrStorageDisabled is returned by storage that refuses all access,
// e.g. a browser in private mode.
var ErrStorageDisabled = errors.New("consent storage disabled")

// Storage is a small key/value store for the consent record.
// Get returns "" with a nil error when the key is absent.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStorage keeps values in memory. It is safe for concurrent use.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates a storage pre-filled with seed.
func NewMemoryStorage(seed map[string]string) *MemoryStorage {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStorage{values: values}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// DisabledStorage fails every operation.
type DisabledStorage struct{}

func (DisabledStorage) Get(string) (string, error) { return "", ErrStorageDisabled }
func (DisabledStorage) Set(string, string) error   { return ErrStorageDisabled }
func (DisabledStorage) Remove(string) error        { return ErrStorageDisabled }
