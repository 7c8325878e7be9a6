package cart

import (
	"context"
	"sync"
)

// Storage layout, per client scope:
//
//	cart_items: JSON-encoded array of LineItem; absent key means empty cart
//	cart_token: the last bound session token, plain string
const (
	itemsKey = "cart_items"
	tokenKey = "cart_token"
)

// Storage is the durable key-value medium a cart engine writes through to.
// Get reports presence explicitly so a missing key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage is a process-local Storage, used by tests and local dev
// without Redis.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
