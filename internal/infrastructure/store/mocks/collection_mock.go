package mocks

import (
	"context"
	"sync"

	"github.com/example/can-delivery/internal/infrastructure/store"
)

// MockCollection is a mock implementation of store.Collection for testing
type MockCollection[T any] struct {
	mu    sync.RWMutex
	keys  []string
	items map[string]T

	// For tracking calls in tests
	PutCalls  []PutCall[T]
	ScanCalls int

	PutErr  error
	GetErr  error
	ScanErr error
}

// PutCall records parameters passed to Put
type PutCall[T any] struct {
	Key  string
	Item T
}

// NewMockCollection creates a new MockCollection
func NewMockCollection[T any]() *MockCollection[T] {
	return &MockCollection[T]{
		items:    make(map[string]T),
		PutCalls: make([]PutCall[T], 0),
	}
}

// Put records the call and stores the item unless PutErr is set.
// Like the real backends it never overwrites an existing key.
func (m *MockCollection[T]) Put(ctx context.Context, key string, item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutCalls = append(m.PutCalls, PutCall[T]{Key: key, Item: item})

	if m.PutErr != nil {
		return m.PutErr
	}

	if _, exists := m.items[key]; exists {
		return store.ErrDuplicateKey
	}
	m.keys = append(m.keys, key)
	m.items[key] = item
	return nil
}

// Get retrieves an item
func (m *MockCollection[T]) Get(ctx context.Context, key string) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	if m.GetErr != nil {
		return zero, false, m.GetErr
	}
	item, ok := m.items[key]
	return item, ok, nil
}

// Scan returns all stored items in insertion order
func (m *MockCollection[T]) Scan(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ScanCalls++
	if m.ScanErr != nil {
		return nil, m.ScanErr
	}

	items := make([]T, 0, len(m.keys))
	for _, key := range m.keys {
		items = append(items, m.items[key])
	}
	return items, nil
}

// SetData stores an item directly without recording a call
func (m *MockCollection[T]) SetData(key string, item T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.items[key] = item
}

// Len returns the number of stored items
func (m *MockCollection[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
