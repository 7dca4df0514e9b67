package store

import (
	"context"
	"sync"
)

// MemoryCollection is an in-memory Collection. Scan returns items in insertion order.
type MemoryCollection[T any] struct {
	mu    sync.RWMutex
	keys  []string
	items map[string]T
}

func NewMemoryCollection[T any]() *MemoryCollection[T] {
	return &MemoryCollection[T]{
		items: make(map[string]T),
	}
}

// Put stores an item
func (c *MemoryCollection[T]) Put(ctx context.Context, key string, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		return ErrDuplicateKey
	}
	c.items[key] = item
	c.keys = append(c.keys, key)
	return nil
}

// Get retrieves an item by key
func (c *MemoryCollection[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	return item, ok, nil
}

// Scan returns a copy of every item
func (c *MemoryCollection[T]) Scan(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, 0, len(c.keys))
	for _, key := range c.keys {
		items = append(items, c.items[key])
	}
	return items, nil
}
