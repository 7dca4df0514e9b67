package store

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned by Put when an item with the same key already exists.
var ErrDuplicateKey = errors.New("item with this key already exists")

// Collection is a flat keyed collection supporting put-by-key, lookup and full scan.
type Collection[T any] interface {
	// Put writes item under key. It never overwrites an existing item.
	Put(ctx context.Context, key string, item T) error

	// Get retrieves the item stored under key.
	Get(ctx context.Context, key string) (T, bool, error)

	// Scan reads the entire collection.
	Scan(ctx context.Context) ([]T, error)
}
