// Package kvstore holds opaque values under string keys.
// Profiles are persisted through it, so the backend can be swapped by config.
package kvstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("key not found")
	ErrKeyExists = errors.New("key already exists")
	ErrEmptyKey  = errors.New("empty key")
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Create stores the value only if the key is not taken yet.
	Create(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
