// Package session keeps short-lived per-visitor state, either in process memory
// or in Redis, behind one small generic interface.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("session value not found")

// Store persists values of type T by key with an idle TTL.
type Store[T any] interface {
	Load(ctx context.Context, key string) (T, error)
	Save(ctx context.Context, key string, value T) error
	Delete(ctx context.Context, key string) error
}

// Sweeper drops expired entries; only process-local stores need it.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}
