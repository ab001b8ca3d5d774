package cron

import (
	"context"
	"sync"
)

// Lock keeps cron cycles from overlapping.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LocalLock serializes cycles within one process. Every storefront job acts on
// the replica's own memory, so each replica takes its own lock.
type LocalLock struct {
	mu sync.Mutex
}

func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

func (l *LocalLock) Acquire(context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

// Release must only follow a successful Acquire.
func (l *LocalLock) Release(context.Context) error {
	l.mu.Unlock()
	return nil
}
