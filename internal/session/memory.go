package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value   T
	expires time.Time
}

// Memory is a mutex-guarded map whose entries expire ttl after their last save.
type Memory[T any] struct {
	mu      sync.Mutex
	entries map[string]memoryEntry[T]
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory[T]) Load(_ context.Context, key string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	entry, ok := m.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	if m.expired(entry) {
		delete(m.entries, key)
		return zero, ErrNotFound
	}
	return entry.value, nil
}

func (m *Memory[T]) Save(_ context.Context, key string, value T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry[T]{value: value}
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Sweep removes every expired entry and reports how many were dropped.
func (m *Memory[T]) Sweep(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory[T]) expired(entry memoryEntry[T]) bool {
	return !entry.expires.IsZero() && !m.now().Before(entry.expires)
}
