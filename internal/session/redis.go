package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/angelmondragon/vendo-storefront/pkg/redis"
)

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Redis stores JSON snapshots; the TTL is refreshed on every save.
type Redis[T any] struct {
	client redisClient
	keyFn  func(string) string
	ttl    time.Duration
}

// NewRedis builds a Redis-backed store. keyFn maps a session key to the namespaced redis key.
func NewRedis[T any](client redisClient, keyFn func(string) string, ttl time.Duration) (*Redis[T], error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if keyFn == nil {
		keyFn = func(key string) string { return key }
	}
	return &Redis[T]{client: client, keyFn: keyFn, ttl: ttl}, nil
}

func (r *Redis[T]) Load(ctx context.Context, key string) (T, error) {
	var value T
	raw, err := r.client.Get(ctx, r.keyFn(key))
	if errors.Is(err, pkgredis.ErrNil) {
		return value, ErrNotFound
	}
	if err != nil {
		return value, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, fmt.Errorf("decode session value: %w", err)
	}
	return value, nil
}

func (r *Redis[T]) Save(ctx context.Context, key string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session value: %w", err)
	}
	if err := r.client.Set(ctx, r.keyFn(key), string(payload), r.ttl); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis[T]) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.keyFn(key)); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
