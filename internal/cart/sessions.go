package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/vendo-storefront/internal/session"
	pkgredis "github.com/angelmondragon/vendo-storefront/pkg/redis"
)

// Snapshot is the persisted form of a cart.
type Snapshot struct {
	Lines []Line `json:"lines"`
}

// Sessions loads and saves carts by session id. Load returns an empty cart for
// unknown or expired sessions.
type Sessions interface {
	Load(ctx context.Context, sessionID string) (*Store, error)
	Save(ctx context.Context, sessionID string, cart *Store) error
	Delete(ctx context.Context, sessionID string) error
}

type sessions struct {
	store session.Store[Snapshot]
}

func NewSessions(store session.Store[Snapshot]) Sessions {
	return &sessions{store: store}
}

// NewMemorySessions keeps carts in process memory. The returned sweeper should be
// scheduled so idle carts are released.
func NewMemorySessions(ttl time.Duration) (Sessions, session.Sweeper) {
	mem := session.NewMemory[Snapshot](ttl)
	return NewSessions(mem), mem
}

// NewRedisSessions keeps carts in Redis under vendo:cart:<session>.
func NewRedisSessions(client *pkgredis.Client, ttl time.Duration) (Sessions, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	store, err := session.NewRedis[Snapshot](client, client.CartKey, ttl)
	if err != nil {
		return nil, err
	}
	return NewSessions(store), nil
}

func (s *sessions) Load(ctx context.Context, sessionID string) (*Store, error) {
	snap, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, err
	}
	return NewStore(snap.Lines...), nil
}

// Save writes the cart; an empty cart deletes the session entry instead.
func (s *sessions) Save(ctx context.Context, sessionID string, cart *Store) error {
	if cart == nil || cart.Len() == 0 {
		return s.store.Delete(ctx, sessionID)
	}
	return s.store.Save(ctx, sessionID, Snapshot{Lines: cart.Lines()})
}

func (s *sessions) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
