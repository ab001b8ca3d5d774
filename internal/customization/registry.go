package customization

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
	pkgredis "github.com/angelmondragon/vendo-storefront/pkg/redis"
)

const (
	keySeparator = "|"
	lockStripes  = 32
)

// Registry keeps one customization per (session, item) so the flow can span requests.
type Registry interface {
	Open(ctx context.Context, sessionID, itemID string) (*State, error)
	Get(ctx context.Context, sessionID, itemID string) (*State, error)
	SelectVariation(ctx context.Context, sessionID, itemID, variationID string) (*State, error)
	SetAddOn(ctx context.Context, sessionID, itemID, addOnID string, quantity int) (*State, error)
	Confirm(ctx context.Context, sessionID, itemID string) (*cart.Store, cart.Line, error)
	Cancel(ctx context.Context, sessionID, itemID string) error
}

type RegistryParams struct {
	Store   session.Store[Snapshot]
	Catalog cart.CatalogReader
	Cart    cart.Service
	Logger  *logger.Logger
}

type registry struct {
	store   session.Store[Snapshot]
	catalog cart.CatalogReader
	cart    cart.Service
	logg    *logger.Logger
	locks   [lockStripes]sync.Mutex
}

func NewRegistry(params RegistryParams) (Registry, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("customization store required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart service required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &registry{
		store:   params.Store,
		catalog: params.Catalog,
		cart:    params.Cart,
		logg:    logg,
	}, nil
}

// NewMemoryStore keeps customizations in process memory.
func NewMemoryStore(ttl time.Duration) *session.Memory[Snapshot] {
	return session.NewMemory[Snapshot](ttl)
}

// NewRedisStore keeps customizations under vendo:customization:<session>:<item>.
func NewRedisStore(client *pkgredis.Client, ttl time.Duration) (*session.Redis[Snapshot], error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return session.NewRedis[Snapshot](client, func(key string) string {
		sessionID, itemID, _ := strings.Cut(key, keySeparator)
		return client.CustomizationKey(sessionID, itemID)
	}, ttl)
}

func (r *registry) Open(ctx context.Context, sessionID, itemID string) (*State, error) {
	unlock, err := r.lock(sessionID, itemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err := r.load(ctx, sessionID, itemID)
	if err != nil {
		return nil, err
	}
	if err := state.Open(); err != nil {
		return nil, err
	}
	if err := r.save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	logCtx := r.logg.WithFields(ctx, map[string]any{"item_id": itemID, "phase": state.Phase()})
	r.logg.Debug(logCtx, "customization opened")
	return state, nil
}

func (r *registry) Get(ctx context.Context, sessionID, itemID string) (*State, error) {
	unlock, err := r.lock(sessionID, itemID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return r.loadOpen(ctx, sessionID, itemID)
}

func (r *registry) SelectVariation(ctx context.Context, sessionID, itemID, variationID string) (*State, error) {
	return r.update(ctx, sessionID, itemID, func(s *State) error {
		return s.SelectVariation(variationID)
	})
}

func (r *registry) SetAddOn(ctx context.Context, sessionID, itemID, addOnID string, quantity int) (*State, error) {
	return r.update(ctx, sessionID, itemID, func(s *State) error {
		return s.SelectAddOn(addOnID, quantity)
	})
}

// Confirm commits the selection to the session cart and drops the customization.
func (r *registry) Confirm(ctx context.Context, sessionID, itemID string) (*cart.Store, cart.Line, error) {
	unlock, err := r.lock(sessionID, itemID)
	if err != nil {
		return nil, cart.Line{}, err
	}
	defer unlock()

	state, err := r.loadOpen(ctx, sessionID, itemID)
	if err != nil {
		return nil, cart.Line{}, err
	}
	if !state.Item().Available {
		_ = r.delete(ctx, sessionID, itemID)
		return nil, cart.Line{}, pkgerrors.New(pkgerrors.CodeValidation, "menu item is unavailable").
			WithDetails(map[string]any{"itemId": itemID})
	}

	var line cart.Line
	store, err := r.cart.Mutate(ctx, sessionID, cart.OpConfirm, func(c *cart.Store) error {
		var confirmErr error
		line, confirmErr = state.Confirm(c)
		return confirmErr
	})
	if err != nil {
		return nil, cart.Line{}, err
	}
	if err := r.delete(ctx, sessionID, itemID); err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "failed to drop confirmed customization")
	}

	logCtx := r.logg.WithLineID(ctx, line.ID)
	logCtx = r.logg.WithFields(logCtx, map[string]any{"item_id": itemID, "quantity": line.Quantity})
	r.logg.Info(logCtx, "customization confirmed")
	return store, line, nil
}

func (r *registry) Cancel(ctx context.Context, sessionID, itemID string) error {
	unlock, err := r.lock(sessionID, itemID)
	if err != nil {
		return err
	}
	defer unlock()

	state, err := r.loadOpen(ctx, sessionID, itemID)
	if err != nil {
		return err
	}
	if err := state.Cancel(); err != nil {
		return err
	}
	return r.delete(ctx, sessionID, itemID)
}

func (r *registry) update(ctx context.Context, sessionID, itemID string, fn func(*State) error) (*State, error) {
	unlock, err := r.lock(sessionID, itemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err := r.loadOpen(ctx, sessionID, itemID)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	if err := r.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// load returns the stored state, or a fresh idle one when nothing is stored.
func (r *registry) load(ctx context.Context, sessionID, itemID string) (*State, error) {
	item, ok := r.catalog.Item(itemID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	snap, err := r.store.Load(ctx, storeKey(sessionID, itemID))
	if errors.Is(err, session.ErrNotFound) {
		return New(item), nil
	}
	if err != nil {
		r.logg.Error(ctx, "failed to load customization", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customization")
	}
	return Restore(item, snap), nil
}

func (r *registry) loadOpen(ctx context.Context, sessionID, itemID string) (*State, error) {
	state, err := r.load(ctx, sessionID, itemID)
	if err != nil {
		return nil, err
	}
	if !state.Phase().Open() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no customization in progress").
			WithDetails(map[string]any{"itemId": itemID})
	}
	return state, nil
}

func (r *registry) save(ctx context.Context, sessionID string, state *State) error {
	if err := r.store.Save(ctx, storeKey(sessionID, state.Item().ID), state.Snapshot()); err != nil {
		r.logg.Error(ctx, "failed to save customization", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save customization")
	}
	return nil
}

func (r *registry) delete(ctx context.Context, sessionID, itemID string) error {
	if err := r.store.Delete(ctx, storeKey(sessionID, itemID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customization")
	}
	return nil
}

func (r *registry) lock(sessionID, itemID string) (func(), error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(storeKey(sessionID, itemID)))
	mu := &r.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock, nil
}

func storeKey(sessionID, itemID string) string {
	return sessionID + keySeparator + itemID
}
