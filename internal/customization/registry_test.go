package customization

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	pkgredis "github.com/angelmondragon/vendo-storefront/pkg/redis"
)

type stubCatalog map[string]catalog.MenuItem

func (s stubCatalog) Item(id string) (catalog.MenuItem, bool) {
	item, ok := s[id]
	return item, ok
}

func newTestRegistry(t *testing.T, store session.Store[Snapshot]) (Registry, cart.Service, stubCatalog) {
	t.Helper()
	items := stubCatalog{"starter": starter(), "coin-kit": plain()}
	sessions, _ := cart.NewMemorySessions(time.Hour)
	cartSvc, err := cart.NewService(cart.ServiceParams{Sessions: sessions, Catalog: items})
	require.NoError(t, err)

	reg, err := NewRegistry(RegistryParams{Store: store, Catalog: items, Cart: cartSvc})
	require.NoError(t, err)
	return reg, cartSvc, items
}

func TestRegistryFlowAcrossCalls(t *testing.T) {
	ctx := context.Background()
	reg, cartSvc, _ := newTestRegistry(t, NewMemoryStore(time.Hour))

	state, err := reg.Open(ctx, "s1", "starter")
	require.NoError(t, err)
	assert.Equal(t, PhaseCustomizing, state.Phase())

	_, err = reg.SelectVariation(ctx, "s1", "starter", "four")
	require.NoError(t, err)
	state, err = reg.SetAddOn(ctx, "s1", "starter", "choco", 2)
	require.NoError(t, err)
	assert.True(t, state.Price().Equal(dec("140")))

	got, err := reg.Get(ctx, "s1", "starter")
	require.NoError(t, err)
	assert.Equal(t, "four", got.SelectedVariation().ID)

	store, line, err := reg.Confirm(ctx, "s1", "starter")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "starter~four~choco*2", line.ID)

	_, err = reg.Get(ctx, "s1", "starter")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	persisted, err := cartSvc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, persisted.ItemCount())
}

func TestRegistryIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := newTestRegistry(t, NewMemoryStore(time.Hour))

	_, err := reg.Open(ctx, "s1", "starter")
	require.NoError(t, err)

	_, err = reg.Get(ctx, "s2", "starter")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	_, err = reg.Open(ctx, "s2", "starter")
	require.NoError(t, err)
}

func TestRegistryCancelDropsState(t *testing.T) {
	ctx := context.Background()
	reg, cartSvc, _ := newTestRegistry(t, NewMemoryStore(time.Hour))

	_, err := reg.Open(ctx, "s1", "coin-kit")
	require.NoError(t, err)
	require.NoError(t, reg.Cancel(ctx, "s1", "coin-kit"))

	total, err := cartSvc.Total(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	err = reg.Cancel(ctx, "s1", "coin-kit")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	// closed flows can be reopened
	_, err = reg.Open(ctx, "s1", "coin-kit")
	require.NoError(t, err)
}

func TestRegistryErrors(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := newTestRegistry(t, NewMemoryStore(time.Hour))

	_, err := reg.Open(ctx, "s1", "missing")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = reg.Open(ctx, "", "starter")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = reg.Open(ctx, "s1", "starter")
	require.NoError(t, err)
	_, err = reg.Open(ctx, "s1", "starter")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	_, err = reg.SetAddOn(ctx, "s1", "starter", "ketchup", 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestRegistryConfirmRejectsItemThatBecameUnavailable(t *testing.T) {
	ctx := context.Background()
	reg, _, items := newTestRegistry(t, NewMemoryStore(time.Hour))

	_, err := reg.Open(ctx, "s1", "starter")
	require.NoError(t, err)

	item := items["starter"]
	item.Available = false
	items["starter"] = item

	_, _, err = reg.Confirm(ctx, "s1", "starter")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = reg.Get(ctx, "s1", "starter")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRegistryRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	raw := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })
	client := pkgredis.FromClient(raw)

	store, err := NewRedisStore(client, time.Hour)
	require.NoError(t, err)
	reg, _, _ := newTestRegistry(t, store)

	ctx := context.Background()
	_, err = reg.Open(ctx, "s1", "starter")
	require.NoError(t, err)
	_, err = reg.SetAddOn(ctx, "s1", "starter", "cups", 3)
	require.NoError(t, err)

	key := client.CustomizationKey("s1", "starter")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	state, err := reg.Get(ctx, "s1", "starter")
	require.NoError(t, err)
	assert.Equal(t, 3, state.AddOnQuantity("cups"))

	require.NoError(t, reg.Cancel(ctx, "s1", "starter"))
	assert.False(t, mr.Exists(key))
}
