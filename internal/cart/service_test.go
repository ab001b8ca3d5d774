package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/metrics"
)

type stubCatalog map[string]catalog.MenuItem

func (s stubCatalog) Item(id string) (catalog.MenuItem, bool) {
	item, ok := s[id]
	return item, ok
}

type failingSessions struct {
	loadErr error
	saveErr error
}

func (f failingSessions) Load(context.Context, string) (*Store, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return NewStore(), nil
}

func (f failingSessions) Save(context.Context, string, *Store) error { return f.saveErr }
func (f failingSessions) Delete(context.Context, string) error        { return nil }

func newTestService(t *testing.T) Service {
	t.Helper()
	sessions, _ := NewMemorySessions(time.Hour)
	svc, err := NewService(ServiceParams{
		Sessions: sessions,
		Catalog: stubCatalog{
			"latte":    latte(),
			"coin-kit": {ID: "coin-kit", Name: "Coin Kit", BasePrice: dec("1500"), Available: true},
			"slush":    {ID: "slush", Name: "Slush", BasePrice: dec("41000")},
		},
		Metrics: metrics.NewCartMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return svc
}

func TestServiceAddPersistsPerSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, line, err := svc.Add(ctx, "s1", AddInput{
		ItemID:      "latte",
		VariationID: "large",
		AddOns:      []AddOnChoice{{ID: "shot", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, line.TotalPrice.Equal(dec("150")))
	assert.Equal(t, 1, line.Quantity)

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())

	other, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Len(), "sessions must not share carts")
}

func TestServiceAddRejections(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tests := []struct {
		name  string
		input AddInput
		code  pkgerrors.Code
	}{
		{name: "missing item id", input: AddInput{}, code: pkgerrors.CodeValidation},
		{name: "unknown item", input: AddInput{ItemID: "nope"}, code: pkgerrors.CodeNotFound},
		{name: "unavailable", input: AddInput{ItemID: "slush"}, code: pkgerrors.CodeValidation},
		{name: "unknown variation", input: AddInput{ItemID: "latte", VariationID: "giant"}, code: pkgerrors.CodeValidation},
		{name: "unknown add-on", input: AddInput{ItemID: "latte", AddOns: []AddOnChoice{{ID: "cream", Quantity: 1}}}, code: pkgerrors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Add(ctx, "s1", tt.input)
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, tt.code), "got %v", err)
		})
	}

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len(), "rejected adds must not touch the cart")
}

func TestServiceQuantityRemoveClearAndTotal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, _, err := svc.Add(ctx, "s1", AddInput{ItemID: "coin-kit", Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "s1", "coin-kit", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.QuantityFor("coin-kit"))

	total, err := svc.Total(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("6000")))

	cart, err = svc.Remove(ctx, "s1", "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())

	cart, err = svc.UpdateQuantity(ctx, "s1", "coin-kit", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())

	_, _, err = svc.Add(ctx, "s1", AddInput{ItemID: "coin-kit"})
	require.NoError(t, err)
	cart, err = svc.Clear(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())

	total, err = svc.Total(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestServiceCheckout(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Checkout(ctx, "s1")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, _, err = svc.Add(ctx, "s1", AddInput{ItemID: "coin-kit"})
	require.NoError(t, err)
	cart, err := svc.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())

	again, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len(), "checkout handoff leaves the cart intact")
}

func TestServiceRequiresSessionID(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), " ")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestServiceMutateErrorLeavesCartUnsaved(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Mutate(ctx, "s1", "test", func(cart *Store) error {
		cart.AddToCart(catalog.MenuItem{ID: "x", BasePrice: dec("1")}, 1, nil, nil)
		return errors.New("abort")
	})
	require.Error(t, err)

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Len())
}

func TestServiceMapsSessionFailuresToDependencyErrors(t *testing.T) {
	ctx := context.Background()

	svc, err := NewService(ServiceParams{Sessions: failingSessions{loadErr: errors.New("redis down")}, Catalog: stubCatalog{}})
	require.NoError(t, err)
	_, err = svc.Get(ctx, "s1")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))

	svc, err = NewService(ServiceParams{Sessions: failingSessions{saveErr: errors.New("redis down")}, Catalog: stubCatalog{"coin-kit": {ID: "coin-kit", Available: true}}})
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, "s1", AddInput{ItemID: "coin-kit"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{Catalog: stubCatalog{}})
	assert.Error(t, err)
	sessions, _ := NewMemorySessions(time.Minute)
	_, err = NewService(ServiceParams{Sessions: sessions})
	assert.Error(t, err)
}
