package cart

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
	"github.com/angelmondragon/vendo-storefront/pkg/metrics"
)

const (
	OpAdd      = "add"
	OpUpdate   = "update_quantity"
	OpRemove   = "remove"
	OpClear    = "clear"
	OpConfirm  = "confirm_customization"
	OpCheckout = "checkout"

	lockStripes = 64
)

// CatalogReader resolves menu items by id.
type CatalogReader interface {
	Item(id string) (catalog.MenuItem, bool)
}

// AddOnChoice is a requested add-on id and quantity.
type AddOnChoice struct {
	ID       string
	Quantity int
}

// AddInput describes an add-to-cart request.
type AddInput struct {
	ItemID      string
	Quantity    int
	VariationID string
	AddOns      []AddOnChoice
}

// Service exposes session-scoped cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Store, error)
	Add(ctx context.Context, sessionID string, input AddInput) (*Store, Line, error)
	UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*Store, error)
	Remove(ctx context.Context, sessionID, lineID string) (*Store, error)
	Clear(ctx context.Context, sessionID string) (*Store, error)
	Total(ctx context.Context, sessionID string) (decimal.Decimal, error)
	Checkout(ctx context.Context, sessionID string) (*Store, error)
	// Mutate runs fn against the session cart under the session lock and saves the result.
	Mutate(ctx context.Context, sessionID, op string, fn func(*Store) error) (*Store, error)
}

type ServiceParams struct {
	Sessions Sessions
	Catalog  CatalogReader
	Logger   *logger.Logger
	Metrics  *metrics.CartMetrics
}

type service struct {
	sessions Sessions
	catalog  CatalogReader
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
	locks    [lockStripes]sync.Mutex
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, fmt.Errorf("cart sessions required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		sessions: params.Sessions,
		catalog:  params.Catalog,
		logg:     logg,
		metrics:  params.Metrics,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Store, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.load(ctx, sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, input AddInput) (*Store, Line, error) {
	item, variation, addOns, err := s.resolve(input)
	if err != nil {
		s.metrics.IncMutation(OpAdd, metrics.ResultRejected)
		return nil, Line{}, err
	}

	var added Line
	cart, err := s.Mutate(ctx, sessionID, OpAdd, func(cart *Store) error {
		added = cart.AddToCart(item, input.Quantity, variation, addOns)
		return nil
	})
	if err != nil {
		return nil, Line{}, err
	}
	return cart, added, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*Store, error) {
	return s.Mutate(ctx, sessionID, OpUpdate, func(cart *Store) error {
		cart.UpdateQuantity(lineID, quantity)
		return nil
	})
}

func (s *service) Remove(ctx context.Context, sessionID, lineID string) (*Store, error) {
	return s.Mutate(ctx, sessionID, OpRemove, func(cart *Store) error {
		cart.RemoveFromCart(lineID)
		return nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (*Store, error) {
	return s.Mutate(ctx, sessionID, OpClear, func(cart *Store) error {
		cart.ClearCart()
		return nil
	})
}

func (s *service) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.TotalPrice(), nil
}

// Checkout hands the cart over for order placement. The cart is left intact.
func (s *service) Checkout(ctx context.Context, sessionID string) (*Store, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Len() == 0 {
		s.metrics.IncMutation(OpCheckout, metrics.ResultRejected)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	total, _ := cart.TotalPrice().Float64()
	s.metrics.ObserveCheckout(total, cart.Len())
	s.metrics.IncMutation(OpCheckout, metrics.ResultOK)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"lines": cart.Len(),
		"total": cart.TotalPrice().StringFixed(2),
	})
	s.logg.Info(logCtx, "cart handed off to checkout")
	return cart, nil
}

func (s *service) Mutate(ctx context.Context, sessionID, op string, fn func(*Store) error) (*Store, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		s.metrics.IncMutation(op, metrics.ResultError)
		return nil, err
	}
	if err := fn(cart); err != nil {
		s.metrics.IncMutation(op, metrics.ResultRejected)
		return nil, err
	}
	if err := s.sessions.Save(ctx, sessionID, cart); err != nil {
		s.metrics.IncMutation(op, metrics.ResultError)
		s.logg.Error(ctx, "failed to save cart session", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	s.metrics.IncMutation(op, metrics.ResultOK)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"op":         op,
		"lines":      cart.Len(),
		"item_count": cart.ItemCount(),
	})
	s.logg.Debug(logCtx, "cart updated")
	return cart, nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Store, error) {
	cart, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		s.logg.Error(ctx, "failed to load cart session", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) resolve(input AddInput) (catalog.MenuItem, *catalog.Variation, []catalog.SelectedAddOn, error) {
	itemID := strings.TrimSpace(input.ItemID)
	if itemID == "" {
		return catalog.MenuItem{}, nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "itemId is required")
	}
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return catalog.MenuItem{}, nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	variation, addOns, err := ResolveSelection(item, input.VariationID, input.AddOns)
	if err != nil {
		return catalog.MenuItem{}, nil, nil, err
	}
	return item, variation, addOns, nil
}

// ResolveSelection checks availability and maps requested option ids onto the
// item's catalog options.
func ResolveSelection(item catalog.MenuItem, variationID string, choices []AddOnChoice) (*catalog.Variation, []catalog.SelectedAddOn, error) {
	if !item.Available {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item is unavailable").
			WithDetails(map[string]any{"itemId": item.ID})
	}

	var variation *catalog.Variation
	if variationID != "" {
		v, ok := item.Variation(variationID)
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown variation").
				WithDetails(map[string]any{"variationId": variationID})
		}
		variation = &v
	}

	addOns := make([]catalog.SelectedAddOn, 0, len(choices))
	for _, choice := range choices {
		a, ok := item.AddOn(choice.ID)
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown add-on").
				WithDetails(map[string]any{"addOnId": choice.ID})
		}
		addOns = append(addOns, catalog.SelectedAddOn{AddOn: a, Quantity: choice.Quantity})
	}
	return variation, addOns, nil
}

func (s *service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
