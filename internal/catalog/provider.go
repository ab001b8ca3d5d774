package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

const refreshKey = "catalog"

// Loader produces a fresh catalog snapshot.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Provider serves the last loaded snapshot to readers and refreshes it on demand.
// Concurrent refreshes collapse into a single load.
type Provider struct {
	loader  Loader
	logg    *logger.Logger
	current atomic.Pointer[Snapshot]
	group   singleflight.Group
}

func NewProvider(loader Loader, logg *logger.Logger) (*Provider, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	p := &Provider{loader: loader, logg: logg}
	p.current.Store(NewSnapshot(nil, nil, SiteSettings{}, time.Time{}))
	return p, nil
}

// Snapshot returns the current snapshot; it is empty until the first successful Refresh.
func (p *Provider) Snapshot() *Snapshot {
	return p.current.Load()
}

// Item resolves a menu item from the current snapshot.
func (p *Provider) Item(id string) (MenuItem, bool) {
	return p.Snapshot().Item(id)
}

// Refresh reloads the catalog. A failed load keeps the previous snapshot in place.
func (p *Provider) Refresh(ctx context.Context) (*Snapshot, error) {
	result, err, shared := p.group.Do(refreshKey, func() (any, error) {
		snap, err := p.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		p.current.Store(snap)
		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}
	snap := result.(*Snapshot)
	logCtx := p.logg.WithFields(ctx, map[string]any{
		"categories": len(snap.categories),
		"items":      len(snap.items),
		"shared":     shared,
	})
	p.logg.Debug(logCtx, "catalog refreshed")
	return snap, nil
}
