package customization

import (
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
)

// Snapshot is the persisted form of an open customization. Options are stored by
// id and re-resolved against the live catalog on restore.
type Snapshot struct {
	ItemID      string             `json:"itemId"`
	Phase       Phase              `json:"phase"`
	VariationID string             `json:"variationId,omitempty"`
	AddOns      []cart.AddOnChoice `json:"addOns,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{ItemID: s.item.ID, Phase: s.phase}
	if s.variation != nil {
		snap.VariationID = s.variation.ID
	}
	for _, a := range s.addOns {
		snap.AddOns = append(snap.AddOns, cart.AddOnChoice{ID: a.ID, Quantity: a.Quantity})
	}
	return snap
}

// Restore rebuilds a state for item. Options that no longer exist in the catalog
// are dropped; a vanished variation falls back to the item's first one.
func Restore(item catalog.MenuItem, snap Snapshot) *State {
	s := &State{item: item, phase: snap.Phase}
	if s.phase == "" {
		s.phase = PhaseIdle
	}
	if s.phase != PhaseCustomizing {
		return s
	}

	if v, ok := item.Variation(snap.VariationID); ok {
		s.variation = &v
	} else if len(item.Variations) > 0 {
		first := item.Variations[0]
		s.variation = &first
	}
	for _, choice := range snap.AddOns {
		if choice.Quantity <= 0 {
			continue
		}
		if a, ok := item.AddOn(choice.ID); ok {
			s.addOns = append(s.addOns, catalog.SelectedAddOn{AddOn: a, Quantity: choice.Quantity})
		}
	}
	return s
}
