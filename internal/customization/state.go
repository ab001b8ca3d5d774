// Package customization models the per-card add-to-cart flow: choosing a size
// and add-ons for configurable items, or previewing plain items, before the
// selection is committed to the cart.
package customization

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
)

type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseCustomizing   Phase = "customizing"
	PhaseDetailPreview Phase = "detail_preview"
	PhaseConfirmed     Phase = "confirmed"
	PhaseCancelled     Phase = "cancelled"
)

// Open reports whether the phase still has a modal on screen.
func (p Phase) Open() bool {
	return p == PhaseCustomizing || p == PhaseDetailPreview
}

// Adder receives confirmed selections; *cart.Store satisfies it.
type Adder interface {
	AddToCart(item catalog.MenuItem, quantity int, variation *catalog.Variation, addOns []catalog.SelectedAddOn) cart.Line
}

// State is the transient selection for one product card.
type State struct {
	item      catalog.MenuItem
	phase     Phase
	variation *catalog.Variation
	addOns    []catalog.SelectedAddOn
}

func New(item catalog.MenuItem) *State {
	return &State{item: item, phase: PhaseIdle}
}

func (s *State) Item() catalog.MenuItem { return s.item }
func (s *State) Phase() Phase           { return s.phase }

// SelectedVariation returns a copy of the chosen variation, nil when none.
func (s *State) SelectedVariation() *catalog.Variation {
	if s.variation == nil {
		return nil
	}
	v := *s.variation
	return &v
}

func (s *State) SelectedAddOns() []catalog.SelectedAddOn {
	return append([]catalog.SelectedAddOn(nil), s.addOns...)
}

// AddOnQuantity is the selected quantity of an add-on, 0 when unselected.
func (s *State) AddOnQuantity(addOnID string) int {
	for _, a := range s.addOns {
		if a.ID == addOnID {
			return a.Quantity
		}
	}
	return 0
}

// Open starts the flow. Configurable items enter Customizing with the first
// variation preselected; plain items enter DetailPreview.
func (s *State) Open() error {
	if s.phase.Open() {
		return conflict("customization already open", s.phase)
	}
	if !s.item.Available {
		return pkgerrors.New(pkgerrors.CodeValidation, "menu item is unavailable").
			WithDetails(map[string]any{"itemId": s.item.ID})
	}
	s.reset()
	if !s.item.Customizable() {
		s.phase = PhaseDetailPreview
		return nil
	}
	if len(s.item.Variations) > 0 {
		first := s.item.Variations[0]
		s.variation = &first
	}
	s.phase = PhaseCustomizing
	return nil
}

func (s *State) SelectVariation(variationID string) error {
	if s.phase != PhaseCustomizing {
		return conflict("variation can only be chosen while customizing", s.phase)
	}
	v, ok := s.item.Variation(variationID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown variation").
			WithDetails(map[string]any{"variationId": variationID})
	}
	s.variation = &v
	return nil
}

// SelectAddOn sets an add-on's quantity. Zero or less removes it (a no-op when it
// was not selected); an existing entry keeps its position.
func (s *State) SelectAddOn(addOnID string, quantity int) error {
	if s.phase != PhaseCustomizing {
		return conflict("add-ons can only be chosen while customizing", s.phase)
	}
	addOn, ok := s.item.AddOn(addOnID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown add-on").
			WithDetails(map[string]any{"addOnId": addOnID})
	}

	idx := -1
	for i, a := range s.addOns {
		if a.ID == addOnID {
			idx = i
			break
		}
	}

	switch {
	case quantity <= 0:
		if idx >= 0 {
			s.addOns = append(s.addOns[:idx], s.addOns[idx+1:]...)
		}
	case idx >= 0:
		s.addOns[idx].Quantity = quantity
	default:
		s.addOns = append(s.addOns, catalog.SelectedAddOn{AddOn: addOn, Quantity: quantity})
	}
	return nil
}

func (s *State) IncrementAddOn(addOnID string) error {
	return s.SelectAddOn(addOnID, s.AddOnQuantity(addOnID)+1)
}

// DecrementAddOn floors at zero, which unselects the add-on.
func (s *State) DecrementAddOn(addOnID string) error {
	next := s.AddOnQuantity(addOnID) - 1
	if next < 0 {
		next = 0
	}
	return s.SelectAddOn(addOnID, next)
}

// Price is the running unit price of the current selection.
func (s *State) Price() decimal.Decimal {
	return pricing.Price(s.item, s.variation, s.addOns)
}

// Confirm commits one unit of the current selection to the cart and closes the flow.
func (s *State) Confirm(adder Adder) (cart.Line, error) {
	if !s.phase.Open() {
		return cart.Line{}, conflict("nothing to confirm", s.phase)
	}
	if adder == nil {
		return cart.Line{}, pkgerrors.New(pkgerrors.CodeInternal, "cart is required to confirm")
	}

	var line cart.Line
	if s.phase == PhaseCustomizing {
		line = adder.AddToCart(s.item, 1, s.variation, s.addOns)
	} else {
		line = adder.AddToCart(s.item, 1, nil, nil)
	}
	s.reset()
	s.phase = PhaseConfirmed
	return line, nil
}

// Cancel discards the selection without touching the cart.
func (s *State) Cancel() error {
	if !s.phase.Open() {
		return conflict("nothing to cancel", s.phase)
	}
	s.reset()
	s.phase = PhaseCancelled
	return nil
}

func (s *State) reset() {
	s.variation = nil
	s.addOns = nil
}

func conflict(message string, phase Phase) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, message).
		WithDetails(map[string]any{"phase": phase})
}
