package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
)

const (
	keySep      = "~"
	addOnSep    = "+"
	quantitySep = "*"
)

// Line is one cart entry. TotalPrice is the unit price captured when the line was created.
type Line struct {
	ID                string                  `json:"id"`
	MenuItemID        string                  `json:"menuItemId"`
	Name              string                  `json:"name"`
	TotalPrice        decimal.Decimal         `json:"totalPrice"`
	Quantity          int                     `json:"quantity"`
	SelectedVariation *catalog.Variation      `json:"selectedVariation,omitempty"`
	SelectedAddOns    []catalog.SelectedAddOn `json:"selectedAddOns,omitempty"`
}

// Subtotal is the unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return pricing.LineTotal(l.TotalPrice, l.Quantity)
}

// Customized reports whether the line carries a variation or add-ons.
func (l Line) Customized() bool {
	return l.SelectedVariation != nil || len(l.SelectedAddOns) > 0
}

// sameConfiguration compares item, variation and the normalized add-on multiset.
func (l Line) sameConfiguration(itemID string, variation *catalog.Variation, addOns []catalog.SelectedAddOn) bool {
	if l.MenuItemID != itemID {
		return false
	}
	if (l.SelectedVariation == nil) != (variation == nil) {
		return false
	}
	if variation != nil && l.SelectedVariation.ID != variation.ID {
		return false
	}
	if len(l.SelectedAddOns) != len(addOns) {
		return false
	}
	want := make(map[string]int, len(addOns))
	for _, a := range addOns {
		want[a.ID] = a.Quantity
	}
	for _, a := range l.SelectedAddOns {
		if qty, ok := want[a.ID]; !ok || qty != a.Quantity {
			return false
		}
	}
	return true
}

// LineID derives the line identity. A plain line is keyed by the menu item id; a
// customized line appends the variation id and the add-on multiset in id order, so
// the same configuration always lands on the same line regardless of pick order.
func LineID(itemID string, variation *catalog.Variation, addOns []catalog.SelectedAddOn) string {
	normalized := normalizeAddOns(addOns)
	if variation == nil && len(normalized) == 0 {
		return itemID
	}

	parts := make([]string, 0, len(normalized))
	for _, a := range sortedByID(normalized) {
		parts = append(parts, a.ID+quantitySep+strconv.Itoa(a.Quantity))
	}

	variationID := ""
	if variation != nil {
		variationID = variation.ID
	}
	return strings.Join([]string{itemID, variationID, strings.Join(parts, addOnSep)}, keySep)
}

// normalizeAddOns merges repeated ids and drops non-positive quantities, keeping first-seen order.
func normalizeAddOns(addOns []catalog.SelectedAddOn) []catalog.SelectedAddOn {
	if len(addOns) == 0 {
		return nil
	}
	out := make([]catalog.SelectedAddOn, 0, len(addOns))
	index := make(map[string]int, len(addOns))
	for _, a := range addOns {
		if a.Quantity <= 0 {
			continue
		}
		if i, ok := index[a.ID]; ok {
			out[i].Quantity += a.Quantity
			continue
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedByID(addOns []catalog.SelectedAddOn) []catalog.SelectedAddOn {
	sorted := append([]catalog.SelectedAddOn(nil), addOns...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}
