package cart

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
)

// Store is one visitor's cart. It is not safe for concurrent use; Service
// serialises access per session.
type Store struct {
	lines []Line
}

// NewStore builds a cart from previously saved lines.
func NewStore(lines ...Line) *Store {
	return &Store{lines: append([]Line(nil), lines...)}
}

// AddToCart prices the configuration and merges it into an identical line or appends
// a new one. Quantities below 1 are treated as 1.
func (s *Store) AddToCart(item catalog.MenuItem, quantity int, variation *catalog.Variation, addOns []catalog.SelectedAddOn) Line {
	if quantity < 1 {
		quantity = 1
	}
	selected := normalizeAddOns(addOns)

	for i := range s.lines {
		if s.lines[i].sameConfiguration(item.ID, variation, selected) {
			s.lines[i].Quantity += quantity
			return s.lines[i]
		}
	}

	line := Line{
		ID:             s.uniqueID(LineID(item.ID, variation, selected)),
		MenuItemID:     item.ID,
		Name:           item.Name,
		TotalPrice:     pricing.Price(item, variation, selected),
		Quantity:       quantity,
		SelectedAddOns: selected,
	}
	if variation != nil {
		v := *variation
		line.SelectedVariation = &v
	}
	s.lines = append(s.lines, line)
	return line
}

// uniqueID keeps line handles distinct when two configurations render to the same id.
func (s *Store) uniqueID(id string) string {
	candidate := id
	for n := 2; ; n++ {
		if _, taken := s.Line(candidate); !taken {
			return candidate
		}
		candidate = id + "#" + strconv.Itoa(n)
	}
}

// UpdateQuantity sets a line's quantity verbatim; zero or less removes the line.
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(lineID)
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

func (s *Store) RemoveFromCart(lineID string) {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *Store) ClearCart() {
	s.lines = nil
}

// TotalPrice sums unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

func (s *Store) Line(lineID string) (Line, bool) {
	for _, line := range s.lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return Line{}, false
}

func (s *Store) Len() int {
	return len(s.lines)
}

// ItemCount is the sum of quantities, as shown on the cart badge.
func (s *Store) ItemCount() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// QuantityFor returns the quantity of the uncustomized line for that item.
func (s *Store) QuantityFor(menuItemID string) int {
	for _, line := range s.lines {
		if line.MenuItemID == menuItemID && !line.Customized() {
			return line.Quantity
		}
	}
	return 0
}
