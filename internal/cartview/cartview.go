// Package cartview renders the cart page and the plain-text order summary handed
// to checkout.
package cartview

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
)

const (
	EmptyTitle   = "Your cart is empty"
	EmptyMessage = "Add some products to get started!"
	EmptyAction  = "Browse Products"
)

type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type Line struct {
	ID             string `json:"id"`
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	VariationLabel string `json:"variationLabel,omitempty"`
	AddOnsLabel    string `json:"addOnsLabel,omitempty"`
	UnitPrice      string `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
	Subtotal       string `json:"subtotal"`
	// RemoveID is the id the remove and stepper controls act on.
	RemoveID string `json:"removeId"`
}

type View struct {
	Empty     *EmptyState `json:"empty,omitempty"`
	Lines     []Line      `json:"lines"`
	ItemCount int         `json:"itemCount"`
	Total     string      `json:"total"`
	Currency  string      `json:"currency"`
}

type Renderer struct {
	Formatter pricing.Formatter
}

func NewRenderer(symbol string) Renderer {
	return Renderer{Formatter: pricing.NewFormatter(symbol)}
}

// Build renders with the default currency symbol.
func Build(c *cart.Store) View {
	return NewRenderer("").Build(c)
}

func (r Renderer) Build(c *cart.Store) View {
	view := View{
		Lines:    []Line{},
		Total:    pricing.Format(decimal.Zero),
		Currency: r.Formatter.Symbol,
	}
	if c == nil || c.Len() == 0 {
		view.Empty = &EmptyState{Title: EmptyTitle, Message: EmptyMessage, Action: EmptyAction}
		return view
	}

	for _, l := range c.Lines() {
		line := Line{
			ID:          l.ID,
			MenuItemID:  l.MenuItemID,
			Name:        l.Name,
			AddOnsLabel: AddOnsLabel(l.SelectedAddOns),
			UnitPrice:   pricing.Format(l.TotalPrice),
			Quantity:    l.Quantity,
			Subtotal:    pricing.Format(l.Subtotal()),
			RemoveID:    l.ID,
		}
		if l.SelectedVariation != nil {
			line.VariationLabel = "Size: " + l.SelectedVariation.Name
		}
		view.Lines = append(view.Lines, line)
	}
	view.ItemCount = c.ItemCount()
	view.Total = pricing.Format(c.TotalPrice())
	return view
}

// AddOnsLabel lists add-ons as "Name" or "Name xN", joined by commas. Entries that
// share an id are collapsed into one.
func AddOnsLabel(addOns []catalog.SelectedAddOn) string {
	if len(addOns) == 0 {
		return ""
	}
	var order []string
	merged := map[string]catalog.SelectedAddOn{}
	for _, a := range addOns {
		if a.Quantity <= 0 {
			continue
		}
		if existing, ok := merged[a.ID]; ok {
			existing.Quantity += a.Quantity
			merged[a.ID] = existing
			continue
		}
		order = append(order, a.ID)
		merged[a.ID] = a
	}

	parts := make([]string, 0, len(order))
	for _, id := range order {
		a := merged[id]
		if a.Quantity > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", a.Name, a.Quantity))
		} else {
			parts = append(parts, a.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// Summary renders a plain-text order summary for checkout.
func (r Renderer) Summary(c *cart.Store) string {
	var b strings.Builder
	b.WriteString("Order Summary\n")
	if c == nil || c.Len() == 0 {
		b.WriteString("(empty)\n")
		fmt.Fprintf(&b, "Total: %s\n", r.Formatter.Currency(decimal.Zero))
		return b.String()
	}
	for _, l := range c.Lines() {
		fmt.Fprintf(&b, "%d x %s", l.Quantity, l.Name)
		if l.SelectedVariation != nil {
			fmt.Fprintf(&b, " (%s)", l.SelectedVariation.Name)
		}
		fmt.Fprintf(&b, " - %s\n", r.Formatter.Currency(l.Subtotal()))
		if label := AddOnsLabel(l.SelectedAddOns); label != "" {
			fmt.Fprintf(&b, "  Add-ons: %s\n", label)
		}
	}
	fmt.Fprintf(&b, "Total: %s\n", r.Formatter.Currency(c.TotalPrice()))
	return b.String()
}
