// Package menu builds the catalog view: category sections of product cards with
// their prices, badges and the action each card offers.
package menu

import (
	"fmt"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
)

// Card actions.
const (
	ActionUnavailable = "unavailable"
	ActionCustomize   = "customize"
	ActionAdd         = "add"
	ActionStepper     = "stepper"
)

const unavailableDescription = "Currently Unavailable"

// QuantityReader reports how many plain units of a catalog item are in the cart.
// *cart.Store satisfies it.
type QuantityReader interface {
	QuantityFor(menuItemID string) int
}

type Menu struct {
	ActiveCategory string    `json:"activeCategory"`
	Sections       []Section `json:"sections"`
}

type Section struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Cards      []Card `json:"cards"`
}

type VariationOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type Card struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Image           string            `json:"image,omitempty"`
	Price           string            `json:"price"`
	BasePrice       string            `json:"basePrice"`
	OnSale          bool              `json:"onSale"`
	DiscountPercent int64             `json:"discountPercent,omitempty"`
	Savings         string            `json:"savings,omitempty"`
	Popular         bool              `json:"popular"`
	Available       bool              `json:"available"`
	SizesLabel      string            `json:"sizesLabel,omitempty"`
	StartingPrice   bool              `json:"startingPrice"`
	AddOnsLabel     string            `json:"addOnsLabel,omitempty"`
	Variations      []VariationOption `json:"variations,omitempty"`
	Action          string            `json:"action"`
	ActionLabel     string            `json:"actionLabel,omitempty"`
	Quantity        int               `json:"quantity"`
}

// Builder renders cards with a fixed currency formatter.
type Builder struct {
	Formatter pricing.Formatter
}

func NewBuilder(symbol string) Builder {
	return Builder{Formatter: pricing.NewFormatter(symbol)}
}

// Build renders the menu with the default currency symbol.
func Build(categories []catalog.Category, items []catalog.MenuItem, cart QuantityReader, activeCategory string) Menu {
	return NewBuilder("").Build(categories, items, cart, activeCategory)
}

// Build groups items under their categories in category order, keeping catalog order
// within a section. Categories without items are left out.
func (b Builder) Build(categories []catalog.Category, items []catalog.MenuItem, cart QuantityReader, activeCategory string) Menu {
	byCategory := make(map[string][]catalog.MenuItem, len(categories))
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	m := Menu{ActiveCategory: ResolveActive(categories, activeCategory)}
	for _, c := range categories {
		categoryItems := byCategory[c.ID]
		if len(categoryItems) == 0 {
			continue
		}
		section := Section{CategoryID: c.ID, Name: c.Name, Icon: c.Icon}
		for _, item := range categoryItems {
			section.Cards = append(section.Cards, b.Card(item, quantityOf(cart, item.ID)))
		}
		m.Sections = append(m.Sections, section)
	}
	return m
}

// Card renders one product card. quantity is the plain line's quantity in the cart.
func (b Builder) Card(item catalog.MenuItem, quantity int) Card {
	card := Card{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Image:       item.Image,
		Price:       b.Formatter.Currency(item.EffectivePrice()),
		BasePrice:   b.Formatter.Currency(item.BasePrice),
		Popular:     item.Popular,
		Available:   item.Available,
		Quantity:    quantity,
	}

	if item.HasDiscount() {
		card.OnSale = true
		card.DiscountPercent = pricing.DiscountPercent(item)
		card.Savings = b.Formatter.Currency(pricing.Savings(item))
	}

	if n := len(item.Variations); n > 0 {
		card.SizesLabel = fmt.Sprintf("%d sizes", n)
		card.StartingPrice = true
		for _, v := range item.Variations {
			card.Variations = append(card.Variations, VariationOption{
				ID:    v.ID,
				Name:  v.Name,
				Price: b.Formatter.Currency(pricing.VariationPrice(item, v)),
			})
		}
	}
	if n := len(item.AddOns); n > 0 {
		card.AddOnsLabel = addOnsLabel(n)
	}

	switch {
	case !item.Available:
		card.Description = unavailableDescription
		card.Action = ActionUnavailable
		card.ActionLabel = "Unavailable"
	case quantity > 0:
		card.Action = ActionStepper
	case item.Customizable():
		card.Action = ActionCustomize
		card.ActionLabel = "Customize"
	default:
		card.Action = ActionAdd
		card.ActionLabel = "Add to Cart"
	}
	return card
}

// ResolveActive returns requested when it names a category, else the first category.
func ResolveActive(categories []catalog.Category, requested string) string {
	if len(categories) == 0 {
		return ""
	}
	for _, c := range categories {
		if c.ID == requested {
			return requested
		}
	}
	return categories[0].ID
}

func addOnsLabel(n int) string {
	if n == 1 {
		return "1 add-on available"
	}
	return fmt.Sprintf("%d add-ons available", n)
}

func quantityOf(cart QuantityReader, itemID string) int {
	if cart == nil {
		return 0
	}
	return cart.QuantityFor(itemID)
}
