package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultSiteName = "Vendo Machine Store"
	DefaultSiteLogo = "/logo.jpg"
)

// Variation is a size/variant option. Price is a signed delta on the item's base.
type Variation struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// AddOn is an optional extra priced per unit and grouped by Category.
type AddOn struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// SelectedAddOn is an add-on with a chosen quantity (always >= 1 once selected).
type SelectedAddOn struct {
	AddOn
	Quantity int `json:"quantity"`
}

type MenuItem struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Image         string           `json:"image,omitempty"`
	BasePrice     decimal.Decimal  `json:"basePrice"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	IsOnDiscount  bool             `json:"isOnDiscount"`
	Category      string           `json:"category"`
	Available     bool             `json:"available"`
	Popular       bool             `json:"popular"`
	Variations    []Variation      `json:"variations,omitempty"`
	AddOns        []AddOn          `json:"addOns,omitempty"`
}

// HasDiscount reports whether the discount is both active and priced.
func (m MenuItem) HasDiscount() bool {
	return m.IsOnDiscount && m.DiscountPrice != nil
}

// EffectivePrice is the discount price while a discount is active, else the base price.
func (m MenuItem) EffectivePrice() decimal.Decimal {
	if m.HasDiscount() {
		return *m.DiscountPrice
	}
	return m.BasePrice
}

// Customizable reports whether adding the item goes through the customization flow.
func (m MenuItem) Customizable() bool {
	return len(m.Variations) > 0 || len(m.AddOns) > 0
}

func (m MenuItem) Variation(id string) (Variation, bool) {
	for _, v := range m.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

func (m MenuItem) AddOn(id string) (AddOn, bool) {
	for _, a := range m.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
	Active    bool   `json:"active"`
}

type SiteSettings struct {
	SiteName string `json:"siteName"`
	SiteLogo string `json:"siteLogo"`
}

// WithDefaults fills the storefront name and logo when they are unset.
func (s SiteSettings) WithDefaults() SiteSettings {
	if s.SiteName == "" {
		s.SiteName = DefaultSiteName
	}
	if s.SiteLogo == "" {
		s.SiteLogo = DefaultSiteLogo
	}
	return s
}

// Snapshot is an immutable view of the catalog at LoadedAt.
type Snapshot struct {
	categories []Category
	items      []MenuItem
	settings   SiteSettings
	byID       map[string]int
	loadedAt   time.Time
}

// NewSnapshot copies the inputs; callers may reuse their slices afterwards.
func NewSnapshot(categories []Category, items []MenuItem, settings SiteSettings, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		categories: append([]Category(nil), categories...),
		items:      append([]MenuItem(nil), items...),
		settings:   settings.WithDefaults(),
		byID:       make(map[string]int, len(items)),
		loadedAt:   loadedAt,
	}
	for i, item := range s.items {
		s.byID[item.ID] = i
	}
	return s
}

func (s *Snapshot) Categories() []Category {
	if s == nil {
		return nil
	}
	return append([]Category(nil), s.categories...)
}

func (s *Snapshot) Items() []MenuItem {
	if s == nil {
		return nil
	}
	return append([]MenuItem(nil), s.items...)
}

func (s *Snapshot) Settings() SiteSettings {
	if s == nil {
		return SiteSettings{}.WithDefaults()
	}
	return s.settings
}

func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// Item looks up a menu item by catalog id.
func (s *Snapshot) Item(id string) (MenuItem, bool) {
	if s == nil {
		return MenuItem{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return MenuItem{}, false
	}
	return s.items[idx], true
}
