package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
)

// Seed is a full catalog definition, typically read from YAML.
type Seed struct {
	Settings   SiteSettings
	Categories []Category
	Items      []MenuItem
}

// Snapshot turns the seed into a provider snapshot, dropping inactive categories.
func (s *Seed) Snapshot(now time.Time) *Snapshot {
	active := make(map[string]bool, len(s.Categories))
	categories := make([]Category, 0, len(s.Categories))
	for _, c := range sortCategories(s.Categories) {
		if !c.Active {
			continue
		}
		active[c.ID] = true
		categories = append(categories, c)
	}
	items := make([]MenuItem, 0, len(s.Items))
	for _, item := range s.Items {
		if active[item.Category] {
			items = append(items, item)
		}
	}
	return NewSnapshot(categories, items, s.Settings, now)
}

type seedDocument struct {
	Settings struct {
		SiteName string `yaml:"site_name"`
		SiteLogo string `yaml:"site_logo"`
	} `yaml:"settings"`
	Categories []seedCategory `yaml:"categories" validate:"required,min=1,dive"`
	Items      []seedItem     `yaml:"items" validate:"dive"`
}

type seedCategory struct {
	ID        string `yaml:"id" validate:"required"`
	Name      string `yaml:"name" validate:"required"`
	Icon      string `yaml:"icon"`
	SortOrder int    `yaml:"sort_order"`
	Active    *bool  `yaml:"active"`
}

type seedItem struct {
	ID            string          `yaml:"id" validate:"required,excludesall=~+*"`
	Name          string          `yaml:"name" validate:"required"`
	Description   string          `yaml:"description"`
	Image         string          `yaml:"image"`
	BasePrice     string          `yaml:"base_price" validate:"required"`
	DiscountPrice string          `yaml:"discount_price"`
	IsOnDiscount  bool            `yaml:"is_on_discount"`
	Category      string          `yaml:"category" validate:"required"`
	Available     *bool           `yaml:"available"`
	Popular       bool            `yaml:"popular"`
	Variations    []seedVariation `yaml:"variations" validate:"dive"`
	AddOns        []seedAddOn     `yaml:"add_ons" validate:"dive"`
}

type seedVariation struct {
	ID    string `yaml:"id" validate:"required,excludesall=~+*"`
	Name  string `yaml:"name" validate:"required"`
	Price string `yaml:"price"`
}

type seedAddOn struct {
	ID       string `yaml:"id" validate:"required,excludesall=~+*"`
	Name     string `yaml:"name" validate:"required"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
}

var seedValidator = validator.New()

// ReservedIDChars separate the parts of a cart line id and may not appear in
// item, variation or add-on ids.
const ReservedIDChars = "~+*"

const idTag = "required,excludesall=" + ReservedIDChars

// Validate checks that every id a cart line id is built from is usable.
func (s *Seed) Validate() error {
	for _, item := range s.Items {
		if err := seedValidator.Var(item.ID, idTag); err != nil {
			return seedError("item id %q must be set and must not contain any of %q", item.ID, ReservedIDChars)
		}
		for _, v := range item.Variations {
			if err := seedValidator.Var(v.ID, idTag); err != nil {
				return seedError("item %q variation id %q must be set and must not contain any of %q", item.ID, v.ID, ReservedIDChars)
			}
		}
		for _, a := range item.AddOns {
			if err := seedValidator.Var(a.ID, idTag); err != nil {
				return seedError("item %q add-on id %q must be set and must not contain any of %q", item.ID, a.ID, ReservedIDChars)
			}
		}
	}
	return nil
}

// LoadSeed reads and validates a YAML catalog file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed %q: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML catalog document.
func ParseSeed(data []byte) (*Seed, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog seed")
	}
	if err := seedValidator.Struct(doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog seed")
	}

	seed := &Seed{Settings: SiteSettings{SiteName: doc.Settings.SiteName, SiteLogo: doc.Settings.SiteLogo}}

	categories := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if categories[c.ID] {
			return nil, seedError("duplicate category id %q", c.ID)
		}
		categories[c.ID] = true
		seed.Categories = append(seed.Categories, Category{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			SortOrder: c.SortOrder,
			Active:    boolOr(c.Active, true),
		})
	}

	items := make(map[string]bool, len(doc.Items))
	for _, raw := range doc.Items {
		if items[raw.ID] {
			return nil, seedError("duplicate menu item id %q", raw.ID)
		}
		items[raw.ID] = true
		if !categories[raw.Category] {
			return nil, seedError("item %q references unknown category %q", raw.ID, raw.Category)
		}
		item, err := raw.toMenuItem()
		if err != nil {
			return nil, err
		}
		seed.Items = append(seed.Items, item)
	}
	return seed, nil
}

func (raw seedItem) toMenuItem() (MenuItem, error) {
	base, err := parseMoney(raw.BasePrice)
	if err != nil {
		return MenuItem{}, seedError("item %q base_price: %v", raw.ID, err)
	}
	if base.IsNegative() {
		return MenuItem{}, seedError("item %q base_price must not be negative", raw.ID)
	}

	item := MenuItem{
		ID:           raw.ID,
		Name:         raw.Name,
		Description:  raw.Description,
		Image:        raw.Image,
		BasePrice:    base,
		IsOnDiscount: raw.IsOnDiscount,
		Category:     raw.Category,
		Available:    boolOr(raw.Available, true),
		Popular:      raw.Popular,
	}

	if strings.TrimSpace(raw.DiscountPrice) != "" {
		discount, err := parseMoney(raw.DiscountPrice)
		if err != nil {
			return MenuItem{}, seedError("item %q discount_price: %v", raw.ID, err)
		}
		if discount.IsNegative() || !discount.LessThan(base) {
			return MenuItem{}, seedError("item %q discount_price must be between 0 and base_price", raw.ID)
		}
		item.DiscountPrice = &discount
	}

	seen := map[string]bool{}
	for _, v := range raw.Variations {
		if seen[v.ID] {
			return MenuItem{}, seedError("item %q has duplicate variation %q", raw.ID, v.ID)
		}
		seen[v.ID] = true
		price, err := parseMoney(v.Price)
		if err != nil {
			return MenuItem{}, seedError("item %q variation %q price: %v", raw.ID, v.ID, err)
		}
		item.Variations = append(item.Variations, Variation{ID: v.ID, Name: v.Name, Price: price})
	}

	seen = map[string]bool{}
	for _, a := range raw.AddOns {
		if seen[a.ID] {
			return MenuItem{}, seedError("item %q has duplicate add-on %q", raw.ID, a.ID)
		}
		seen[a.ID] = true
		price, err := parseMoney(a.Price)
		if err != nil {
			return MenuItem{}, seedError("item %q add-on %q price: %v", raw.ID, a.ID, err)
		}
		if price.IsNegative() {
			return MenuItem{}, seedError("item %q add-on %q price must not be negative", raw.ID, a.ID)
		}
		item.AddOns = append(item.AddOns, AddOn{ID: a.ID, Name: a.Name, Price: price, Category: a.Category})
	}
	return item, nil
}

// SeedLoader serves the catalog straight from a YAML file, re-read on every Load.
type SeedLoader struct {
	Path string
	now  func() time.Time
}

func NewSeedLoader(path string) *SeedLoader {
	return &SeedLoader{Path: path, now: time.Now}
}

func (l *SeedLoader) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed, err := LoadSeed(l.Path)
	if err != nil {
		return nil, err
	}
	return seed.Snapshot(l.now().UTC()), nil
}

func parseMoney(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func seedError(format string, args ...any) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf(format, args...))
}
