package menu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func fixtures() ([]catalog.Category, []catalog.MenuItem) {
	discount := dec("16999")
	categories := []catalog.Category{
		{ID: "hot", Name: "Hot Drinks", Icon: "☕", SortOrder: 1, Active: true},
		{ID: "cold", Name: "Cold Drinks", Icon: "🧊", SortOrder: 2, Active: true},
		{ID: "empty", Name: "Nothing Here", SortOrder: 3, Active: true},
	}
	items := []catalog.MenuItem{
		{
			ID: "starter", Name: "Starter", Description: "Hot coffee vendo", Category: "hot",
			BasePrice: dec("18500"), DiscountPrice: &discount, IsOnDiscount: true,
			Available: true, Popular: true,
			Variations: []catalog.Variation{
				{ID: "three", Name: "3 Flavors", Price: dec("0")},
				{ID: "four", Name: "4 Flavors", Price: dec("2500")},
			},
			AddOns: []catalog.AddOn{{ID: "cups", Name: "Cups", Price: dec("180"), Category: "cups"}},
		},
		{ID: "juice", Name: "Juice Basic", Description: "Cold juice", Category: "cold", BasePrice: dec("24000"), Available: true},
		{ID: "refill", Name: "Refill Pack", Description: "Coffee refill", Category: "hot", BasePrice: dec("950.5"), Available: true},
		{ID: "slush", Name: "Slush", Description: "Frozen", Category: "cold", BasePrice: dec("41000")},
	}
	return categories, items
}

func TestBuildGroupsByCategoryOrder(t *testing.T) {
	categories, items := fixtures()
	m := Build(categories, items, nil, "")

	require.Len(t, m.Sections, 2)
	assert.Equal(t, "hot", m.Sections[0].CategoryID)
	assert.Equal(t, "☕", m.Sections[0].Icon)
	require.Len(t, m.Sections[0].Cards, 2)
	assert.Equal(t, "starter", m.Sections[0].Cards[0].ID)
	assert.Equal(t, "refill", m.Sections[0].Cards[1].ID)

	assert.Equal(t, "cold", m.Sections[1].CategoryID)
	assert.Equal(t, []string{"juice", "slush"}, []string{m.Sections[1].Cards[0].ID, m.Sections[1].Cards[1].ID})
}

func TestBuildActiveCategoryFallsBackToFirst(t *testing.T) {
	categories, items := fixtures()

	assert.Equal(t, "cold", Build(categories, items, nil, "cold").ActiveCategory)
	assert.Equal(t, "hot", Build(categories, items, nil, "dim-sum").ActiveCategory)
	assert.Equal(t, "hot", Build(categories, items, nil, "").ActiveCategory)
	assert.Empty(t, Build(nil, items, nil, "hot").ActiveCategory)
}

func TestBuildCardQuantitiesFollowPlainLines(t *testing.T) {
	categories, items := fixtures()
	store := cart.NewStore()
	store.AddToCart(items[2], 3, nil, nil)
	three := items[0].Variations[0]
	store.AddToCart(items[0], 1, &three, nil)

	m := Build(categories, items, store, "")
	starter, refill := m.Sections[0].Cards[0], m.Sections[0].Cards[1]

	assert.Equal(t, 3, refill.Quantity)
	assert.Equal(t, ActionStepper, refill.Action)
	// customised lines are not reachable from the card
	assert.Equal(t, 0, starter.Quantity)
	assert.Equal(t, ActionCustomize, starter.Action)
}

func TestCardDiscountAndOptions(t *testing.T) {
	_, items := fixtures()
	card := NewBuilder("₱").Card(items[0], 0)

	assert.True(t, card.OnSale)
	assert.Equal(t, "₱16999.00", card.Price)
	assert.Equal(t, "₱18500.00", card.BasePrice)
	assert.EqualValues(t, 8, card.DiscountPercent)
	assert.Equal(t, "₱1501.00", card.Savings)
	assert.True(t, card.Popular)
	assert.Equal(t, "2 sizes", card.SizesLabel)
	assert.True(t, card.StartingPrice)
	assert.Equal(t, "1 add-on available", card.AddOnsLabel)
	require.Len(t, card.Variations, 2)
	assert.Equal(t, "₱19499.00", card.Variations[1].Price)
	assert.Equal(t, "Customize", card.ActionLabel)
}

func TestCardPlainAndUnavailable(t *testing.T) {
	_, items := fixtures()
	b := NewBuilder("$")

	juice := b.Card(items[1], 0)
	assert.False(t, juice.OnSale)
	assert.Equal(t, "$24000.00", juice.Price)
	assert.Empty(t, juice.SizesLabel)
	assert.False(t, juice.StartingPrice)
	assert.Equal(t, ActionAdd, juice.Action)
	assert.Equal(t, "Add to Cart", juice.ActionLabel)

	slush := b.Card(items[3], 2)
	assert.False(t, slush.Available)
	assert.Equal(t, ActionUnavailable, slush.Action)
	assert.Equal(t, "Currently Unavailable", slush.Description)
}

func TestAddOnsLabelPlural(t *testing.T) {
	assert.Equal(t, "1 add-on available", addOnsLabel(1))
	assert.Equal(t, "3 add-ons available", addOnsLabel(3))
}
