package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceWithVariationAndAddOns(t *testing.T) {
	item := catalog.MenuItem{ID: "latte", BasePrice: dec("100")}
	large := catalog.Variation{ID: "large", Name: "Large", Price: dec("20")}
	addOns := []catalog.SelectedAddOn{
		{AddOn: catalog.AddOn{ID: "shot", Price: dec("15")}, Quantity: 2},
	}

	got := Price(item, &large, addOns)
	assert.True(t, got.Equal(dec("150")), "expected 150, got %s", got)
	assert.Equal(t, "150.00", Format(got))
}

func TestPriceUsesEffectivePrice(t *testing.T) {
	discount := dec("80")
	item := catalog.MenuItem{BasePrice: dec("100"), DiscountPrice: &discount, IsOnDiscount: true}

	assert.True(t, Price(item, nil, nil).Equal(dec("80")))

	item.IsOnDiscount = false
	assert.True(t, Price(item, nil, nil).Equal(dec("100")))
}

func TestPriceSkipsNonPositiveQuantities(t *testing.T) {
	item := catalog.MenuItem{BasePrice: dec("10")}
	addOns := []catalog.SelectedAddOn{
		{AddOn: catalog.AddOn{ID: "a", Price: dec("5")}, Quantity: 0},
		{AddOn: catalog.AddOn{ID: "b", Price: dec("5")}, Quantity: -3},
		{AddOn: catalog.AddOn{ID: "c", Price: dec("0.10")}, Quantity: 3},
	}
	assert.True(t, Price(item, nil, addOns).Equal(dec("10.30")))
}

func TestPriceIsExact(t *testing.T) {
	item := catalog.MenuItem{BasePrice: dec("0.10")}
	addOns := []catalog.SelectedAddOn{{AddOn: catalog.AddOn{Price: dec("0.20")}, Quantity: 1}}
	// 0.1 + 0.2 must not drift
	assert.Equal(t, "0.30", Format(Price(item, nil, addOns)))
}

func TestNegativeVariationDelta(t *testing.T) {
	item := catalog.MenuItem{BasePrice: dec("100")}
	small := catalog.Variation{Price: dec("-15")}
	assert.True(t, Price(item, &small, nil).Equal(dec("85")))
	assert.True(t, VariationPrice(item, small).Equal(dec("85")))
}

func TestDiscountPercentAndSavings(t *testing.T) {
	discount := dec("16999")
	item := catalog.MenuItem{BasePrice: dec("18500"), DiscountPrice: &discount, IsOnDiscount: true}

	// (18500-16999)/18500 = 8.11%
	assert.Equal(t, int64(8), DiscountPercent(item))
	assert.True(t, Savings(item).Equal(dec("1501")))

	half := dec("50")
	assert.Equal(t, int64(50), DiscountPercent(catalog.MenuItem{BasePrice: dec("100"), DiscountPrice: &half, IsOnDiscount: true}))

	rounding := dec("66.5")
	// 33.5% rounds up
	assert.Equal(t, int64(34), DiscountPercent(catalog.MenuItem{BasePrice: dec("100"), DiscountPrice: &rounding, IsOnDiscount: true}))

	assert.Equal(t, int64(0), DiscountPercent(catalog.MenuItem{BasePrice: dec("100")}))
	assert.True(t, Savings(catalog.MenuItem{BasePrice: dec("100")}).IsZero())
}

func TestFormatter(t *testing.T) {
	f := NewFormatter("")
	require.Equal(t, DefaultCurrencySymbol, f.Symbol)

	assert.Equal(t, "₱150.00", f.Currency(dec("150")))
	assert.Equal(t, "₱0.00", f.Currency(decimal.Zero))
	assert.Equal(t, "-₱5.50", f.Currency(dec("-5.5")))
	assert.Equal(t, "Free", f.Each(decimal.Zero))
	assert.Equal(t, "₱180.00 each", f.Each(dec("180")))

	usd := NewFormatter("$")
	assert.Equal(t, "$1.25", usd.Currency(dec("1.245")))
}

func TestLineTotal(t *testing.T) {
	assert.True(t, LineTotal(dec("150"), 2).Equal(dec("300")))
}
