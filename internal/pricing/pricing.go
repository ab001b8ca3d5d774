// Package pricing computes unit prices for menu items and formats money for display.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
)

var hundred = decimal.NewFromInt(100)

// Price returns the unit price of one configured item: the effective price, plus the
// selected variation's delta, plus each add-on's price times its quantity. Add-ons
// with a non-positive quantity contribute nothing.
func Price(item catalog.MenuItem, variation *catalog.Variation, addOns []catalog.SelectedAddOn) decimal.Decimal {
	price := item.EffectivePrice()
	if variation != nil {
		price = price.Add(variation.Price)
	}
	for _, a := range addOns {
		if a.Quantity <= 0 {
			continue
		}
		price = price.Add(a.Price.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return price
}

// VariationPrice is the price shown next to a size option.
func VariationPrice(item catalog.MenuItem, v catalog.Variation) decimal.Decimal {
	return item.EffectivePrice().Add(v.Price)
}

// DiscountPercent is the rounded percentage off the base price, 0 without an active discount.
func DiscountPercent(item catalog.MenuItem) int64 {
	if !item.HasDiscount() || !item.BasePrice.IsPositive() {
		return 0
	}
	off := item.BasePrice.Sub(*item.DiscountPrice).Div(item.BasePrice).Mul(hundred)
	return off.Round(0).IntPart()
}

// Savings is base minus discount price, 0 without an active discount.
func Savings(item catalog.MenuItem) decimal.Decimal {
	if !item.HasDiscount() {
		return decimal.Zero
	}
	return item.BasePrice.Sub(*item.DiscountPrice)
}

// LineTotal is unit price times quantity.
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}
