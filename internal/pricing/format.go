package pricing

import "github.com/shopspring/decimal"

const DefaultCurrencySymbol = "₱"

// Format renders an amount with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Formatter prefixes formatted amounts with a currency symbol.
type Formatter struct {
	Symbol string
}

func NewFormatter(symbol string) Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Formatter{Symbol: symbol}
}

// Currency renders e.g. "₱150.00". Negative amounts keep the sign before the symbol.
func (f Formatter) Currency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + f.Symbol + Format(d.Neg())
	}
	return f.Symbol + Format(d)
}

// Each labels a per-unit add-on price; zero-priced add-ons read "Free".
func (f Formatter) Each(d decimal.Decimal) string {
	if !d.IsPositive() {
		return "Free"
	}
	return f.Currency(d) + " each"
}
