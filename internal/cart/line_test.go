package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
)

func TestLineID(t *testing.T) {
	item := latte()
	large, _ := item.Variation("large")

	tests := []struct {
		name      string
		variation *catalog.Variation
		addOns    []catalog.SelectedAddOn
		want      string
	}{
		{name: "plain", want: "latte"},
		{name: "variation only", variation: &large, want: "latte~large~"},
		{name: "add-ons sorted", addOns: []catalog.SelectedAddOn{selected(item, "syrup", 1), selected(item, "shot", 2)}, want: "latte~~shot*2+syrup*1"},
		{name: "zero quantity ignored", addOns: []catalog.SelectedAddOn{selected(item, "shot", 0)}, want: "latte"},
		{name: "both", variation: &large, addOns: []catalog.SelectedAddOn{selected(item, "shot", 1)}, want: "latte~large~shot*1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineID(item.ID, tt.variation, tt.addOns))
		})
	}
}

func TestNormalizeAddOnsKeepsFirstSeenOrder(t *testing.T) {
	item := latte()
	got := normalizeAddOns([]catalog.SelectedAddOn{
		selected(item, "syrup", 1),
		selected(item, "shot", 1),
		selected(item, "syrup", 2),
	})
	if assert.Len(t, got, 2) {
		assert.Equal(t, "syrup", got[0].ID)
		assert.Equal(t, 3, got[0].Quantity)
		assert.Equal(t, "shot", got[1].ID)
	}
	assert.Nil(t, normalizeAddOns(nil))
}
