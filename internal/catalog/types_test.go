package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEffectivePrice(t *testing.T) {
	discount := decimal.NewFromInt(80)
	tests := []struct {
		name string
		item MenuItem
		want int64
	}{
		{name: "no discount", item: MenuItem{BasePrice: decimal.NewFromInt(100)}, want: 100},
		{name: "active discount", item: MenuItem{BasePrice: decimal.NewFromInt(100), DiscountPrice: &discount, IsOnDiscount: true}, want: 80},
		{name: "inactive discount", item: MenuItem{BasePrice: decimal.NewFromInt(100), DiscountPrice: &discount}, want: 100},
		{name: "flag without price", item: MenuItem{BasePrice: decimal.NewFromInt(100), IsOnDiscount: true}, want: 100},
	}
	for _, tt := range tests {
		if got := tt.item.EffectivePrice(); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Fatalf("%s: expected %d got %s", tt.name, tt.want, got)
		}
	}
}

func TestSnapshotLookupsAndDefaults(t *testing.T) {
	items := []MenuItem{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	snap := NewSnapshot([]Category{{ID: "c1"}}, items, SiteSettings{SiteName: "Shop"}, time.Unix(10, 0))

	items[0].Name = "mutated"
	if got, ok := snap.Item("a"); !ok || got.Name != "A" {
		t.Fatalf("snapshot should own its items, got %+v", got)
	}
	if _, ok := snap.Item("missing"); ok {
		t.Fatal("unexpected lookup hit")
	}
	settings := snap.Settings()
	if settings.SiteName != "Shop" || settings.SiteLogo != DefaultSiteLogo {
		t.Fatalf("unexpected settings %+v", settings)
	}

	var empty *Snapshot
	if empty.Settings().SiteName != DefaultSiteName {
		t.Fatal("nil snapshot should expose default settings")
	}
	if empty.Items() != nil {
		t.Fatal("nil snapshot should have no items")
	}
}

func TestMenuItemOptionLookups(t *testing.T) {
	item := MenuItem{
		Variations: []Variation{{ID: "small"}, {ID: "large"}},
		AddOns:     []AddOn{{ID: "cups"}},
	}
	if !item.Customizable() {
		t.Fatal("item with options should be customizable")
	}
	if _, ok := item.Variation("large"); !ok {
		t.Fatal("expected variation lookup hit")
	}
	if _, ok := item.AddOn("lids"); ok {
		t.Fatal("unexpected add-on lookup hit")
	}
	if (MenuItem{}).Customizable() {
		t.Fatal("plain item should not be customizable")
	}
}
