package customization

import (
	"strings"
	"unicode"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
)

// AddOnGroup is one heading in the add-on picker.
type AddOnGroup struct {
	Category string
	Label    string
	AddOns   []catalog.AddOn
}

// AddOnGroups groups an item's add-ons by category in first-seen order.
func AddOnGroups(item catalog.MenuItem) []AddOnGroup {
	var groups []AddOnGroup
	index := map[string]int{}
	for _, a := range item.AddOns {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, AddOnGroup{Category: a.Category, Label: CategoryLabel(a.Category)})
		}
		groups[i].AddOns = append(groups[i].AddOns, a)
	}
	return groups
}

// CategoryLabel turns "premium-flavors" into "Premium Flavors".
func CategoryLabel(category string) string {
	words := strings.Fields(strings.ReplaceAll(category, "-", " "))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
