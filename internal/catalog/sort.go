package catalog

import "sort"

// sortCategories orders categories by SortOrder, keeping input order for ties.
func sortCategories(in []Category) []Category {
	out := append([]Category(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
