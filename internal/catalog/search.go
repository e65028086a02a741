package catalog

import "strings"

// ResolveQuotes maps ids to quotes, keeping the order of ids. Unknown ids
// are dropped and repeated ids appear once.
func ResolveQuotes(quotes []Quote, ids []string) []Quote {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := rank[id]; !dup {
			rank[id] = i
		}
	}
	out := make([]Quote, len(ids))
	found := make([]bool, len(ids))
	for _, q := range quotes {
		if i, ok := rank[q.ID]; ok && !found[i] {
			out[i] = q
			found[i] = true
		}
	}
	res := out[:0]
	for i := range out {
		if found[i] {
			res = append(res, out[i])
		}
	}
	return res
}

// WallpapersInCategories returns every wallpaper whose category is in ids,
// keeping the order of wallpapers.
func WallpapersInCategories(wallpapers []Wallpaper, ids []string) []Wallpaper {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Wallpaper
	for _, w := range wallpapers {
		if want[w.CategoryID] {
			out = append(out, w)
		}
	}
	return out
}

// CategoryByName finds a category by id or case-insensitive name.
func CategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.ID == name || strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Accessible reports whether a premium-aware item can be shown unlocked.
func Accessible(premium bool, unlocked func(string) bool, id string) bool {
	return !premium || (unlocked != nil && unlocked(id))
}
