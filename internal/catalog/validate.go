package catalog

import "fmt"

// Validate checks the referential invariants of a catalog:
// category ids are unique, item ids are unique across quotes and
// wallpapers, and every item points at a known category.
func Validate(c *Catalog) error {
	cats := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %q has no id", cat.Name)
		}
		if cat.ID == GeneratedCategoryID {
			return fmt.Errorf("category id %q is reserved", cat.ID)
		}
		if cats[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		cats[cat.ID] = true
	}

	seen := make(map[string]string, len(c.Quotes)+len(c.Wallpapers))
	claim := func(id, kind string) error {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate item id %q (%s and %s)", id, prev, kind)
		}
		seen[id] = kind
		return nil
	}

	for _, q := range c.Quotes {
		if err := claim(q.ID, "quote"); err != nil {
			return err
		}
		if q.Text == "" {
			return fmt.Errorf("quote %q has no text", q.ID)
		}
		if !cats[q.CategoryID] {
			return fmt.Errorf("quote %q: unknown category %q", q.ID, q.CategoryID)
		}
	}
	for _, w := range c.Wallpapers {
		if err := claim(w.ID, "wallpaper"); err != nil {
			return err
		}
		if w.ImageURL == "" {
			return fmt.Errorf("wallpaper %q has no image_url", w.ID)
		}
		if w.CategoryID != GeneratedCategoryID && !cats[w.CategoryID] {
			return fmt.Errorf("wallpaper %q: unknown category %q", w.ID, w.CategoryID)
		}
	}

	for _, id := range c.Featured.Quotes {
		if seen[id] != "quote" {
			return fmt.Errorf("featured quote %q not in catalog", id)
		}
	}
	for _, id := range c.Featured.Wallpapers {
		if seen[id] != "wallpaper" {
			return fmt.Errorf("featured wallpaper %q not in catalog", id)
		}
	}
	return nil
}
