package catalog

// Store is the read-only, indexed view of a catalog. It is built once at
// startup and never mutated, so it is safe to share between goroutines.
type Store struct {
	cat        Catalog
	categories map[string]int
	quotes     map[string]int
	wallpapers map[string]int
}

// NewStore indexes c. The caller must not modify c afterwards.
func NewStore(c *Catalog) *Store {
	s := &Store{
		cat:        *c,
		categories: make(map[string]int, len(c.Categories)),
		quotes:     make(map[string]int, len(c.Quotes)),
		wallpapers: make(map[string]int, len(c.Wallpapers)),
	}
	for i, cat := range c.Categories {
		s.categories[cat.ID] = i
	}
	for i, q := range c.Quotes {
		s.quotes[q.ID] = i
	}
	for i, w := range c.Wallpapers {
		s.wallpapers[w.ID] = i
	}
	return s
}

// Catalog returns a copy of the underlying catalog document.
func (s *Store) Catalog() Catalog {
	return Catalog{
		Categories: s.Categories(),
		Quotes:     s.Quotes(),
		Wallpapers: s.Wallpapers(),
		Featured: Featured{
			Quotes:     append([]string(nil), s.cat.Featured.Quotes...),
			Wallpapers: append([]string(nil), s.cat.Featured.Wallpapers...),
		},
	}
}

// Categories returns all categories in catalog order.
func (s *Store) Categories() []Category {
	return append([]Category(nil), s.cat.Categories...)
}

// Quotes returns all quotes in catalog order.
func (s *Store) Quotes() []Quote {
	return append([]Quote(nil), s.cat.Quotes...)
}

// Wallpapers returns all catalog wallpapers in catalog order.
func (s *Store) Wallpapers() []Wallpaper {
	return append([]Wallpaper(nil), s.cat.Wallpapers...)
}

// Category looks up a category by id.
func (s *Store) Category(id string) (Category, bool) {
	i, ok := s.categories[id]
	if !ok {
		return Category{}, false
	}
	return s.cat.Categories[i], true
}

// Quote looks up a quote by id.
func (s *Store) Quote(id string) (Quote, bool) {
	i, ok := s.quotes[id]
	if !ok {
		return Quote{}, false
	}
	return s.cat.Quotes[i], true
}

// Wallpaper looks up a catalog wallpaper by id.
func (s *Store) Wallpaper(id string) (Wallpaper, bool) {
	i, ok := s.wallpapers[id]
	if !ok {
		return Wallpaper{}, false
	}
	return s.cat.Wallpapers[i], true
}

// IsPremium reports whether id names a premium catalog item.
func (s *Store) IsPremium(id string) bool {
	if q, ok := s.Quote(id); ok {
		return q.Premium
	}
	if w, ok := s.Wallpaper(id); ok {
		return w.Premium
	}
	return false
}

// QuotesIn returns the quotes of one category in catalog order.
func (s *Store) QuotesIn(categoryID string) []Quote {
	var out []Quote
	for _, q := range s.cat.Quotes {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out
}

// WallpapersIn returns the catalog wallpapers of one category in catalog order.
func (s *Store) WallpapersIn(categoryID string) []Wallpaper {
	return WallpapersInCategories(s.cat.Wallpapers, []string{categoryID})
}

// FeaturedQuotes returns the home-screen quotes.
func (s *Store) FeaturedQuotes() []Quote {
	return ResolveQuotes(s.cat.Quotes, s.cat.Featured.Quotes)
}

// FeaturedWallpapers returns the home-screen wallpapers.
func (s *Store) FeaturedWallpapers() []Wallpaper {
	var out []Wallpaper
	for _, id := range s.cat.Featured.Wallpapers {
		if w, ok := s.Wallpaper(id); ok {
			out = append(out, w)
		}
	}
	return out
}
