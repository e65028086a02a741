package catalog

// Icon is a symbolic reference to a category glyph. Rendering is left to
// the presentation layer.
type Icon string

const (
	IconBolt     Icon = "bolt"
	IconHeart    Icon = "heart"
	IconFire     Icon = "fire"
	IconBeaker   Icon = "beaker"
	IconSparkles Icon = "sparkles"
	IconLeaf     Icon = "leaf"
	IconRocket   Icon = "rocket"
	IconGlobe    Icon = "globe"
)

// GeneratedCategoryID is the synthetic category of wallpapers produced at
// runtime by image generation. It never appears in the category list.
const GeneratedCategoryID = "ai-generated"

// ContentType selects which kind of item a category view lists.
type ContentType string

const (
	ContentQuotes     ContentType = "quotes"
	ContentWallpapers ContentType = "wallpapers"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	return t == ContentQuotes || t == ContentWallpapers
}

// Category groups quotes and wallpapers.
type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Icon Icon   `yaml:"icon" json:"icon"`
}

// Quote is one entry in the quote collection.
type Quote struct {
	ID         string `yaml:"id" json:"id"`
	Text       string `yaml:"text" json:"text"`
	Author     string `yaml:"author" json:"author"`
	CategoryID string `yaml:"category" json:"categoryId"`
	Premium    bool   `yaml:"premium,omitempty" json:"premium"`
}

// Wallpaper is one image entry. ImageURL is either a remote URL or a
// data: URL for generated images.
type Wallpaper struct {
	ID         string `yaml:"id" json:"id"`
	ImageURL   string `yaml:"image_url" json:"imageUrl"`
	CategoryID string `yaml:"category" json:"categoryId"`
	Premium    bool   `yaml:"premium,omitempty" json:"premium"`
}

// Featured lists the ids highlighted on the home screen.
type Featured struct {
	Quotes     []string `yaml:"quotes,omitempty"`
	Wallpapers []string `yaml:"wallpapers,omitempty"`
}

// Catalog is the on-disk shape of a catalog file.
type Catalog struct {
	Categories []Category  `yaml:"categories"`
	Quotes     []Quote     `yaml:"quotes"`
	Wallpapers []Wallpaper `yaml:"wallpapers"`
	Featured   Featured    `yaml:"featured,omitempty"`
}

// Source is a web citation attached to a generated daily quote.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// DailyQuote is the AI-generated quote of the day.
type DailyQuote struct {
	Text    string   `json:"text"`
	Author  string   `json:"author"`
	Sources []Source `json:"sources"`
}
