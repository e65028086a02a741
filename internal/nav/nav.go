// Package nav is the navigation state machine over the application's
// screens. Each view has a fixed parent for Back; there is no history.
package nav

import (
	"strings"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
)

// View represents the current active view
type View string

const (
	ViewHome        View = "home"
	ViewCategories  View = "categories"
	ViewQuotes      View = "quotes"
	ViewWallpapers  View = "wallpapers"
	ViewSearch      View = "search"
	ViewFavorites   View = "favorites"
	ViewAIGenerator View = "ai-generator"
)

// State is a snapshot of the navigation state. SelectedCategory is nil
// outside the quotes and wallpapers views.
type State struct {
	View             View
	SelectedCategory *catalog.Category
	ContentType      catalog.ContentType
	SearchQuery      string
	AIPrompt         string
}

// Controller holds navigation state. It is not safe for concurrent use;
// the application controller serializes access.
type Controller struct {
	state State
}

// New returns a controller on the home view.
func New() *Controller {
	return &Controller{state: State{View: ViewHome, ContentType: catalog.ContentQuotes}}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	if s.SelectedCategory != nil {
		cat := *s.SelectedCategory
		s.SelectedCategory = &cat
	}
	return s
}

// Browse moves home -> categories.
func (c *Controller) Browse() bool {
	if c.state.View != ViewHome {
		return false
	}
	c.state.View = ViewCategories
	return true
}

// Favorites moves home -> favorites.
func (c *Controller) Favorites() bool {
	if c.state.View != ViewHome {
		return false
	}
	c.state.View = ViewFavorites
	return true
}

// AIGenerator opens the generator from home or from search results,
// seeding it with prompt (which may be empty).
func (c *Controller) AIGenerator(prompt string) bool {
	if c.state.View != ViewHome && c.state.View != ViewSearch {
		return false
	}
	c.state.View = ViewAIGenerator
	c.state.AIPrompt = strings.TrimSpace(prompt)
	return true
}

// Search moves home -> search with the trimmed query. An empty or
// whitespace-only query is rejected.
func (c *Controller) Search(query string) bool {
	q := strings.TrimSpace(query)
	if c.state.View != ViewHome || q == "" {
		return false
	}
	c.state.View = ViewSearch
	c.state.SearchQuery = q
	return true
}

// SelectCategory moves categories -> quotes or wallpapers for cat.
func (c *Controller) SelectCategory(cat catalog.Category, ct catalog.ContentType) bool {
	if c.state.View != ViewCategories || !ct.Valid() {
		return false
	}
	selected := cat
	c.state.SelectedCategory = &selected
	c.state.ContentType = ct
	if ct == catalog.ContentWallpapers {
		c.state.View = ViewWallpapers
	} else {
		c.state.View = ViewQuotes
	}
	return true
}

// Back moves to the fixed parent of the current view. From home it is a
// no-op and reports false.
func (c *Controller) Back() bool {
	switch c.state.View {
	case ViewQuotes, ViewWallpapers:
		c.state.View = ViewCategories
		c.state.SelectedCategory = nil
	case ViewCategories, ViewSearch, ViewFavorites, ViewAIGenerator:
		c.state.View = ViewHome
	default:
		return false
	}
	return true
}

// Parent returns the view Back would move to from v, and false for home.
func Parent(v View) (View, bool) {
	switch v {
	case ViewQuotes, ViewWallpapers:
		return ViewCategories, true
	case ViewCategories, ViewSearch, ViewFavorites, ViewAIGenerator:
		return ViewHome, true
	default:
		return "", false
	}
}
