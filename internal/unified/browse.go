package unified

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

// categoryItem is one row in the category list.
type categoryItem struct {
	category   catalog.Category
	quotes     int
	wallpapers int
}

func (i categoryItem) FilterValue() string { return i.category.Name }

var categoryIcons = map[catalog.Icon]string{
	catalog.IconBolt:     "⚡",
	catalog.IconHeart:    "♥",
	catalog.IconFire:     "🔥",
	catalog.IconBeaker:   "⚗",
	catalog.IconSparkles: "✨",
	catalog.IconLeaf:     "🍃",
	catalog.IconRocket:   "🚀",
	catalog.IconGlobe:    "🌍",
}

func newCategoryList(cat *catalog.Store) list.Model {
	var items []list.Item
	for _, c := range cat.Categories() {
		items = append(items, categoryItem{
			category:   c,
			quotes:     len(cat.QuotesIn(c.ID)),
			wallpapers: len(cat.WallpapersIn(c.ID)),
		})
	}
	l := list.New(items, tui.NewDelegate(renderCategoryItem), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	return l
}

func renderCategoryItem(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(categoryItem)
	if !ok {
		return
	}
	icon := categoryIcons[c.category.Icon]
	if icon == "" {
		icon = "•"
	}
	counts := tui.StyleHelp.Render(fmt.Sprintf("%d quotes · %d wallpapers", c.quotes, c.wallpapers))
	display := fmt.Sprintf("%s %-18s %s", icon, c.category.Name, counts)
	if index == m.Index() {
		_, _ = fmt.Fprint(w, tui.StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+tui.StyleNormal.Render(display))
	}
}

func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the filter prompt have every key while it is open.
	if m.categories.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.categories, cmd = m.categories.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Back()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.Select), msg.String() == "w":
		c, ok := m.categories.SelectedItem().(categoryItem)
		if !ok {
			return m, nil
		}
		target := nav.ViewQuotes
		if msg.String() == "w" {
			target = nav.ViewWallpapers
		}
		id := c.category.ID
		return m, func() tea.Msg { return NavigateMsg{Target: target, Arg: id} }
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m Model) viewCategories() string {
	return tui.StyleHeader.Render("Categories") + "\n\n" + m.categories.View()
}

func (m Model) viewCategoryContent() string {
	name := ""
	if c := m.snap.Nav.SelectedCategory; c != nil {
		name = c.Name
	}
	if m.snap.Nav.View == nav.ViewWallpapers {
		return tui.StyleHeader.Render(name+" wallpapers") + "\n\n" + m.carousel.View(true)
	}
	if len(m.quotes.Items()) == 0 {
		return tui.StyleHeader.Render(name+" quotes") + "\n\n" + tui.StyleHelp.Render("No quotes in this category.")
	}
	return tui.StyleHeader.Render(name+" quotes") + "\n\n" + m.quotes.View()
}
