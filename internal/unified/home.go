package unified

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

// MenuItem represents an action in the home menu
type MenuItem struct {
	Target      nav.View
	Label       string
	Description string
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string {
	return m.Label + " " + m.Description
}

var menuItems = []MenuItem{
	{Target: nav.ViewCategories, Label: "Browse Categories", Description: "Quotes and wallpapers by topic"},
	{Target: nav.ViewAIGenerator, Label: "AI Wallpaper Generator", Description: "Create wallpapers from an idea"},
	{Target: nav.ViewFavorites, Label: "Favorites", Description: "Everything you have saved"},
}

func newMenuList() list.Model {
	items := make([]list.Item, len(menuItems))
	for i, it := range menuItems {
		items[i] = it
	}
	l := list.New(items, tui.NewDelegate(renderMenuItem), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	return l
}

func renderMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok {
		return
	}

	display := fmt.Sprintf("%-24s %s", menuItem.Label, tui.StyleHelp.Render(menuItem.Description))
	if index == m.Index() {
		_, _ = fmt.Fprint(w, tui.StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+tui.StyleNormal.Render(display))
	}
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, m.keys.Search):
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case msg.String() == "r" && m.snap.Daily.Err != "":
		return m, m.run(m.ctrl.LoadDailyQuote)

	case key.Matches(msg, m.keys.Select):
		if item, ok := m.menu.SelectedItem().(MenuItem); ok {
			target := item.Target
			return m, func() tea.Msg { return NavigateMsg{Target: target} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) viewHome() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("InspireHub")
	subtitle := tui.StyleHelp.Render(fmt.Sprintf("%d categories · %d quotes · %d wallpapers",
		len(m.cat.Categories()), len(m.cat.Quotes()), len(m.lib.AllWallpapers())))

	parts := []string{
		title + "  " + subtitle,
		"",
		m.viewDailyQuote(),
		"",
		m.search.View(),
		"",
		m.menu.View(),
	}

	if featured := m.cat.FeaturedQuotes(); len(featured) > 0 {
		var b strings.Builder
		b.WriteString(tui.StyleHeader.Render("Featured"))
		for _, q := range featured {
			b.WriteString("\n  ")
			if q.Premium && !m.lib.Accessible(q.ID) {
				b.WriteString(tui.StyleLocked.Render("🔒 Premium quote"))
				continue
			}
			b.WriteString(xansi.Truncate(fmt.Sprintf("%q", q.Text), m.innerWidth()-20, "…"))
			b.WriteString(" " + tui.StyleAuthor.Render("- "+q.Author))
		}
		parts = append(parts, "", b.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewDailyQuote() string {
	d := m.snap.Daily
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tui.ColorPurple).
		Padding(0, 1).
		Width(m.innerWidth() - 4)

	head := tui.StyleAI.Render("Quote of the day")
	switch {
	case d.Loading:
		return card.Render(head + "\n" + m.spinner.View() + " Finding today's inspiration...")
	case d.Err != "":
		return card.Render(head + "\n" + tui.StyleError.Render(d.Err) + "\n" + tui.StyleHelp.Render("r: retry"))
	case d.Quote == nil:
		return card.Render(head)
	}

	var b strings.Builder
	b.WriteString(head + "\n")
	b.WriteString(tui.StyleHeader.Render(fmt.Sprintf("%q", d.Quote.Text)))
	b.WriteString("\n" + tui.StyleAuthor.Render("- "+d.Quote.Author))
	for _, s := range d.Quote.Sources {
		b.WriteString("\n" + tui.StyleHelp.Render(xansi.Truncate("↗ "+s.Title+"  "+s.URI, m.innerWidth()-8, "…")))
	}
	return card.Render(b.String())
}
