package unified

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/store"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

func (m Model) View() string {
	var content string
	if m.snap.Ad.Playing {
		content = m.viewAd()
	} else {
		switch m.snap.Nav.View {
		case nav.ViewHome:
			content = m.viewHome()
		case nav.ViewCategories:
			content = m.viewCategories()
		case nav.ViewQuotes, nav.ViewWallpapers:
			content = m.viewCategoryContent()
		case nav.ViewSearch:
			content = m.viewSearch()
		case nav.ViewFavorites:
			content = m.viewFavorites()
		case nav.ViewAIGenerator:
			content = m.viewGenerator()
		default:
			content = "Unknown view"
		}
	}

	parts := []string{content, ""}
	if m.notice != "" {
		parts = append(parts, tui.StyleError.Render(m.notice))
	}
	if toast := tui.RenderToast(m.snap.Toast); toast != "" {
		parts = append(parts, toast)
	}
	parts = append(parts, tui.RenderFooterBar(m.shortcuts(), m.activeCmd, m.innerWidth()))

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	outer := lipgloss.NewStyle().Padding(1, 2)
	return outer.Render(tui.StyleBorder.Render(inner.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))))
}

// innerWidth is the usable content width inside the frame.
func (m Model) innerWidth() int {
	h, _ := tui.StyleBorder.GetFrameSize()
	w := m.width - h - 8
	if w < 40 {
		return 40
	}
	return w
}

func (m Model) viewSearch() string {
	s := m.snap.Search
	var b strings.Builder
	b.WriteString(tui.StyleAI.Render("Results for "))
	b.WriteString(tui.StyleHeader.Render(fmt.Sprintf("%q", s.Query)))
	b.WriteString("\n\n")

	switch {
	case s.Loading:
		b.WriteString(m.spinner.View() + " Searching...")
		return b.String()
	case s.Err != "":
		b.WriteString(tui.StyleError.Render(s.Err))
		return b.String()
	case len(s.Quotes) == 0 && len(s.Wallpapers) == 0:
		b.WriteString(tui.StyleHelp.Render("Nothing matched. Press g to generate a wallpaper from your search instead."))
		return b.String()
	}

	b.WriteString(m.viewPanes())
	return b.String()
}

func (m Model) viewFavorites() string {
	var b strings.Builder
	b.WriteString(tui.StyleHeader.Render("Favorites"))
	b.WriteString("\n\n")
	if len(m.quotes.Items()) == 0 && m.carousel.Len() == 0 {
		b.WriteString(tui.StyleHelp.Render("Nothing saved yet. Press f on a quote or wallpaper to add it."))
		return b.String()
	}
	b.WriteString(m.viewPanes())
	return b.String()
}

// viewPanes renders the quote list above the wallpaper carousel.
func (m Model) viewPanes() string {
	var parts []string
	if n := len(m.quotes.Items()); n > 0 {
		parts = append(parts, paneTitle(fmt.Sprintf("Quotes (%d)", n), m.focus == paneQuotes), m.quotes.View())
	}
	if n := m.carousel.Len(); n > 0 {
		parts = append(parts, paneTitle(fmt.Sprintf("Wallpapers (%d)", n), m.focus == paneWallpapers), m.carousel.View(m.focus == paneWallpapers))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func paneTitle(title string, focused bool) string {
	if focused {
		return tui.StyleHighlight.Render("▸ " + title)
	}
	return tui.StyleHelp.Render("  " + title)
}

func (m Model) viewAd() string {
	ad := m.snap.Ad
	var b strings.Builder
	b.WriteString(tui.StyleHeader.Render("Advertisement"))
	b.WriteString("\n\n")
	b.WriteString(tui.StyleHelp.Render("Your content unlocks when the ad finishes."))
	b.WriteString("\n\n")
	b.WriteString(m.adBar.ViewAs(float64(ad.Progress) / 100))
	b.WriteString("\n\n")
	b.WriteString(tui.StyleHelp.Render("esc: close ad (item stays locked)"))
	return b.String()
}

func (m Model) shortcuts() []tui.ShortcutEntry {
	themeLabel := "t Dark mode"
	if m.snap.Theme == store.ThemeDark {
		themeLabel = "t Light mode"
	}

	switch {
	case m.snap.Ad.Playing:
		return []tui.ShortcutEntry{{Key: "esc", Label: "esc Close ad"}}
	case m.search.Focused(), m.prompt.Focused():
		return []tui.ShortcutEntry{{Label: "enter Submit"}, {Label: "esc Cancel"}}
	}

	switch m.snap.Nav.View {
	case nav.ViewHome:
		return []tui.ShortcutEntry{
			{Label: "enter Open"},
			{Key: "/", Label: "/ Search"},
			{Key: "t", Label: themeLabel},
			{Label: "q Quit"},
		}
	case nav.ViewCategories:
		return []tui.ShortcutEntry{
			{Label: "enter Quotes"},
			{Label: "w Wallpapers"},
			{Label: "/ Filter"},
			{Label: "esc Back"},
		}
	case nav.ViewAIGenerator:
		return []tui.ShortcutEntry{
			{Label: "e Edit idea"},
			{Label: "enter Generate"},
			{Key: "f", Label: "f Favorite"},
			{Key: "d", Label: "d Download"},
			{Label: "←→ Browse"},
			{Label: "esc Back"},
		}
	}

	entries := []tui.ShortcutEntry{
		{Key: "f", Label: "f Favorite"},
		{Key: "u", Label: "u Unlock"},
	}
	if m.wallpaperFocused() {
		entries = append(entries, tui.ShortcutEntry{Key: "d", Label: "d Download"})
	} else {
		entries = append(entries, tui.ShortcutEntry{Key: "c", Label: "c Copy"})
	}
	if m.hasBothPanes() {
		entries = append(entries, tui.ShortcutEntry{Label: "tab Switch"})
	}
	if m.snap.Nav.View == nav.ViewSearch {
		entries = append(entries, tui.ShortcutEntry{Label: "g Generate"})
	}
	return append(entries, tui.ShortcutEntry{Key: "t", Label: themeLabel}, tui.ShortcutEntry{Label: "esc Back"})
}
