package unified

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

// wallpaperCard is one wallpaper with its display state.
type wallpaperCard struct {
	wallpaper  catalog.Wallpaper
	accessible bool
	favorited  bool
}

func wallpaperCards(lib *library.Library, ws []catalog.Wallpaper) []wallpaperCard {
	cards := make([]wallpaperCard, len(ws))
	for i, w := range ws {
		cards[i] = wallpaperCard{wallpaper: w, accessible: lib.Accessible(w.ID), favorited: lib.IsFavorited(w.ID)}
	}
	return cards
}

// Carousel is a peeking single-row carousel of wallpaper cards. The active
// card is shown in the center; adjacent cards peek in from the sides.
type Carousel struct {
	cards  []wallpaperCard
	cursor int
	width  int
}

// SetItems replaces the cards, keeping the cursor in range.
func (c *Carousel) SetItems(cards []wallpaperCard) {
	c.cards = cards
	if c.cursor >= len(cards) {
		c.cursor = len(cards) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Len returns the number of cards.
func (c Carousel) Len() int { return len(c.cards) }

func (c *Carousel) Prev() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *Carousel) Next() {
	if c.cursor < len(c.cards)-1 {
		c.cursor++
	}
}

// Selected returns the wallpaper under the cursor.
func (c Carousel) Selected() (catalog.Wallpaper, bool) {
	if len(c.cards) == 0 {
		return catalog.Wallpaper{}, false
	}
	return c.cards[c.cursor].wallpaper, true
}

// View renders the carousel. focused=false dims the center card border.
func (c Carousel) View(focused bool) string {
	n := len(c.cards)
	if n == 0 {
		return tui.StyleHelp.Render("No wallpapers.")
	}

	const minPeekW = 8
	const gap = 2
	const maxCenterW = 36

	usable := c.width
	if usable <= 0 {
		usable = 80
	}
	centerW := usable - 2*(minPeekW+gap)
	if centerW > maxCenterW {
		centerW = maxCenterW
	}
	if centerW < 24 {
		centerW = 24
	}
	peekW := (usable - centerW - 2*gap) / 2
	if maxPeek := (centerW + 2) / 2; peekW > maxPeek {
		peekW = maxPeek
	}
	if peekW < minPeekW {
		peekW = minPeekW
	}

	// Phone wallpapers are 9:16; terminal cells are about 1:2.
	cardH := (centerW + 2) * 16 / 9 / 2
	if cardH > 14 {
		cardH = 14
	}
	if cardH < 8 {
		cardH = 8
	}

	dots := make([]string, n)
	for i := range dots {
		if i == c.cursor {
			dots[i] = lipgloss.NewStyle().Foreground(tui.ColorYellow).Render("●")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("○")
		}
	}

	center := c.renderCard(c.cursor, centerW, cardH, focused)
	var left, right string
	if c.cursor > 0 {
		left = peekRight(c.renderCard(c.cursor-1, centerW, cardH, false), peekW)
	} else {
		left = peekRight(ghostCard(centerW, cardH), peekW)
	}
	if c.cursor < n-1 {
		right = peekLeft(c.renderCard(c.cursor+1, centerW, cardH, false), peekW)
	} else {
		right = peekLeft(ghostCard(centerW, cardH), peekW)
	}

	gapBlock := strings.Repeat(" ", gap)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, gapBlock, center, gapBlock, right)
	return strings.Join(dots, " ") + "\n\n" + row
}

func (c Carousel) renderCard(i, cardW, cardH int, active bool) string {
	card := c.cards[i]
	w := card.wallpaper
	inner := cardW - 2

	var lines []string
	if !card.accessible {
		lines = append(lines, tui.StyleLocked.Render("🔒 Premium"), "", tui.StyleHelp.Render("u: watch ad to unlock"))
	} else {
		lines = append(lines, xansi.Truncate(w.ID, inner, "…"), "", xansi.Truncate(imageLabel(w.ImageURL), inner, "…"))
		if w.Premium {
			lines = append(lines, tui.StyleUnlocked.Render("✓ unlocked"))
		}
	}
	if card.favorited {
		lines = append(lines, tui.StyleFavorite.Render("♥ favorite"))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(cardW).Height(cardH).Padding(1, 1)
	switch {
	case active:
		style = style.BorderForeground(tui.ColorYellow)
	case card.favorited:
		style = style.BorderForeground(tui.ColorRed).Foreground(lipgloss.Color("242"))
	default:
		style = style.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("242"))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// imageLabel names an image source without dumping a data URL.
func imageLabel(imageURL string) string {
	if strings.HasPrefix(imageURL, "data:") {
		return "✨ AI generated"
	}
	u, err := url.Parse(imageURL)
	if err != nil || u.Host == "" {
		return imageURL
	}
	return u.Host + u.Path
}

// peekLeft clips a rendered block to its first n visible columns.
func peekLeft(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = xansi.Truncate(line, n, "")
	}
	return strings.Join(lines, "\n")
}

// peekRight clips a rendered block to its last n visible columns.
func peekRight(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		w := xansi.StringWidth(line)
		if w > n {
			lines[i] = xansi.TruncateLeft(line, w-n, "")
		}
	}
	return strings.Join(lines, "\n")
}

// ghostCard is a blank dim card that keeps the row's rhythm at the ends.
func ghostCard(cardW, cardH int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("235")).
		Width(cardW).Height(cardH).
		Render("")
}
