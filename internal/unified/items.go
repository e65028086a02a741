package unified

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

// quoteItem is one row in a quote list.
type quoteItem struct {
	quote      catalog.Quote
	accessible bool
	favorited  bool
}

func (i quoteItem) FilterValue() string { return i.quote.Text + " " + i.quote.Author }

func quoteItems(lib *library.Library, qs []catalog.Quote) []list.Item {
	items := make([]list.Item, len(qs))
	for i, q := range qs {
		items[i] = quoteItem{quote: q, accessible: lib.Accessible(q.ID), favorited: lib.IsFavorited(q.ID)}
	}
	return items
}

func newQuoteList() list.Model {
	l := list.New(nil, tui.NewDelegateSized(renderQuoteItem, 2, 1), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

func renderQuoteItem(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(quoteItem)
	if !ok {
		return
	}

	width := m.Width() - 6
	if width < 20 {
		width = 20
	}

	var text, byline string
	if it.accessible {
		text = xansi.Truncate(fmt.Sprintf("%q", it.quote.Text), width, "…")
		byline = tui.StyleAuthor.Render("- " + it.quote.Author)
	} else {
		text = tui.StyleLocked.Render("🔒 Premium quote")
		byline = tui.StyleHelp.Render("press u to watch an ad and unlock")
	}
	if it.quote.Premium && it.accessible {
		byline += " " + tui.StyleUnlocked.Render("✓ premium")
	}
	if it.favorited {
		byline += " " + tui.StyleFavorite.Render("♥")
	}

	if index == m.Index() {
		_, _ = fmt.Fprintf(w, "%s\n  %s", tui.StyleHighlight.Render("› ")+text, byline)
	} else {
		_, _ = fmt.Fprintf(w, "  %s\n  %s", tui.StyleNormal.Render(text), byline)
	}
}
