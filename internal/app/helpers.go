package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
)

// printField prints an aligned key/value line.
func printField(key, value string) {
	fmt.Fprintf(out, "  %-12s %s\n", color.CyanString(key), value)
}

// lockMark returns the marker shown beside premium items.
func lockMark(id string, premium bool) string {
	if !premium {
		return ""
	}
	if lib.Accessible(id) {
		return color.GreenString(" [unlocked]")
	}
	return color.YellowString(" [locked]")
}

func favMark(id string) string {
	if lib.IsFavorited(id) {
		return color.RedString(" ♥")
	}
	return ""
}

func printQuote(q catalog.Quote) {
	fmt.Fprintf(out, "  %-10s  %q  %s%s%s\n",
		color.WhiteString(q.ID),
		q.Text,
		color.HiBlackString("- "+q.Author),
		lockMark(q.ID, q.Premium),
		favMark(q.ID),
	)
}

func printWallpaper(w catalog.Wallpaper) {
	url := w.ImageURL
	if strings.HasPrefix(url, "data:") {
		url = "(generated image)"
	}
	fmt.Fprintf(out, "  %-10s  %s%s%s\n",
		color.WhiteString(w.ID),
		url,
		lockMark(w.ID, w.Premium),
		favMark(w.ID),
	)
}

// quoteJSON is the CLI's JSON rendering of a quote.
type quoteJSON struct {
	catalog.Quote
	Accessible bool `json:"accessible"`
	Favorited  bool `json:"favorited"`
}

type wallpaperJSON struct {
	catalog.Wallpaper
	Accessible bool `json:"accessible"`
	Favorited  bool `json:"favorited"`
}

func quotesJSON(qs []catalog.Quote) []quoteJSON {
	res := make([]quoteJSON, 0, len(qs))
	for _, q := range qs {
		res = append(res, quoteJSON{Quote: q, Accessible: lib.Accessible(q.ID), Favorited: lib.IsFavorited(q.ID)})
	}
	return res
}

func wallpapersJSON(ws []catalog.Wallpaper) []wallpaperJSON {
	res := make([]wallpaperJSON, 0, len(ws))
	for _, w := range ws {
		res = append(res, wallpaperJSON{Wallpaper: w, Accessible: lib.Accessible(w.ID), Favorited: lib.IsFavorited(w.ID)})
	}
	return res
}
