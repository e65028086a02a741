package controller

import (
	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/reward"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// EventKind says which part of the snapshot changed.
type EventKind string

const (
	EventNav        EventKind = "nav"
	EventSearch     EventKind = "search"
	EventGenerator  EventKind = "generator"
	EventDailyQuote EventKind = "daily-quote"
	EventLibrary    EventKind = "library"
	EventTheme      EventKind = "theme"
	EventToast      EventKind = "toast"
	EventAd         EventKind = "ad"
)

// Event is emitted after a state change; read Snapshot for the new state.
type Event struct {
	Kind EventKind
}

// SearchState is the transient state of the search view.
type SearchState struct {
	Query      string
	Quotes     []catalog.Quote
	Wallpapers []catalog.Wallpaper
	Loading    bool
	Err        string
}

// GeneratorState is the transient state of the AI generator view.
type GeneratorState struct {
	Prompt     string
	Generating bool
	Images     []catalog.Wallpaper
	Err        string
	Quota      bool
	Links      []string
}

// DailyQuoteState is the state of the home screen's quote of the day.
type DailyQuoteState struct {
	Quote   *catalog.DailyQuote
	Loading bool
	Err     string
}

// AdState mirrors the reward flow. Playing is false once the ad has
// reached the end, even before the flow resets.
type AdState struct {
	Playing  bool
	Target   string
	Progress int
}

// Snapshot is a copy of everything a presentation layer renders besides
// the catalog and library.
type Snapshot struct {
	Nav       nav.State
	Search    SearchState
	Generator GeneratorState
	Daily     DailyQuoteState
	Theme     store.Theme
	Toast     string
	Ad        AdState
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{
		Nav:       c.nav.State(),
		Search:    c.search,
		Generator: c.generator,
		Daily:     c.daily,
		Theme:     c.theme,
		Toast:     c.toast,
	}
	c.mu.Unlock()

	s.Search.Quotes = append([]catalog.Quote(nil), s.Search.Quotes...)
	s.Search.Wallpapers = append([]catalog.Wallpaper(nil), s.Search.Wallpapers...)
	s.Generator.Images = append([]catalog.Wallpaper(nil), s.Generator.Images...)
	s.Generator.Links = append([]string(nil), s.Generator.Links...)
	if s.Daily.Quote != nil {
		q := *s.Daily.Quote
		q.Sources = append([]catalog.Source(nil), q.Sources...)
		s.Daily.Quote = &q
	}

	s.Ad = AdState{
		Playing:  c.ad.State() == reward.StatePlaying,
		Target:   c.ad.Target(),
		Progress: c.ad.Progress(),
	}
	return s
}
