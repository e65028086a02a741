package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/reward"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// ErrAlreadyAccessible is returned by RequestUnlock for items that need no
// unlock.
var ErrAlreadyAccessible = errors.New("item is not locked")

// ErrUnknownItem is returned for ids that name no quote or wallpaper.
var ErrUnknownItem = errors.New("unknown item")

// navigate applies a navigation intent and emits on success.
func (c *Controller) navigate(fn func() bool) bool {
	c.mu.Lock()
	ok := fn()
	c.mu.Unlock()
	if ok {
		c.emit(EventNav)
	}
	return ok
}

// Browse opens the category list.
func (c *Controller) Browse() bool {
	return c.navigate(func() bool { return c.nav.Browse() })
}

// ShowFavorites opens the favorites view.
func (c *Controller) ShowFavorites() bool {
	return c.navigate(func() bool { return c.nav.Favorites() })
}

// OpenGenerator opens the AI generator seeded with prompt. The caller
// starts Generate when the seed is non-empty.
func (c *Controller) OpenGenerator(prompt string) bool {
	return c.navigate(func() bool {
		if !c.nav.AIGenerator(prompt) {
			return false
		}
		c.generator.Prompt = strings.TrimSpace(prompt)
		return true
	})
}

// SelectCategory opens the quotes or wallpapers of category id.
func (c *Controller) SelectCategory(id string, ct catalog.ContentType) bool {
	cat, ok := c.catalog.Category(id)
	if !ok {
		return false
	}
	return c.navigate(func() bool { return c.nav.SelectCategory(cat, ct) })
}

// Back moves to the parent view.
func (c *Controller) Back() bool {
	return c.navigate(func() bool { return c.nav.Back() })
}

// SubmitSearch moves to the search view and runs the search. It returns
// false without calling the AI service when the query is blank or the
// current view does not allow searching. Only the latest search's result
// is ever applied.
func (c *Controller) SubmitSearch(ctx context.Context, query string) bool {
	c.mu.Lock()
	if !c.nav.Search(query) {
		c.mu.Unlock()
		return false
	}
	c.searchSeq++
	seq := c.searchSeq
	q := c.nav.State().SearchQuery
	c.search = SearchState{Query: q, Loading: true}
	c.mu.Unlock()
	c.emit(EventNav)
	c.emit(EventSearch)

	res := c.ai.Search(ctx, q)

	c.mu.Lock()
	if seq != c.searchSeq {
		c.mu.Unlock()
		c.logger.Debug("dropping stale search result", "query", q)
		return true
	}
	c.search.Loading = false
	if res.Failure != nil {
		if res.Failure.Class == gateway.ClassSuperseded {
			c.mu.Unlock()
			return true
		}
		c.search.Err = res.Failure.Message
	} else {
		c.search.Quotes = res.Quotes
		c.search.Wallpapers = res.Wallpapers
	}
	c.mu.Unlock()
	c.emit(EventSearch)
	return true
}

// Generate runs image generation for prompt. While a generation is in
// flight, further calls are ignored and report false.
func (c *Controller) Generate(ctx context.Context, prompt string) bool {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return false
	}
	c.mu.Lock()
	if c.generator.Generating {
		c.mu.Unlock()
		return false
	}
	c.generator = GeneratorState{Prompt: prompt, Generating: true}
	c.mu.Unlock()
	c.emit(EventGenerator)

	res := c.ai.GenerateWallpapers(ctx, prompt)

	c.mu.Lock()
	c.generator.Generating = false
	if res.Failure != nil {
		c.generator.Err = res.Failure.Message
		c.generator.Quota = res.Quota()
		c.generator.Links = res.Failure.Links
	} else {
		c.generator.Images = res.Wallpapers
	}
	c.mu.Unlock()
	c.emit(EventGenerator)
	return res.OK()
}

// LoadDailyQuote fetches the quote of the day.
func (c *Controller) LoadDailyQuote(ctx context.Context) {
	c.mu.Lock()
	c.daily = DailyQuoteState{Loading: true}
	c.mu.Unlock()
	c.emit(EventDailyQuote)

	res := c.ai.FetchDailyQuote(ctx)

	c.mu.Lock()
	c.daily.Loading = false
	if res.Failure != nil {
		c.daily.Err = res.Failure.Message
	} else {
		q := res.Quote
		c.daily.Quote = &q
	}
	c.mu.Unlock()
	c.emit(EventDailyQuote)
}

// ToggleFavorite flips id in the favorites set.
func (c *Controller) ToggleFavorite(id string) (bool, error) {
	return c.library.ToggleFavorite(id)
}

// RequestUnlock starts an ad for a locked premium item.
func (c *Controller) RequestUnlock(id string) error {
	if _, ok := c.catalog.Quote(id); !ok {
		if _, ok := c.library.Wallpaper(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
	}
	if c.library.Accessible(id) {
		return ErrAlreadyAccessible
	}
	if err := c.ad.Start(id); err != nil {
		return err
	}
	c.emit(EventAd)
	return nil
}

// CloseAd cancels the playing ad without unlocking.
func (c *Controller) CloseAd() bool {
	if !c.ad.Close() {
		return false
	}
	c.emit(EventAd)
	return true
}

// WaitAd blocks until the playing ad, if any, completes or is closed.
func (c *Controller) WaitAd() {
	c.ad.Wait()
}

// AdPlaying reports whether an ad is running.
func (c *Controller) AdPlaying() bool {
	return c.ad.State() != reward.StateIdle
}

// ToggleTheme switches between light and dark and persists the choice.
func (c *Controller) ToggleTheme() (store.Theme, error) {
	c.mu.Lock()
	c.theme = c.theme.Toggle()
	t := c.theme
	c.mu.Unlock()
	err := c.prefs.SetTheme(t)
	c.emit(EventTheme)
	return t, err
}

// SetTheme sets and persists t.
func (c *Controller) SetTheme(t store.Theme) error {
	if err := c.prefs.SetTheme(t); err != nil {
		return err
	}
	c.mu.Lock()
	c.theme = t
	c.mu.Unlock()
	c.emit(EventTheme)
	return nil
}
