package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
)

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("corrupt stored value")

// cachedQuote is the on-disk form of the daily quote cache entry.
type cachedQuote struct {
	Date  string             `json:"date"`
	Quote catalog.DailyQuote `json:"quote"`
}

// Prefs exposes typed accessors over a KV.
type Prefs struct {
	kv KV
}

// NewPrefs wraps kv.
func NewPrefs(kv KV) *Prefs {
	return &Prefs{kv: kv}
}

// KV returns the underlying store.
func (p *Prefs) KV() KV { return p.kv }

// Theme returns the stored theme, or ThemeLight when unset or unrecognized.
func (p *Prefs) Theme() (Theme, error) {
	v, ok, err := p.kv.Get(KeyTheme)
	if err != nil {
		return ThemeLight, err
	}
	if ok && Theme(v) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

// SetTheme stores t.
func (p *Prefs) SetTheme(t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return fmt.Errorf("invalid theme %q", t)
	}
	return p.kv.Set(KeyTheme, string(t))
}

// Favorites returns the stored favorite ids.
func (p *Prefs) Favorites() ([]string, error) {
	return p.getSet(KeyFavorites)
}

// SetFavorites stores ids as a JSON array.
func (p *Prefs) SetFavorites(ids []string) error {
	return p.setSet(KeyFavorites, ids)
}

// Unlocked returns the stored unlocked ids.
func (p *Prefs) Unlocked() ([]string, error) {
	return p.getSet(KeyUnlocked)
}

// SetUnlocked stores ids as a JSON array.
func (p *Prefs) SetUnlocked(ids []string) error {
	return p.setSet(KeyUnlocked, ids)
}

// DailyQuote returns the cached quote if it was stored for date.
// A value that fails to decode yields ErrCorrupt.
func (p *Prefs) DailyQuote(date string) (catalog.DailyQuote, bool, error) {
	v, ok, err := p.kv.Get(KeyDailyQuote)
	if err != nil || !ok {
		return catalog.DailyQuote{}, false, err
	}
	var c cachedQuote
	if err := json.Unmarshal([]byte(v), &c); err != nil {
		return catalog.DailyQuote{}, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyDailyQuote, err)
	}
	if c.Date != date {
		return catalog.DailyQuote{}, false, nil
	}
	return c.Quote, true, nil
}

// SetDailyQuote caches q under date.
func (p *Prefs) SetDailyQuote(date string, q catalog.DailyQuote) error {
	if q.Sources == nil {
		q.Sources = []catalog.Source{}
	}
	data, err := json.Marshal(cachedQuote{Date: date, Quote: q})
	if err != nil {
		return err
	}
	return p.kv.Set(KeyDailyQuote, string(data))
}

// ClearDailyQuote removes the cached quote.
func (p *Prefs) ClearDailyQuote() error {
	return p.kv.Delete(KeyDailyQuote)
}

func (p *Prefs) getSet(key string) ([]string, error) {
	v, ok, err := p.kv.Get(key)
	if err != nil || !ok {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(v), &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return ids, nil
}

func (p *Prefs) setSet(key string, ids []string) error {
	out := append([]string{}, ids...)
	sort.Strings(out)
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return p.kv.Set(key, string(data))
}
