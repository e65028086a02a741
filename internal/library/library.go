// Package library tracks per-user state over the catalog: favorites,
// unlocked premium items and wallpapers generated during the session.
package library

import (
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/metrics"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// Notices shown to the user after a mutation.
const (
	NoticeFavorited   = "Added to favorites!"
	NoticeUnfavorited = "Removed from favorites"
	NoticeUnlocked    = "Content unlocked!"
)

// EventKind identifies what changed.
type EventKind string

const (
	EventFavorite  EventKind = "favorite"
	EventUnlock    EventKind = "unlock"
	EventGenerated EventKind = "generated"
)

// Event describes one change to the library.
type Event struct {
	Kind      EventKind
	IDs       []string
	Favorited bool   // EventFavorite only
	Notice    string // empty when nothing should be shown
}

// Options configures a Library.
type Options struct {
	// PersistUnlocks keeps unlocked ids across sessions.
	PersistUnlocks bool
	Logger         *log.Logger
}

// Library is safe for concurrent use.
type Library struct {
	catalog *catalog.Store
	prefs   *store.Prefs
	opts    Options
	logger  *log.Logger

	mu        sync.RWMutex
	favorites map[string]bool
	unlocked  map[string]bool
	generated []catalog.Wallpaper

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New loads persisted favorites (and unlocks, when persisted) from prefs.
// Unreadable stored sets are logged and treated as empty.
func New(cat *catalog.Store, prefs *store.Prefs, opts Options) *Library {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Library{
		catalog:   cat,
		prefs:     prefs,
		opts:      opts,
		logger:    logger.WithPrefix("library"),
		favorites: make(map[string]bool),
		unlocked:  make(map[string]bool),
		subs:      make(map[int]func(Event)),
	}

	favs, err := prefs.Favorites()
	if err != nil {
		l.logger.Warn("ignoring stored favorites", "err", err)
	}
	for _, id := range favs {
		l.favorites[id] = true
	}

	if opts.PersistUnlocks {
		ids, err := prefs.Unlocked()
		if err != nil {
			l.logger.Warn("ignoring stored unlocks", "err", err)
		}
		for _, id := range ids {
			if cat.IsPremium(id) {
				l.unlocked[id] = true
			}
		}
	}
	metrics.SetFavorites(len(l.favorites))
	return l
}

// Subscribe registers fn for every subsequent Event. fn runs on the
// goroutine that made the change and must not block.
func (l *Library) Subscribe(fn func(Event)) (unsubscribe func()) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		delete(l.subs, id)
	}
}

func (l *Library) emit(ev Event) {
	l.subMu.Lock()
	fns := make([]func(Event), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// --- Favorites ---

// ToggleFavorite flips id's membership and persists the whole set. The
// in-memory state changes even when persisting fails.
func (l *Library) ToggleFavorite(id string) (favorited bool, err error) {
	l.mu.Lock()
	favorited = !l.favorites[id]
	if favorited {
		l.favorites[id] = true
	} else {
		delete(l.favorites, id)
	}
	ids := sortedKeys(l.favorites)
	l.mu.Unlock()

	metrics.SetFavorites(len(ids))
	if err = l.prefs.SetFavorites(ids); err != nil {
		l.logger.Error("persisting favorites", "err", err)
	}

	notice := NoticeUnfavorited
	if favorited {
		notice = NoticeFavorited
	}
	l.emit(Event{Kind: EventFavorite, IDs: []string{id}, Favorited: favorited, Notice: notice})
	return favorited, err
}

// IsFavorited reports whether id is a favorite.
func (l *Library) IsFavorited(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.favorites[id]
}

// Favorites returns the favorite ids, sorted.
func (l *Library) Favorites() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedKeys(l.favorites)
}

// FavoriteQuotes returns favorited quotes in catalog order.
func (l *Library) FavoriteQuotes() []catalog.Quote {
	var out []catalog.Quote
	for _, q := range l.catalog.Quotes() {
		if l.IsFavorited(q.ID) {
			out = append(out, q)
		}
	}
	return out
}

// FavoriteWallpapers returns favorited wallpapers, catalog first, then
// generated ones.
func (l *Library) FavoriteWallpapers() []catalog.Wallpaper {
	var out []catalog.Wallpaper
	for _, w := range l.AllWallpapers() {
		if l.IsFavorited(w.ID) {
			out = append(out, w)
		}
	}
	return out
}

// --- Unlocks ---

// Unlock admits a premium id into the unlocked set. Non-premium and
// already unlocked ids are a no-op and report false.
func (l *Library) Unlock(id string) bool {
	if !l.catalog.IsPremium(id) {
		return false
	}
	l.mu.Lock()
	if l.unlocked[id] {
		l.mu.Unlock()
		return false
	}
	l.unlocked[id] = true
	ids := sortedKeys(l.unlocked)
	l.mu.Unlock()

	if l.opts.PersistUnlocks {
		if err := l.prefs.SetUnlocked(ids); err != nil {
			l.logger.Error("persisting unlocks", "err", err)
		}
	}
	l.logger.Info("unlocked", "id", id)
	l.emit(Event{Kind: EventUnlock, IDs: []string{id}, Notice: NoticeUnlocked})
	return true
}

// IsUnlocked reports whether id was unlocked.
func (l *Library) IsUnlocked(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.unlocked[id]
}

// Accessible reports whether id can be shown without an unlock: it is not
// premium, or it has been unlocked.
func (l *Library) Accessible(id string) bool {
	return catalog.Accessible(l.catalog.IsPremium(id), l.IsUnlocked, id)
}

// --- Generated wallpapers ---

// AddGenerated appends ws to the generated collection. It never shrinks.
func (l *Library) AddGenerated(ws []catalog.Wallpaper) {
	if len(ws) == 0 {
		return
	}
	l.mu.Lock()
	l.generated = append(l.generated, ws...)
	l.mu.Unlock()

	ids := make([]string, len(ws))
	for i, w := range ws {
		ids[i] = w.ID
	}
	l.emit(Event{Kind: EventGenerated, IDs: ids})
}

// Generated returns the generated wallpapers, oldest first.
func (l *Library) Generated() []catalog.Wallpaper {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]catalog.Wallpaper(nil), l.generated...)
}

// Wallpaper finds a catalog or generated wallpaper by id.
func (l *Library) Wallpaper(id string) (catalog.Wallpaper, bool) {
	if w, ok := l.catalog.Wallpaper(id); ok {
		return w, true
	}
	for _, w := range l.Generated() {
		if w.ID == id {
			return w, true
		}
	}
	return catalog.Wallpaper{}, false
}

// AllWallpapers returns catalog wallpapers followed by generated ones.
func (l *Library) AllWallpapers() []catalog.Wallpaper {
	return append(l.catalog.Wallpapers(), l.Generated()...)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
