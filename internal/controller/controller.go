// Package controller owns the application state: navigation, the user's
// library, AI results and the ad flow. Presentation layers read Snapshot
// and call intents; they never mutate state directly.
package controller

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/reward"
	"github.com/blackwell-systems/inspirehub/internal/share"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// DefaultToastDuration is how long a notice stays visible.
const DefaultToastDuration = 3 * time.Second

// AI is the gateway surface the controller drives.
type AI interface {
	FetchDailyQuote(ctx context.Context) gateway.QuoteResult
	Search(ctx context.Context, query string) gateway.SearchResult
	GenerateWallpapers(ctx context.Context, prompt string) gateway.GenerateResult
}

// Deps are the components a Controller owns.
type Deps struct {
	Catalog *catalog.Store
	Prefs   *store.Prefs
	Library *library.Library
	AI      AI
	Logger  *log.Logger

	Downloader  *share.Downloader // nil means a default Downloader
	Clipboard   share.Clipboard   // nil means share.SystemClipboard
	DownloadDir string            // "" means the working directory

	AdTick        time.Duration // 0 means reward.DefaultTick
	ToastDuration time.Duration // 0 means DefaultToastDuration
}

// Controller is safe for concurrent use. Blocking intents (search,
// generation, daily quote) run on the caller's goroutine.
type Controller struct {
	catalog *catalog.Store
	prefs   *store.Prefs
	library *library.Library
	ai      AI
	ad      *reward.Flow
	logger  *log.Logger

	downloader  *share.Downloader
	clipboard   share.Clipboard
	downloadDir string

	toastDuration time.Duration

	mu        sync.Mutex
	nav       *nav.Controller
	search    SearchState
	searchSeq uint64
	generator GeneratorState
	daily     DailyQuoteState
	theme     store.Theme

	toast      string
	toastSeq   uint64
	toastTimer *time.Timer

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	unsubLibrary func()
}

// New wires a Controller and loads the stored theme.
func New(d Deps) *Controller {
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		catalog:       d.Catalog,
		prefs:         d.Prefs,
		library:       d.Library,
		ai:            d.AI,
		logger:        logger.WithPrefix("controller"),
		toastDuration: d.ToastDuration,
		downloader:    d.Downloader,
		clipboard:     d.Clipboard,
		downloadDir:   d.DownloadDir,
		nav:           nav.New(),
		subs:          make(map[int]func(Event)),
	}
	if c.toastDuration <= 0 {
		c.toastDuration = DefaultToastDuration
	}
	if c.downloader == nil {
		c.downloader = &share.Downloader{}
	}
	if c.clipboard == nil {
		c.clipboard = share.SystemClipboard{}
	}
	if c.downloadDir == "" {
		c.downloadDir = "."
	}

	theme, err := d.Prefs.Theme()
	if err != nil {
		c.logger.Warn("reading theme", "err", err)
	}
	c.theme = theme

	c.ad = reward.New(reward.Options{
		Tick:       d.AdTick,
		Logger:     logger,
		OnProgress: func(string, int) { c.emit(EventAd) },
		OnComplete: func(id string) {
			c.library.Unlock(id)
			c.emit(EventAd)
		},
	})
	c.unsubLibrary = c.library.Subscribe(func(ev library.Event) {
		if ev.Notice != "" {
			c.showToast(ev.Notice)
		}
		c.emit(EventLibrary)
	})
	return c
}

// Close cancels a playing ad and pending timers.
func (c *Controller) Close() {
	c.ad.Close()
	c.unsubLibrary()
	c.mu.Lock()
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	c.mu.Unlock()
}

// Catalog gives read access to the catalog.
func (c *Controller) Catalog() *catalog.Store { return c.catalog }

// Library gives read access to favorites, unlocks and generated wallpapers.
// Mutations must go through the controller's intents.
func (c *Controller) Library() *library.Library { return c.library }

// Subscribe registers fn to be called after every state change. fn runs
// on the goroutine that made the change and must not block.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) emit(kind EventKind) {
	c.subMu.Lock()
	fns := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	ev := Event{Kind: kind}
	for _, fn := range fns {
		fn(ev)
	}
}

// showToast displays msg and clears it after the toast duration unless a
// newer toast replaced it.
func (c *Controller) showToast(msg string) {
	c.mu.Lock()
	c.toastSeq++
	seq := c.toastSeq
	c.toast = msg
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	c.toastTimer = time.AfterFunc(c.toastDuration, func() {
		c.mu.Lock()
		cleared := c.toastSeq == seq
		if cleared {
			c.toast = ""
		}
		c.mu.Unlock()
		if cleared {
			c.emit(EventToast)
		}
	})
	c.mu.Unlock()
	c.emit(EventToast)
}
