// Package unified is the interactive InspireHub app: one bubbletea program
// whose screens follow the controller's navigation state.
package unified

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/controller"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

// pane selects which half of a split view has focus.
type pane int

const (
	paneQuotes pane = iota
	paneWallpapers
)

// Model is the unified TUI orchestrator. Navigation state lives in the
// controller; the model renders whatever view the controller reports.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	lib    *library.Library
	cat    *catalog.Store
	events chan controller.Event
	unsub  func()

	snap      controller.Snapshot
	keys      tui.StandardKeys
	width     int
	height    int
	activeCmd string
	notice    string // local error line, cleared on the next key
	focus     pane

	menu       list.Model
	categories list.Model
	quotes     list.Model
	carousel   Carousel
	search     textinput.Model
	prompt     textinput.Model
	spinner    spinner.Model
	adBar      progress.Model
}

// New builds the app model and subscribes it to ctrl. Call Close when the
// program exits.
func New(ctx context.Context, ctrl *controller.Controller) Model {
	events := make(chan controller.Event, 64)
	unsub := ctrl.Subscribe(func(ev controller.Event) {
		// A full channel already holds a pending refresh.
		select {
		case events <- ev:
		default:
		}
	})

	search := textinput.New()
	search.Placeholder = "How are you feeling today?"
	search.Prompt = "/ "
	search.CharLimit = 200

	prompt := textinput.New()
	prompt.Placeholder = "Describe your wallpaper idea"
	prompt.Prompt = "✨ "
	prompt.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.StyleAI

	m := Model{
		ctx:        ctx,
		ctrl:       ctrl,
		lib:        ctrl.Library(),
		cat:        ctrl.Catalog(),
		events:     events,
		unsub:      unsub,
		keys:       tui.NewStandardKeys(),
		menu:       newMenuList(),
		categories: newCategoryList(ctrl.Catalog()),
		quotes:     newQuoteList(),
		search:     search,
		prompt:     prompt,
		spinner:    sp,
		adBar:      progress.New(progress.WithDefaultGradient()),
	}
	m.snap = ctrl.Snapshot()
	tui.ApplyTheme(m.snap.Theme)
	m.sync()
	return m
}

// Close unsubscribes from the controller.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForEvent(),
		m.spinner.Tick,
		m.run(m.ctrl.LoadDailyQuote),
	)
}

// waitForEvent blocks on the controller's event channel.
func (m Model) waitForEvent() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return controllerEventMsg(ev)
	}
}

// run executes a blocking intent off the update loop.
func (m Model) run(fn func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return intentDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case controllerEventMsg:
		m.snap = m.ctrl.Snapshot()
		if msg.Kind == controller.EventTheme {
			tui.ApplyTheme(m.snap.Theme)
		}
		m.sync()
		return m, m.waitForEvent()

	case intentDoneMsg:
		return m, nil

	case NavigateMsg:
		return m.handleNavigation(msg)

	case QuitAppMsg:
		return m, tea.Quit

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.notice = ""
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, func() tea.Msg { return QuitAppMsg{} }
	}

	// The ad covers every view until it finishes or is closed.
	if m.snap.Ad.Playing {
		switch msg.String() {
		case "esc", "q", "x":
			m.ctrl.CloseAd()
		}
		return m, nil
	}

	if m.search.Focused() || m.prompt.Focused() {
		return m.updateInput(msg)
	}

	switch m.snap.Nav.View {
	case nav.ViewHome:
		return m.updateHome(msg)
	case nav.ViewCategories:
		return m.updateCategories(msg)
	case nav.ViewAIGenerator:
		return m.updateGenerator(msg)
	default:
		return m.updateContent(msg)
	}
}

// updateContent handles the views that list quotes and wallpapers.
func (m Model) updateContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Back()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case msg.String() == "tab" && m.hasBothPanes():
		if m.focus == paneQuotes {
			m.focus = paneWallpapers
		} else {
			m.focus = paneQuotes
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, m.keys.Unlock):
		return m.requestUnlock()

	case key.Matches(msg, m.keys.Download):
		return m.downloadWallpaper()

	case key.Matches(msg, m.keys.Copy):
		return m.copyQuote()

	case msg.String() == "g" && m.snap.Nav.View == nav.ViewSearch:
		q := m.snap.Nav.SearchQuery
		return m, func() tea.Msg { return NavigateMsg{Target: nav.ViewAIGenerator, Arg: q} }
	}

	if m.focus == paneWallpapers || m.snap.Nav.View == nav.ViewWallpapers {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.carousel.Prev()
		case key.Matches(msg, m.keys.Right):
			m.carousel.Next()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.quotes, cmd = m.quotes.Update(msg)
	return m, cmd
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
	case m.prompt.Focused():
		m.prompt, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

// updateInput routes keys to whichever text input has focus.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.prompt.Blur()
		return m, nil

	case "enter":
		if m.search.Focused() {
			q := m.search.Value()
			m.search.Blur()
			m.search.SetValue("")
			return m, func() tea.Msg { return NavigateMsg{Target: nav.ViewSearch, Arg: q} }
		}
		return m.startGenerate()
	}
	return m.updateFocused(msg)
}

func (m Model) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	m.focus = paneQuotes
	switch msg.Target {
	case nav.ViewCategories:
		m.ctrl.Browse()

	case nav.ViewFavorites:
		m.ctrl.ShowFavorites()

	case nav.ViewQuotes:
		m.ctrl.SelectCategory(msg.Arg, catalog.ContentQuotes)

	case nav.ViewWallpapers:
		m.ctrl.SelectCategory(msg.Arg, catalog.ContentWallpapers)

	case nav.ViewSearch:
		q := msg.Arg
		ctrl := m.ctrl
		return m, m.run(func(ctx context.Context) { ctrl.SubmitSearch(ctx, q) })

	case nav.ViewAIGenerator:
		if !m.ctrl.OpenGenerator(msg.Arg) {
			return m, nil
		}
		m.prompt.SetValue(msg.Arg)
		if msg.Arg != "" {
			return m.startGenerate()
		}
		m.prompt.Focus()
		return m, textinput.Blink

	case nav.ViewHome:
		for m.ctrl.Back() {
			// walk up to home
		}
	}
	return m, nil
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if _, err := m.ctrl.ToggleTheme(); err != nil {
		m.notice = "Could not save theme: " + err.Error()
	}
	m.activeCmd = "t"
	return m, tui.HighlightCmd()
}

// selectedID returns the id of the focused quote or wallpaper.
func (m Model) selectedID() string {
	if m.wallpaperFocused() {
		if w, ok := m.carousel.Selected(); ok {
			return w.ID
		}
		return ""
	}
	if it, ok := m.quotes.SelectedItem().(quoteItem); ok {
		return it.quote.ID
	}
	return ""
}

func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}
	if _, err := m.ctrl.ToggleFavorite(id); err != nil {
		m.notice = "Could not save favorites: " + err.Error()
	}
	m.activeCmd = "f"
	return m, tui.HighlightCmd()
}

func (m Model) requestUnlock() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}
	if err := m.ctrl.RequestUnlock(id); err != nil {
		if !errors.Is(err, controller.ErrAlreadyAccessible) {
			m.notice = err.Error()
		}
		return m, nil
	}
	m.activeCmd = "u"
	return m, tui.HighlightCmd()
}

// downloadWallpaper saves the focused wallpaper into the download
// directory. The result arrives as a toast.
func (m Model) downloadWallpaper() (tea.Model, tea.Cmd) {
	if !m.wallpaperFocused() {
		return m, nil
	}
	w, ok := m.carousel.Selected()
	if !ok {
		return m, nil
	}
	if !m.lib.Accessible(w.ID) {
		m.notice = controller.ErrLocked.Error()
		return m, nil
	}
	ctrl, id := m.ctrl, w.ID
	return m, m.run(func(ctx context.Context) {
		_, _, _ = ctrl.DownloadWallpaper(ctx, id, "")
	})
}

// copyQuote puts the focused quote on the clipboard.
func (m Model) copyQuote() (tea.Model, tea.Cmd) {
	if m.wallpaperFocused() {
		return m, nil
	}
	it, ok := m.quotes.SelectedItem().(quoteItem)
	if !ok {
		return m, nil
	}
	if _, err := m.ctrl.CopyQuote(it.quote.ID); errors.Is(err, controller.ErrLocked) {
		m.notice = err.Error()
		return m, nil
	}
	m.activeCmd = "c"
	return m, tui.HighlightCmd()
}

// wallpaperFocused reports whether keys act on the carousel.
func (m Model) wallpaperFocused() bool {
	v := m.snap.Nav.View
	return v == nav.ViewWallpapers || v == nav.ViewAIGenerator || m.focus == paneWallpapers
}

// hasBothPanes reports whether the current view shows quotes and wallpapers.
func (m Model) hasBothPanes() bool {
	v := m.snap.Nav.View
	return v == nav.ViewSearch || v == nav.ViewFavorites
}

// sync reloads the list contents for the current view.
func (m *Model) sync() {
	var qs []catalog.Quote
	var ws []catalog.Wallpaper

	switch m.snap.Nav.View {
	case nav.ViewQuotes:
		if c := m.snap.Nav.SelectedCategory; c != nil {
			qs = m.cat.QuotesIn(c.ID)
		}
	case nav.ViewWallpapers:
		if c := m.snap.Nav.SelectedCategory; c != nil {
			ws = m.cat.WallpapersIn(c.ID)
		}
	case nav.ViewSearch:
		qs = m.snap.Search.Quotes
		ws = m.snap.Search.Wallpapers
	case nav.ViewFavorites:
		qs = m.lib.FavoriteQuotes()
		ws = m.lib.FavoriteWallpapers()
	case nav.ViewAIGenerator:
		ws = m.snap.Generator.Images
	}

	idx := m.quotes.Index()
	m.quotes.SetItems(quoteItems(m.lib, qs))
	if idx < len(qs) {
		m.quotes.Select(idx)
	}
	m.carousel.SetItems(wallpaperCards(m.lib, ws))

	if m.focus == paneQuotes && len(qs) == 0 && len(ws) > 0 {
		m.focus = paneWallpapers
	}
}

func (m *Model) resize() {
	_, v := tui.StyleBorder.GetFrameSize()
	w := m.innerWidth()
	listH := m.height - v - 12
	if listH < 5 {
		listH = 5
	}
	m.menu.SetSize(w, len(menuItems))
	m.categories.SetSize(w, listH)
	m.quotes.SetSize(w, listH/2+2)
	m.carousel.width = w
	m.search.Width = w - 4
	m.prompt.Width = w - 4
	m.adBar.Width = w - 10
	if m.adBar.Width > 80 {
		m.adBar.Width = 80
	}
}

// Run launches the app and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller) error {
	m := New(ctx, ctrl)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
