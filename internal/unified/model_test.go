package unified

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/controller"
	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/nav"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// stubAI answers instantly. Generated wallpapers go to lib the way the
// gateway's sink does.
type stubAI struct{ lib *library.Library }

func (stubAI) FetchDailyQuote(context.Context) gateway.QuoteResult {
	return gateway.QuoteResult{Quote: catalog.DailyQuote{Text: "Keep going.", Author: "Anon"}}
}

func (stubAI) Search(_ context.Context, q string) gateway.SearchResult {
	return gateway.SearchResult{
		Query:      q,
		Quotes:     []catalog.Quote{{ID: "q2", Text: "Second", Author: "B", CategoryID: "cat1"}},
		Wallpapers: []catalog.Wallpaper{{ID: "w1", ImageURL: "https://img.example/w1.jpg", CategoryID: "cat2"}},
	}
}

func (s stubAI) GenerateWallpapers(_ context.Context, p string) gateway.GenerateResult {
	ws := make([]catalog.Wallpaper, gateway.WallpaperCount)
	for i := range ws {
		ws[i] = catalog.Wallpaper{ID: "ai-1-" + string(rune('0'+i)), ImageURL: "data:image/jpeg;base64,AA==", CategoryID: catalog.GeneratedCategoryID}
	}
	if s.lib != nil {
		s.lib.AddGenerated(ws)
	}
	return gateway.GenerateResult{Prompt: p, Wallpapers: ws}
}

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

func newTestModel(t *testing.T, adTick time.Duration, opts ...func(*controller.Deps)) (Model, *library.Library) {
	t.Helper()
	cat := catalog.NewStore(&catalog.Catalog{
		Categories: []catalog.Category{
			{ID: "cat1", Name: "Motivational", Icon: catalog.IconBolt},
			{ID: "cat2", Name: "Love", Icon: catalog.IconHeart},
		},
		Quotes: []catalog.Quote{
			{ID: "q1", Text: "First", Author: "A", CategoryID: "cat1"},
			{ID: "q2", Text: "Second", Author: "B", CategoryID: "cat1"},
			{ID: "q3", Text: "Third", Author: "C", CategoryID: "cat1", Premium: true},
		},
		Wallpapers: []catalog.Wallpaper{
			{ID: "w1", ImageURL: "https://img.example/w1.jpg", CategoryID: "cat2"},
			{ID: "w2", ImageURL: "https://img.example/w2.jpg", CategoryID: "cat2", Premium: true},
		},
	})
	prefs := store.NewPrefs(store.NewMemory())
	lib := library.New(cat, prefs, library.Options{})
	deps := controller.Deps{
		Catalog:       cat,
		Prefs:         prefs,
		Library:       lib,
		AI:            stubAI{lib: lib},
		AdTick:        adTick,
		ToastDuration: time.Hour,
		Clipboard:     &fakeClipboard{},
		DownloadDir:   t.TempDir(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	ctrl := controller.New(deps)
	t.Cleanup(ctrl.Close)

	m := New(context.Background(), ctrl)
	t.Cleanup(m.Close)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, lib
}

// step applies msg and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	nm, _ := m.Update(msg)
	return nm.(Model)
}

// press sends a key and follows any navigation or intent it triggers.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	nm, cmd := m.Update(msg)
	return follow(t, pump(t, nm.(Model)), cmd)
}

// follow runs cmd when it produces a navigation or intent result.
func follow(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		var next tea.Cmd
		switch msg := runQuick(cmd).(type) {
		case NavigateMsg, intentDoneMsg, QuitAppMsg:
			var nm tea.Model
			nm, next = m.Update(msg)
			m = nm.(Model)
		}
		m = pump(t, m)
		cmd = next
	}
	return m
}

// runQuick runs cmd unless it is a timer; timers return nil here.
func runQuick(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// pump delivers pending controller events.
func pump(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case ev := <-m.events:
			m = step(t, m, controllerEventMsg(ev))
		default:
			return m
		}
	}
}

func TestHomeToCategoriesAndBack(t *testing.T) {
	m, _ := newTestModel(t, time.Millisecond)
	if m.snap.Nav.View != nav.ViewHome {
		t.Fatalf("start view = %q, want home", m.snap.Nav.View)
	}
	if !strings.Contains(m.View(), "InspireHub") {
		t.Error("home view missing title")
	}

	m = press(t, m, "enter")
	if m.snap.Nav.View != nav.ViewCategories {
		t.Fatalf("view after enter = %q, want categories", m.snap.Nav.View)
	}
	if !strings.Contains(m.View(), "Motivational") {
		t.Error("categories view missing Motivational")
	}

	m = press(t, m, "esc")
	if m.snap.Nav.View != nav.ViewHome {
		t.Errorf("view after esc = %q, want home", m.snap.Nav.View)
	}
}

func TestCategoryWallpapers_Favorite(t *testing.T) {
	m, lib := newTestModel(t, time.Millisecond)
	m = press(t, m, "enter") // categories
	m = press(t, m, "down")  // Love
	m = press(t, m, "w")
	if m.snap.Nav.View != nav.ViewWallpapers {
		t.Fatalf("view = %q, want wallpapers", m.snap.Nav.View)
	}
	if m.carousel.Len() != 2 {
		t.Fatalf("carousel has %d cards, want 2", m.carousel.Len())
	}

	m = press(t, m, "f")
	if !lib.IsFavorited("w1") {
		t.Error("w1 not favorited after f")
	}
	if m.snap.Toast != library.NoticeFavorited {
		t.Errorf("toast = %q, want %q", m.snap.Toast, library.NoticeFavorited)
	}
	if !strings.Contains(m.View(), "favorite") {
		t.Error("wallpaper card does not show favorite mark")
	}
}

// openMotivationalQuotes navigates home -> categories -> the first
// category's quotes and selects q3.
func openMotivationalQuotes(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, "enter")
	m = press(t, m, "enter")
	if m.snap.Nav.View != nav.ViewQuotes {
		t.Fatalf("view = %q, want quotes", m.snap.Nav.View)
	}
	m = press(t, m, "down")
	m = press(t, m, "down")
	if it, ok := m.quotes.SelectedItem().(quoteItem); !ok || it.quote.ID != "q3" {
		t.Fatalf("selected item = %v, want q3", m.quotes.SelectedItem())
	}
	return m
}

func TestQuotes_Unlock(t *testing.T) {
	m, lib := newTestModel(t, time.Millisecond)
	m = openMotivationalQuotes(t, m)
	if !strings.Contains(m.View(), "Premium quote") {
		t.Error("locked quote text should be hidden")
	}

	m = press(t, m, "u")
	m.ctrl.WaitAd()
	m = pump(t, m)
	if m.snap.Ad.Playing {
		t.Error("ad still playing after completion")
	}
	if !lib.IsUnlocked("q3") {
		t.Fatal("q3 not unlocked after ad")
	}
	if m.snap.Toast != library.NoticeUnlocked {
		t.Errorf("toast = %q, want %q", m.snap.Toast, library.NoticeUnlocked)
	}
	if !strings.Contains(m.View(), "Third") {
		t.Error("unlocked quote text not shown")
	}
}

func TestQuotes_CloseAd(t *testing.T) {
	m, lib := newTestModel(t, time.Hour)
	m = openMotivationalQuotes(t, m)

	m = press(t, m, "u")
	if !m.snap.Ad.Playing || m.snap.Ad.Target != "q3" {
		t.Fatalf("ad = %+v, want playing for q3", m.snap.Ad)
	}
	if !strings.Contains(m.View(), "Advertisement") {
		t.Error("ad overlay not shown")
	}

	// Content keys are swallowed while the ad plays.
	m = press(t, m, "f")
	if lib.IsFavorited("q3") {
		t.Error("f reached the list during the ad")
	}

	m = press(t, m, "esc")
	if m.snap.Ad.Playing {
		t.Error("ad still playing after esc")
	}
	if lib.IsUnlocked("q3") {
		t.Error("closing the ad must not unlock")
	}
	if m.snap.Nav.View != nav.ViewQuotes {
		t.Errorf("view = %q, want quotes", m.snap.Nav.View)
	}
}

func TestSearchThenGenerate(t *testing.T) {
	m, _ := newTestModel(t, time.Millisecond)

	m = press(t, m, "/")
	if !m.search.Focused() {
		t.Fatal("search input not focused after /")
	}
	for _, r := range "calm" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if m.snap.Nav.View != nav.ViewSearch {
		t.Fatalf("view = %q, want search", m.snap.Nav.View)
	}
	if m.snap.Search.Query != "calm" {
		t.Errorf("query = %q, want calm", m.snap.Search.Query)
	}
	if len(m.quotes.Items()) != 1 || m.carousel.Len() != 1 {
		t.Errorf("results = %d quotes, %d wallpapers, want 1 and 1", len(m.quotes.Items()), m.carousel.Len())
	}

	m = press(t, m, "g")
	if m.snap.Nav.View != nav.ViewAIGenerator {
		t.Fatalf("view = %q, want ai-generator", m.snap.Nav.View)
	}
	if got := len(m.snap.Generator.Images); got != gateway.WallpaperCount {
		t.Fatalf("generated %d images, want %d", got, gateway.WallpaperCount)
	}
	if m.carousel.Len() != gateway.WallpaperCount {
		t.Errorf("carousel has %d cards, want %d", m.carousel.Len(), gateway.WallpaperCount)
	}
	if !strings.Contains(m.View(), "AI generated") {
		t.Error("generated cards should be labeled")
	}
}

func TestGenerator_EmptyPrompt(t *testing.T) {
	m, _ := newTestModel(t, time.Millisecond)
	m = press(t, m, "down") // AI generator entry
	m = press(t, m, "enter")
	if m.snap.Nav.View != nav.ViewAIGenerator {
		t.Fatalf("view = %q, want ai-generator", m.snap.Nav.View)
	}
	if !m.prompt.Focused() {
		t.Fatal("prompt should be focused on an unseeded generator")
	}
	m = press(t, m, "enter")
	if m.notice != gateway.MsgEmptyIdea {
		t.Errorf("notice = %q, want %q", m.notice, gateway.MsgEmptyIdea)
	}
	if m.snap.Generator.Generating || len(m.snap.Generator.Images) != 0 {
		t.Error("blank prompt should not generate")
	}
}

func TestQuotes_Copy(t *testing.T) {
	clip := &fakeClipboard{}
	m, _ := newTestModel(t, time.Millisecond, func(d *controller.Deps) { d.Clipboard = clip })
	m = press(t, m, "enter")
	m = press(t, m, "enter") // Motivational quotes, q1 selected

	m = press(t, m, "c")
	if clip.text != `"First" - A` {
		t.Errorf("clipboard = %q", clip.text)
	}
	if m.snap.Toast != controller.NoticeCopied {
		t.Errorf("toast = %q, want %q", m.snap.Toast, controller.NoticeCopied)
	}

	m = press(t, m, "down")
	m = press(t, m, "down") // q3 is premium
	clip.text = ""
	m = press(t, m, "c")
	if clip.text != "" {
		t.Errorf("locked quote copied: %q", clip.text)
	}
	if m.notice != controller.ErrLocked.Error() {
		t.Errorf("notice = %q, want locked", m.notice)
	}
}

func TestGenerator_Download(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, time.Millisecond, func(d *controller.Deps) { d.DownloadDir = dir })
	m = press(t, m, "/")
	for _, r := range "sea" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	m = press(t, m, "g")
	if m.carousel.Len() == 0 {
		t.Fatal("no generated wallpapers")
	}
	w, _ := m.carousel.Selected()

	m = press(t, m, "d")
	if m.snap.Toast != controller.NoticeDownloaded {
		t.Fatalf("toast = %q, want %q", m.snap.Toast, controller.NoticeDownloaded)
	}
	data, err := os.ReadFile(filepath.Join(dir, "inspirehub-wallpaper-"+w.ID+".jpg"))
	if err != nil {
		t.Fatalf("downloaded file: %v", err)
	}
	if len(data) != 1 || data[0] != 0 {
		t.Errorf("file content = %v, want the decoded data URL", data)
	}
}

func TestThemeToggle(t *testing.T) {
	m, _ := newTestModel(t, time.Millisecond)
	if m.snap.Theme != store.ThemeLight {
		t.Fatalf("theme = %q, want light", m.snap.Theme)
	}
	m = press(t, m, "t")
	if m.snap.Theme != store.ThemeDark {
		t.Errorf("theme after t = %q, want dark", m.snap.Theme)
	}
}

func TestCarousel(t *testing.T) {
	var c Carousel
	if _, ok := c.Selected(); ok {
		t.Error("empty carousel has a selection")
	}
	c.SetItems([]wallpaperCard{{wallpaper: catalog.Wallpaper{ID: "a"}}, {wallpaper: catalog.Wallpaper{ID: "b"}}})
	c.Prev()
	c.Next()
	c.Next()
	if w, _ := c.Selected(); w.ID != "b" {
		t.Errorf("selected = %q, want b", w.ID)
	}
	c.SetItems([]wallpaperCard{{wallpaper: catalog.Wallpaper{ID: "a"}}})
	if w, _ := c.Selected(); w.ID != "a" {
		t.Errorf("selected after shrink = %q, want a", w.ID)
	}
}

func TestImageLabel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"data:image/jpeg;base64,AA==", "✨ AI generated"},
		{"https://images.example.com/photo/1.jpg?w=400", "images.example.com/photo/1.jpg"},
		{"relative.jpg", "relative.jpg"},
	}
	for _, c := range cases {
		if got := imageLabel(c.in); got != c.want {
			t.Errorf("imageLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
