package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/gemini"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// fakeService is a scriptable stand-in for the Gemini client.
type fakeService struct {
	noKey bool

	textCalls  atomic.Int32
	jsonCalls  atomic.Int32
	imageCalls atomic.Int32

	text    func(ctx context.Context) (gemini.TextResult, error)
	json    func(ctx context.Context, prompt string) (string, error)
	images  func(ctx context.Context) ([]gemini.Image, error)
	lastOpt gemini.ImageOptions
}

func (f *fakeService) Available() bool { return !f.noKey }

func (f *fakeService) GenerateText(ctx context.Context, _, _ string, _ bool) (gemini.TextResult, error) {
	f.textCalls.Add(1)
	return f.text(ctx)
}

func (f *fakeService) GenerateJSON(ctx context.Context, _, prompt string, _ gemini.Schema, out interface{}) error {
	f.jsonCalls.Add(1)
	raw, err := f.json(ctx, prompt)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func (f *fakeService) GenerateImages(ctx context.Context, _, _ string, opts gemini.ImageOptions) ([]gemini.Image, error) {
	f.imageCalls.Add(1)
	f.lastOpt = opts
	return f.images(ctx)
}

type sink struct {
	mu sync.Mutex
	ws []catalog.Wallpaper
}

func (s *sink) AddGenerated(ws []catalog.Wallpaper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ws = append(s.ws, ws...)
}

func testCatalog() *catalog.Store {
	return catalog.NewStore(&catalog.Catalog{
		Categories: []catalog.Category{
			{ID: "cat1", Name: "Motivational", Icon: catalog.IconBolt},
			{ID: "cat2", Name: "Love", Icon: catalog.IconHeart},
		},
		Quotes: []catalog.Quote{
			{ID: "q1", Text: "First", Author: "A", CategoryID: "cat1"},
			{ID: "q2", Text: "Second", Author: "B", CategoryID: "cat1"},
			{ID: "q3", Text: "Third", Author: "C", CategoryID: "cat2"},
		},
		Wallpapers: []catalog.Wallpaper{
			{ID: "w1", ImageURL: "u1", CategoryID: "cat1"},
			{ID: "w2", ImageURL: "u2", CategoryID: "cat2"},
			{ID: "w3", ImageURL: "u3", CategoryID: "cat2"},
		},
	})
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newGateway(svc *fakeService, kv store.KV, s *sink, clk *clock) *gateway.Gateway {
	opts := gateway.Options{Timeout: 2 * time.Second}
	if clk != nil {
		opts.Now = clk.Now
	}
	var gs gateway.GeneratedSink
	if s != nil {
		gs = s
	}
	return gateway.New(svc, testCatalog(), store.NewPrefs(kv), gs, opts)
}

// --- ParseQuote ---

func TestParseQuote(t *testing.T) {
	tests := []struct {
		in, text, author string
	}{
		{`"Success is sweet." - Jane Doe`, "Success is sweet.", "Jane Doe"},
		{`"Just words."`, "Just words.", "Unknown"},
		{"A - B is a long quote with no trailing author marker", "A - B is a long quote with no trailing author marker", "Unknown"},
		{`  "Dash - in body, and more words here" - Someone Else  `, "Dash - in body, and more words here", "Someone Else"},
	}
	for _, tt := range tests {
		text, author := gateway.ParseQuote(tt.in)
		assert.Equal(t, tt.text, text, "text for %q", tt.in)
		assert.Equal(t, tt.author, author, "author for %q", tt.in)
	}
}

// --- FetchDailyQuote ---

func quoteService() *fakeService {
	return &fakeService{
		text: func(context.Context) (gemini.TextResult, error) {
			return gemini.TextResult{
				Text: `"Rise and shine, the day is yours." - Ada`,
				Citations: []gemini.Citation{
					{URI: "https://a.example", Title: "A"},
					{URI: "", Title: "missing uri"},
					{URI: "https://b.example", Title: ""},
				},
			}, nil
		},
	}
}

func TestFetchDailyQuote_CachesPerDay(t *testing.T) {
	svc := quoteService()
	kv := store.NewMemory()
	clk := &clock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)}
	g := newGateway(svc, kv, nil, clk)

	first := g.FetchDailyQuote(context.Background())
	require.True(t, first.OK(), "failure: %+v", first.Failure)
	assert.False(t, first.Cached)
	assert.Equal(t, "Rise and shine, the day is yours.", first.Quote.Text)
	assert.Equal(t, "Ada", first.Quote.Author)
	assert.Equal(t, []catalog.Source{{URI: "https://a.example", Title: "A"}}, first.Quote.Sources)

	second := g.FetchDailyQuote(context.Background())
	require.True(t, second.OK())
	assert.True(t, second.Cached)
	assert.Equal(t, int32(1), svc.textCalls.Load(), "same day must not call the service again")

	clk.Set(clk.Now().Add(24 * time.Hour))
	third := g.FetchDailyQuote(context.Background())
	require.True(t, third.OK())
	assert.False(t, third.Cached)
	assert.Equal(t, int32(2), svc.textCalls.Load())

	raw, ok, err := kv.Get(store.KeyDailyQuote)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"date":"2026-10-20"`)
}

func TestFetchDailyQuote_FailureNotCached(t *testing.T) {
	svc := &fakeService{text: func(context.Context) (gemini.TextResult, error) {
		return gemini.TextResult{}, errors.New("boom")
	}}
	kv := store.NewMemory()
	g := newGateway(svc, kv, nil, nil)

	res := g.FetchDailyQuote(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, gateway.MsgDailyQuote, res.Failure.Message)
	assert.Equal(t, gateway.ClassTransport, res.Failure.Class)
	_, ok, _ := kv.Get(store.KeyDailyQuote)
	assert.False(t, ok)
}

func TestFetchDailyQuote_NoKey(t *testing.T) {
	svc := quoteService()
	svc.noKey = true
	g := newGateway(svc, store.NewMemory(), nil, nil)

	res := g.FetchDailyQuote(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, gateway.ClassConfig, res.Failure.Class)
	assert.Equal(t, gateway.MsgDailyQuote, res.Failure.Message)
	assert.Zero(t, svc.textCalls.Load())
}

func TestFetchDailyQuote_CorruptCacheIsMiss(t *testing.T) {
	svc := quoteService()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.KeyDailyQuote, "{broken"))
	g := newGateway(svc, kv, nil, nil)

	res := g.FetchDailyQuote(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, int32(1), svc.textCalls.Load())
	raw, _, _ := kv.Get(store.KeyDailyQuote)
	assert.True(t, strings.HasPrefix(raw, `{"date":`), "cache rewritten, got %q", raw)
}

func TestFetchDailyQuote_ConcurrentCallersShare(t *testing.T) {
	release := make(chan struct{})
	svc := quoteService()
	inner := svc.text
	svc.text = func(ctx context.Context) (gemini.TextResult, error) {
		<-release
		return inner(ctx)
	}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	var wg sync.WaitGroup
	results := make([]gateway.QuoteResult, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.FetchDailyQuote(context.Background())
		}(i)
	}
	// Let the goroutines pile up on the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.OK())
	}
	assert.LessOrEqual(t, svc.textCalls.Load(), int32(2))
}

// --- Search ---

func TestSearch_OrderAndWallpapers(t *testing.T) {
	svc := &fakeService{json: func(context.Context, string) (string, error) {
		return `{"quoteIds":["q3","q1"],"categoryIds":["cat2"]}`, nil
	}}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	res := g.Search(context.Background(), "  love  ")
	require.True(t, res.OK(), "failure: %+v", res.Failure)
	assert.Equal(t, "love", res.Query)
	require.Len(t, res.Quotes, 2)
	assert.Equal(t, "q3", res.Quotes[0].ID)
	assert.Equal(t, "q1", res.Quotes[1].ID)

	var ids []string
	for _, w := range res.Wallpapers {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"w2", "w3"}, ids)
}

func TestSearch_KeepsEveryReturnedID(t *testing.T) {
	c := &catalog.Catalog{}
	for i := 1; i <= 3; i++ {
		cid := fmt.Sprintf("c%d", i)
		c.Categories = append(c.Categories, catalog.Category{ID: cid, Name: cid, Icon: catalog.IconLeaf})
		c.Wallpapers = append(c.Wallpapers, catalog.Wallpaper{ID: fmt.Sprintf("w%d", i), ImageURL: "u", CategoryID: cid})
	}
	for i := 1; i <= 6; i++ {
		c.Quotes = append(c.Quotes, catalog.Quote{ID: fmt.Sprintf("q%d", i), Text: "t", CategoryID: "c1"})
	}
	svc := &fakeService{json: func(context.Context, string) (string, error) {
		return `{"quoteIds":["q6","q5","q4","q3","q2","q1"],"categoryIds":["c1","c2","c3"]}`, nil
	}}
	g := gateway.New(svc, catalog.NewStore(c), store.NewPrefs(store.NewMemory()), nil, gateway.Options{})

	res := g.Search(context.Background(), "everything")
	require.True(t, res.OK(), "failure: %+v", res.Failure)
	require.Len(t, res.Quotes, 6)
	assert.Equal(t, "q6", res.Quotes[0].ID)
	assert.Equal(t, "q1", res.Quotes[5].ID)
	require.Len(t, res.Wallpapers, 3)
	assert.Equal(t, "w3", res.Wallpapers[2].ID)
}

func TestSearch_UnknownAndDuplicateIDs(t *testing.T) {
	svc := &fakeService{json: func(context.Context, string) (string, error) {
		return `{"quoteIds":["q9","q2","q2"],"categoryIds":["nope"]}`, nil
	}}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	res := g.Search(context.Background(), "x")
	require.True(t, res.OK())
	require.Len(t, res.Quotes, 1)
	assert.Equal(t, "q2", res.Quotes[0].ID)
	assert.Empty(t, res.Wallpapers)
}

func TestSearch_PromptCarriesCatalog(t *testing.T) {
	var prompt string
	svc := &fakeService{json: func(_ context.Context, p string) (string, error) {
		prompt = p
		return `{"quoteIds":[],"categoryIds":[]}`, nil
	}}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	res := g.Search(context.Background(), "courage")
	require.True(t, res.OK())
	assert.True(t, res.Empty(), "zero matches is an empty success")
	assert.Contains(t, prompt, `User Query: "courage"`)
	assert.Contains(t, prompt, `{"id":"q1","text":"First"}`)
	assert.Contains(t, prompt, `{"id":"cat2","name":"Love"}`)
}

func TestSearch_EmptyQueryNoCall(t *testing.T) {
	svc := &fakeService{}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	res := g.Search(context.Background(), "   ")
	require.False(t, res.OK())
	assert.Equal(t, gateway.ClassInvalid, res.Failure.Class)
	assert.Zero(t, svc.jsonCalls.Load())
}

func TestSearch_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":     `sorry, no`,
		"missing keys": `{"quoteIds":["q1"]}`,
		"wrong type":   `{"quoteIds":"q1","categoryIds":[]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{json: func(context.Context, string) (string, error) { return raw, nil }}
			g := newGateway(svc, store.NewMemory(), nil, nil)
			res := g.Search(context.Background(), "x")
			require.False(t, res.OK())
			assert.Equal(t, gateway.ClassMalformed, res.Failure.Class)
			assert.Equal(t, gateway.MsgSearch, res.Failure.Message)
		})
	}
}

func TestSearch_CancelAndReplace(t *testing.T) {
	started := make(chan struct{})
	var n atomic.Int32
	svc := &fakeService{json: func(ctx context.Context, _ string) (string, error) {
		if n.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		}
		return `{"quoteIds":["q1"],"categoryIds":[]}`, nil
	}}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	first := make(chan gateway.SearchResult, 1)
	go func() { first <- g.Search(context.Background(), "old") }()
	<-started

	second := g.Search(context.Background(), "new")
	require.True(t, second.OK())
	assert.Equal(t, "new", second.Query)

	old := <-first
	require.False(t, old.OK())
	assert.Equal(t, gateway.ClassSuperseded, old.Failure.Class)
}

// --- GenerateWallpapers ---

func imageService(n int) *fakeService {
	return &fakeService{images: func(context.Context) ([]gemini.Image, error) {
		out := make([]gemini.Image, n)
		for i := range out {
			out[i] = gemini.Image{MimeType: "image/jpeg", Data: []byte(fmt.Sprintf("img%d", i))}
		}
		return out, nil
	}}
}

func TestGenerateWallpapers_Success(t *testing.T) {
	svc := imageService(4)
	s := &sink{}
	clk := &clock{now: time.UnixMilli(1700000000000)}
	g := newGateway(svc, store.NewMemory(), s, clk)

	res := g.GenerateWallpapers(context.Background(), "fox")
	require.True(t, res.OK(), "failure: %+v", res.Failure)
	require.Len(t, res.Wallpapers, 4)
	assert.Len(t, s.ws, 4)

	assert.Equal(t, gemini.ImageOptions{Count: 4, AspectRatio: "9:16", MimeType: "image/jpeg"}, svc.lastOpt)
	for i, w := range res.Wallpapers {
		assert.Equal(t, fmt.Sprintf("ai-1700000000000-%d", i), w.ID)
		assert.Equal(t, catalog.GeneratedCategoryID, w.CategoryID)
		assert.False(t, w.Premium)
		mime, data, err := gateway.DecodeDataURL(w.ImageURL)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mime)
		assert.Equal(t, fmt.Sprintf("img%d", i), string(data))
	}
	assert.False(t, g.IsGenerating())
}

func TestGenerateWallpapers_ZeroImagesFails(t *testing.T) {
	s := &sink{}
	g := newGateway(imageService(0), store.NewMemory(), s, nil)

	res := g.GenerateWallpapers(context.Background(), "fox")
	require.False(t, res.OK())
	assert.Equal(t, gateway.MsgGenerate, res.Failure.Message)
	assert.Empty(t, s.ws)
}

func TestGenerateWallpapers_QuotaClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		quota bool
	}{
		{"http 429", &gemini.APIError{Status: 429, Body: "slow down"}, true},
		{"status marker", errors.New("rpc error: resource_exhausted"), true},
		{"quota text", errors.New("You exceeded your current quota, please check your plan"), true},
		{"server error", &gemini.APIError{Status: 500, Body: "internal"}, false},
		{"network", errors.New("dial tcp: connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{images: func(context.Context) ([]gemini.Image, error) { return nil, tt.err }}
			s := &sink{}
			g := newGateway(svc, store.NewMemory(), s, nil)

			res := g.GenerateWallpapers(context.Background(), "fox")
			require.False(t, res.OK())
			assert.Equal(t, tt.quota, res.Quota())
			if tt.quota {
				assert.Equal(t, gateway.MsgQuota, res.Failure.Message)
				assert.Equal(t, gateway.QuotaLinks, res.Failure.Links)
			} else {
				assert.Equal(t, gateway.MsgGenerate, res.Failure.Message)
				assert.Empty(t, res.Failure.Links)
			}
			assert.Empty(t, s.ws)
		})
	}
}

func TestGenerateWallpapers_BusyWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := imageService(4)
	inner := svc.images
	svc.images = func(ctx context.Context) ([]gemini.Image, error) {
		close(started)
		<-release
		return inner(ctx)
	}
	g := newGateway(svc, store.NewMemory(), nil, nil)

	done := make(chan gateway.GenerateResult, 1)
	go func() { done <- g.GenerateWallpapers(context.Background(), "fox") }()
	<-started

	assert.True(t, g.IsGenerating())
	busy := g.GenerateWallpapers(context.Background(), "cat")
	require.False(t, busy.OK())
	assert.Equal(t, gateway.ClassBusy, busy.Failure.Class)

	close(release)
	assert.True(t, (<-done).OK())
	assert.Equal(t, int32(1), svc.imageCalls.Load())
}

func TestGenerateWallpapers_EmptyPromptAndNoKey(t *testing.T) {
	svc := imageService(4)
	g := newGateway(svc, store.NewMemory(), nil, nil)
	res := g.GenerateWallpapers(context.Background(), "  ")
	require.False(t, res.OK())
	assert.Equal(t, gateway.ClassInvalid, res.Failure.Class)

	svc.noKey = true
	res = g.GenerateWallpapers(context.Background(), "fox")
	require.False(t, res.OK())
	assert.Equal(t, gateway.ClassConfig, res.Failure.Class)
	assert.Equal(t, gateway.MsgGenerate, res.Failure.Message)
	assert.Zero(t, svc.imageCalls.Load())
}

func TestDecodeDataURL_Errors(t *testing.T) {
	for _, u := range []string{"https://x", "data:image/png", "data:image/png,abc", "data:image/png;base64,%%%"} {
		_, _, err := gateway.DecodeDataURL(u)
		assert.Error(t, err, u)
	}
}

func TestGenerateWallpapers_TimeoutIsTransportFailure(t *testing.T) {
	svc := &fakeService{images: func(ctx context.Context) ([]gemini.Image, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	g := gateway.New(svc, testCatalog(), store.NewPrefs(store.NewMemory()), nil,
		gateway.Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	res := g.GenerateWallpapers(context.Background(), "sunrise")
	require.False(t, res.OK())
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, gateway.ClassTransport, res.Failure.Class)
	assert.Equal(t, gateway.MsgGenerate, res.Failure.Message)
	assert.ErrorIs(t, res.Failure.Cause, context.DeadlineExceeded)
	assert.False(t, g.IsGenerating())
}
