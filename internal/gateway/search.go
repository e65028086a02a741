package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gemini"
)

// Result limits requested from the model.
const (
	maxSearchQuotes     = 5
	maxSearchCategories = 2
)

// SearchResult is the outcome of Search. Zero matches with a nil Failure is
// a valid empty result.
type SearchResult struct {
	Query      string
	Quotes     []catalog.Quote
	Wallpapers []catalog.Wallpaper
	Failure    *Failure
}

// OK reports success.
func (r SearchResult) OK() bool { return r.Failure == nil }

// Empty reports a successful search with no matches.
func (r SearchResult) Empty() bool {
	return r.Failure == nil && len(r.Quotes) == 0 && len(r.Wallpapers) == 0
}

type searchAnswer struct {
	QuoteIDs    []string `json:"quoteIds"`
	CategoryIDs []string `json:"categoryIds"`
}

var searchSchema = gemini.Schema{
	Type: "OBJECT",
	Properties: map[string]gemini.Schema{
		"quoteIds":    {Type: "ARRAY", Items: &gemini.Schema{Type: "STRING"}},
		"categoryIds": {Type: "ARRAY", Items: &gemini.Schema{Type: "STRING"}},
	},
	Required: []string{"quoteIds", "categoryIds"},
}

type promptQuote struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type promptCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Search asks the model to rank catalog quotes and wallpaper categories for
// query. A new call cancels any search still in flight; the replaced call
// resolves with ClassSuperseded.
func (g *Gateway) Search(ctx context.Context, query string) SearchResult {
	start := time.Now()
	query = strings.TrimSpace(query)
	if query == "" {
		f := &Failure{Kind: KindSearch, Class: ClassInvalid, Message: MsgEmptyQuery, Cause: ErrEmptyQuery}
		g.finish(KindSearch, start, f, "")
		return SearchResult{Failure: f}
	}

	ctx, seq := g.beginSearch(ctx)
	defer g.endSearch(seq)

	res := SearchResult{Query: query}
	answer, err := g.askSearch(ctx, query)
	if err != nil {
		if g.superseded(seq) {
			res.Failure = &Failure{Kind: KindSearch, Class: ClassSuperseded, Message: MsgSearch, Cause: ErrSuperseded}
		} else {
			res.Failure = classify(KindSearch, err)
			res.Failure.Message = MsgSearch
			res.Failure.Links = nil
		}
		g.finish(KindSearch, start, res.Failure, "")
		return res
	}
	if g.superseded(seq) {
		res.Failure = &Failure{Kind: KindSearch, Class: ClassSuperseded, Message: MsgSearch, Cause: ErrSuperseded}
		g.finish(KindSearch, start, res.Failure, "")
		return res
	}

	// The limits are only asked for in the prompt; every known id the
	// model returns is kept.
	res.Quotes = catalog.ResolveQuotes(g.catalog.Quotes(), answer.QuoteIDs)
	cats := knownCategories(g.catalog, answer.CategoryIDs)
	res.Wallpapers = catalog.WallpapersInCategories(g.catalog.Wallpapers(), cats)

	g.logger.Debug("search resolved", "query", query, "quotes", len(res.Quotes), "wallpapers", len(res.Wallpapers))
	g.finish(KindSearch, start, nil, "ok")
	return res
}

// beginSearch cancels the previous search and returns a context bounded by
// the configured timeout plus this call's sequence number.
func (g *Gateway) beginSearch(parent context.Context) (context.Context, uint64) {
	g.searchMu.Lock()
	defer g.searchMu.Unlock()
	if g.searchCancel != nil {
		g.searchCancel()
	}
	g.searchSeq++
	ctx, cancel := context.WithTimeout(parent, g.opts.Timeout)
	g.searchCancel = cancel
	return ctx, g.searchSeq
}

func (g *Gateway) endSearch(seq uint64) {
	g.searchMu.Lock()
	defer g.searchMu.Unlock()
	if g.searchSeq == seq && g.searchCancel != nil {
		g.searchCancel()
		g.searchCancel = nil
	}
}

func (g *Gateway) superseded(seq uint64) bool {
	g.searchMu.Lock()
	defer g.searchMu.Unlock()
	return g.searchSeq != seq
}

func (g *Gateway) askSearch(ctx context.Context, query string) (searchAnswer, error) {
	var answer searchAnswer
	if !g.available() {
		return answer, gemini.ErrNoAPIKey
	}
	prompt, err := searchPrompt(query, g.catalog.Quotes(), g.catalog.Categories())
	if err != nil {
		return answer, err
	}
	if err := g.svc.GenerateJSON(ctx, g.opts.TextModel, prompt, searchSchema, &answer); err != nil {
		return answer, err
	}
	if answer.QuoteIDs == nil || answer.CategoryIDs == nil {
		return answer, fmt.Errorf("search answer missing required keys: %w", gemini.ErrEmptyResponse)
	}
	return answer, nil
}

func searchPrompt(query string, quotes []catalog.Quote, categories []catalog.Category) (string, error) {
	pq := make([]promptQuote, len(quotes))
	for i, q := range quotes {
		pq[i] = promptQuote{ID: q.ID, Text: q.Text}
	}
	pc := make([]promptCategory, len(categories))
	for i, c := range categories {
		pc[i] = promptCategory{ID: c.ID, Name: c.Name}
	}
	quotesJSON, err := json.Marshal(pq)
	if err != nil {
		return "", err
	}
	catsJSON, err := json.Marshal(pc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are an AI assistant for an app called InspireHub. Your task is to help users find inspirational content.\n")
	b.WriteString("Based on the user's search query, you must recommend relevant quotes and wallpaper categories from the provided JSON lists.\n\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", query)
	b.WriteString(`You MUST return a JSON object with two keys: "quoteIds" and "categoryIds".` + "\n")
	fmt.Fprintf(&b, `- "quoteIds": An array of strings containing the IDs of the top %d most relevant quotes from the quotes list. The order should be from most to least relevant.`+"\n", maxSearchQuotes)
	fmt.Fprintf(&b, `- "categoryIds": An array of strings containing the IDs of the top %d most relevant wallpaper categories from the categories list.`+"\n\n", maxSearchCategories)
	b.WriteString("Do not include any other text or explanation in your response. Only the JSON object.\n\n")
	b.WriteString("Available Quotes:\n")
	b.Write(quotesJSON)
	b.WriteString("\n\nAvailable Categories:\n")
	b.Write(catsJSON)
	return b.String(), nil
}

// knownCategories keeps the ids that name a catalog category, first
// occurrence only.
func knownCategories(cat *catalog.Store, ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := cat.Category(id); ok {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
