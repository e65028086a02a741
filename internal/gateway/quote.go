package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gemini"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

const dailyQuotePrompt = `Generate a single, short, uplifting inspirational quote for today. ` +
	`The quote should be timely and relevant. Format it as "The quote itself" - Author.`

const authorSeparator = " - "

// QuoteResult is the outcome of FetchDailyQuote.
type QuoteResult struct {
	Quote   catalog.DailyQuote
	Cached  bool
	Failure *Failure
}

// OK reports success.
func (r QuoteResult) OK() bool { return r.Failure == nil }

// ParseQuote splits generated text into quote text and author. The last
// " - " is the separator only when it sits in the second half of the
// string; otherwise the author is "Unknown". Double quotes are removed from
// the text.
func ParseQuote(raw string) (text, author string) {
	i := strings.LastIndex(raw, authorSeparator)
	if i > -1 && float64(i) > float64(len(raw))/2 {
		text = strings.TrimSpace(strings.ReplaceAll(raw[:i], `"`, ""))
		author = strings.TrimSpace(raw[i+len(authorSeparator):])
		return text, author
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, "")), "Unknown"
}

// FetchDailyQuote returns today's quote, from cache when it was generated
// on the same local date. Concurrent callers share one request.
func (g *Gateway) FetchDailyQuote(ctx context.Context) QuoteResult {
	start := time.Now()
	today := g.opts.Now().Format("2006-01-02")

	if q, ok := g.cachedQuote(today); ok {
		g.finish(KindDailyQuote, start, nil, "cache")
		return QuoteResult{Quote: q, Cached: true}
	}

	v, err, shared := g.daily.Do(today, func() (interface{}, error) {
		// The shared call must not die with whichever caller started it.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.opts.Timeout)
		defer cancel()
		return g.generateDailyQuote(callCtx, today)
	})
	if err != nil {
		f := classify(KindDailyQuote, err)
		f.Message = MsgDailyQuote
		f.Links = nil
		g.finish(KindDailyQuote, start, f, "")
		return QuoteResult{Failure: f}
	}
	if shared {
		g.logger.Debug("joined in-flight daily quote request")
	}
	g.finish(KindDailyQuote, start, nil, "ok")
	return QuoteResult{Quote: v.(catalog.DailyQuote)}
}

// cachedQuote reads the cache. A corrupt entry is deleted and treated as
// a miss.
func (g *Gateway) cachedQuote(today string) (catalog.DailyQuote, bool) {
	if g.prefs == nil {
		return catalog.DailyQuote{}, false
	}
	q, ok, err := g.prefs.DailyQuote(today)
	if err != nil {
		g.logger.Warn("daily quote cache unreadable", "err", err)
		if errors.Is(err, store.ErrCorrupt) {
			if err := g.prefs.ClearDailyQuote(); err != nil {
				g.logger.Warn("clearing daily quote cache", "err", err)
			}
		}
		return catalog.DailyQuote{}, false
	}
	return q, ok
}

func (g *Gateway) generateDailyQuote(ctx context.Context, today string) (catalog.DailyQuote, error) {
	if !g.available() {
		return catalog.DailyQuote{}, gemini.ErrNoAPIKey
	}
	res, err := g.svc.GenerateText(ctx, g.opts.TextModel, dailyQuotePrompt, true)
	if err != nil {
		return catalog.DailyQuote{}, err
	}

	text, author := ParseQuote(res.Text)
	q := catalog.DailyQuote{Text: text, Author: author, Sources: []catalog.Source{}}
	for _, c := range res.Citations {
		if c.URI != "" && c.Title != "" {
			q.Sources = append(q.Sources, catalog.Source{URI: c.URI, Title: c.Title})
		}
	}

	if g.prefs != nil {
		if err := g.prefs.SetDailyQuote(today, q); err != nil {
			// The quote is still good for this session.
			g.logger.Warn("caching daily quote", "err", err)
		}
	}
	return q, nil
}
