// Package gateway is the only component that talks to the generative AI
// service. Every operation returns a typed result; failures are classified
// into a user-facing message and never returned as plain errors.
package gateway

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gemini"
	"github.com/blackwell-systems/inspirehub/internal/metrics"
	"github.com/blackwell-systems/inspirehub/internal/store"
)

// Service is the subset of the Gemini client the gateway needs.
type Service interface {
	Available() bool
	GenerateText(ctx context.Context, model, prompt string, grounding bool) (gemini.TextResult, error)
	GenerateJSON(ctx context.Context, model, prompt string, schema gemini.Schema, out interface{}) error
	GenerateImages(ctx context.Context, model, prompt string, opts gemini.ImageOptions) ([]gemini.Image, error)
}

// GeneratedSink receives wallpapers produced by GenerateWallpapers.
type GeneratedSink interface {
	AddGenerated(ws []catalog.Wallpaper)
}

// Options configures a Gateway.
type Options struct {
	TextModel  string
	ImageModel string
	Timeout    time.Duration
	Logger     *log.Logger
	Now        func() time.Time
}

// Gateway orchestrates daily quote, search and image generation calls.
type Gateway struct {
	svc     Service
	catalog *catalog.Store
	prefs   *store.Prefs
	sink    GeneratedSink
	opts    Options
	logger  *log.Logger

	daily singleflight.Group

	searchMu     sync.Mutex
	searchSeq    uint64
	searchCancel context.CancelFunc

	generating atomic.Bool
}

// New creates a Gateway. sink may be nil.
func New(svc Service, cat *catalog.Store, prefs *store.Prefs, sink GeneratedSink, opts Options) *Gateway {
	if opts.TextModel == "" {
		opts.TextModel = "gemini-2.5-flash"
	}
	if opts.ImageModel == "" {
		opts.ImageModel = "imagen-4.0-generate-001"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gateway{
		svc:     svc,
		catalog: cat,
		prefs:   prefs,
		sink:    sink,
		opts:    opts,
		logger:  logger.WithPrefix("gateway"),
	}
}

func (g *Gateway) available() bool {
	return g.svc != nil && g.svc.Available()
}

// IsGenerating reports whether a wallpaper generation is in flight.
func (g *Gateway) IsGenerating() bool {
	return g.generating.Load()
}

// finish logs and records the outcome of one operation.
func (g *Gateway) finish(kind Kind, start time.Time, f *Failure, outcome string) {
	if f != nil {
		outcome = string(f.Class)
		if f.Class == ClassInvalid || f.Class == ClassSuperseded || f.Class == ClassBusy {
			g.logger.Debug("operation rejected", "op", kind, "class", f.Class, "cause", f.Cause)
		} else {
			g.logger.Error("operation failed", "op", kind, "class", f.Class, "err", f.Cause)
		}
	}
	metrics.RecordGatewayRequest(string(kind), outcome, time.Since(start))
}
