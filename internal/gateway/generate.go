package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gemini"
)

// Image request parameters for phone wallpapers.
const (
	WallpaperCount  = 4
	WallpaperAspect = "9:16"
	WallpaperMime   = "image/jpeg"
)

// GenerateResult is the outcome of GenerateWallpapers.
type GenerateResult struct {
	Prompt     string
	Wallpapers []catalog.Wallpaper
	Failure    *Failure
}

// OK reports success.
func (r GenerateResult) OK() bool { return r.Failure == nil }

// Quota reports whether the failure was a quota exhaustion.
func (r GenerateResult) Quota() bool {
	return r.Failure != nil && r.Failure.Class == ClassQuota
}

func wallpaperPrompt(idea string) string {
	return fmt.Sprintf("Create a vibrant, high-quality phone wallpaper based on this theme: %q. "+
		"Focus on artistic and visually appealing composition. "+
		"Avoid text unless it's integral to the artistic style.", idea)
}

// GenerateWallpapers creates WallpaperCount wallpapers from prompt. Only one
// generation may run at a time; an overlapping call fails with ClassBusy.
// On success the wallpapers are also handed to the generated sink.
func (g *Gateway) GenerateWallpapers(ctx context.Context, prompt string) GenerateResult {
	start := time.Now()
	prompt = strings.TrimSpace(prompt)
	res := GenerateResult{Prompt: prompt}
	if prompt == "" {
		res.Failure = &Failure{Kind: KindGenerate, Class: ClassInvalid, Message: MsgEmptyIdea, Cause: ErrEmptyPrompt}
		g.finish(KindGenerate, start, res.Failure, "")
		return res
	}
	if !g.generating.CompareAndSwap(false, true) {
		res.Failure = &Failure{Kind: KindGenerate, Class: ClassBusy, Message: MsgBusy, Cause: ErrBusy}
		g.finish(KindGenerate, start, res.Failure, "")
		return res
	}
	defer g.generating.Store(false)

	ws, err := g.generate(ctx, prompt)
	if err != nil {
		res.Failure = classify(KindGenerate, err)
		g.finish(KindGenerate, start, res.Failure, "")
		return res
	}
	res.Wallpapers = ws
	if g.sink != nil {
		g.sink.AddGenerated(ws)
	}
	g.finish(KindGenerate, start, nil, "ok")
	return res
}

func (g *Gateway) generate(ctx context.Context, prompt string) ([]catalog.Wallpaper, error) {
	if !g.available() {
		return nil, gemini.ErrNoAPIKey
	}
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	images, err := g.svc.GenerateImages(ctx, g.opts.ImageModel, wallpaperPrompt(prompt), gemini.ImageOptions{
		Count:       WallpaperCount,
		AspectRatio: WallpaperAspect,
		MimeType:    WallpaperMime,
	})
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	stamp := g.opts.Now().UnixMilli()
	ws := make([]catalog.Wallpaper, len(images))
	for i, img := range images {
		mime := img.MimeType
		if mime == "" {
			mime = WallpaperMime
		}
		ws[i] = catalog.Wallpaper{
			ID:         fmt.Sprintf("ai-%d-%d", stamp, i),
			ImageURL:   "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
			CategoryID: catalog.GeneratedCategoryID,
		}
	}
	return ws, nil
}

// DecodeDataURL returns the MIME type and bytes of a data URL produced by
// GenerateWallpapers.
func DecodeDataURL(u string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL has no payload")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data URL is not base64")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mime, data, nil
}
