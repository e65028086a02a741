// Package share saves wallpapers to disk and puts quotes on the clipboard.
package share

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/util"
)

// maxImage bounds a downloaded wallpaper.
const maxImage = 32 << 20

// QuoteText is the shareable form of q: "text" - author.
func QuoteText(q catalog.Quote) string {
	return `"` + q.Text + `" - ` + q.Author
}

// FileName is the name a downloaded wallpaper is saved under.
func FileName(id string) string {
	return "inspirehub-wallpaper-" + id + ".jpg"
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// Downloader fetches wallpaper images.
type Downloader struct {
	HTTP *http.Client // nil means http.DefaultClient
}

// Fetch returns the image bytes behind imageURL. Data URLs are decoded in
// place; http and https URLs are downloaded.
func (d *Downloader) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if strings.HasPrefix(imageURL, "data:") {
		_, data, err := gateway.DecodeDataURL(imageURL)
		return data, err
	}
	if !strings.HasPrefix(imageURL, "https://") && !strings.HasPrefix(imageURL, "http://") {
		return nil, fmt.Errorf("unsupported image URL %q", imageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	hc := d.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImage+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImage {
		return nil, fmt.Errorf("image larger than %d bytes", maxImage)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("download image: empty body")
	}
	return data, nil
}

// Save fetches w and writes it into dir as FileName(w.ID). It returns the
// written path and size.
func (d *Downloader) Save(ctx context.Context, w catalog.Wallpaper, dir string) (string, int, error) {
	data, err := d.Fetch(ctx, w.ImageURL)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, FileName(w.ID))
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, len(data), nil
}
