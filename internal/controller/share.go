package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/inspirehub/internal/share"
)

// Notices shown after saving or copying.
const (
	NoticeDownloaded     = "Wallpaper downloaded!"
	NoticeDownloadFailed = "Download failed. Please try again."
	NoticeCopied         = "Copied to clipboard!"
	NoticeCopyFailed     = "Failed to copy quote."
)

// ErrLocked is returned when a premium item has not been unlocked.
var ErrLocked = errors.New("item is locked; watch an ad to unlock it")

// DownloadWallpaper saves wallpaper id into dir, or the configured download
// directory when dir is empty. It returns the written path and size.
func (c *Controller) DownloadWallpaper(ctx context.Context, id, dir string) (string, int, error) {
	w, ok := c.library.Wallpaper(id)
	if !ok {
		return "", 0, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if !c.library.Accessible(id) {
		return "", 0, ErrLocked
	}
	if dir == "" {
		dir = c.downloadDir
	}

	path, n, err := c.downloader.Save(ctx, w, dir)
	if err != nil {
		c.logger.Warn("download failed", "id", id, "err", err)
		c.showToast(NoticeDownloadFailed)
		return "", 0, err
	}
	c.logger.Debug("downloaded", "id", id, "path", path, "bytes", n)
	c.showToast(NoticeDownloaded)
	return path, n, nil
}

// CopyQuote puts quote id on the clipboard and returns the copied text.
func (c *Controller) CopyQuote(id string) (string, error) {
	q, ok := c.catalog.Quote(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if !c.library.Accessible(id) {
		return "", ErrLocked
	}

	text := share.QuoteText(q)
	if err := c.clipboard.WriteAll(text); err != nil {
		c.logger.Warn("copy failed", "id", id, "err", err)
		c.showToast(NoticeCopyFailed)
		return text, err
	}
	c.showToast(NoticeCopied)
	return text, nil
}
