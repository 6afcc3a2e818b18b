// Package covers downloads book cover images and normalizes them to a
// bounded width for local storage alongside exported notes.
package covers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const (
	defaultMaxWidth = 500
	jpegQuality     = 85
	httpTimeout     = 30 * time.Second
)

// Downloader fetches cover images over HTTP and saves them as resized JPEGs.
type Downloader struct {
	httpClient *http.Client
	maxWidth   int
	// update forces re-downloading covers that already exist on disk.
	update bool
}

// Option customizes a Downloader.
type Option func(*Downloader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Downloader) { d.httpClient = client }
}

// WithMaxWidth bounds the saved image width in pixels.
func WithMaxWidth(width int) Option {
	return func(d *Downloader) {
		if width > 0 {
			d.maxWidth = width
		}
	}
}

// WithUpdate re-downloads covers even when the target file already exists.
func WithUpdate(update bool) Option {
	return func(d *Downloader) { d.update = update }
}

// NewDownloader returns a Downloader with a 30 second HTTP timeout and a
// 500 pixel width bound.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: httpTimeout},
		maxWidth:   defaultMaxWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Filename builds the on-disk cover name for a book title.
func Filename(title string) string {
	title = strings.ReplaceAll(title, ":", " -")
	title = strings.ReplaceAll(title, "/", "-")
	title = strings.ReplaceAll(title, "\\", "-")
	return title + " - cover.jpg"
}

// Download fetches the image at coverURL and saves it under dir using the
// title-derived filename. An existing file is left alone unless the
// Downloader was built with WithUpdate. It returns the saved path and
// whether a download happened; a blank coverURL is a no-op.
func (d *Downloader) Download(ctx context.Context, coverURL, dir, title string) (string, bool, error) {
	if coverURL == "" {
		return "", false, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("failed to create cover directory: %w", err)
	}
	savePath := filepath.Join(dir, Filename(title))

	if !d.update {
		if _, err := os.Stat(savePath); err == nil {
			slog.Debug("Cover already exists, skipping download", "path", savePath)
			return savePath, false, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return "", false, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, coverURL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return "", false, fmt.Errorf("failed to decode cover image: %w", err)
	}

	if img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, savePath, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", false, fmt.Errorf("failed to save cover image: %w", err)
	}

	slog.Info("Downloaded cover", "path", savePath)
	return savePath, true, nil
}
