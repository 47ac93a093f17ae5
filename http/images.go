// Package http downloads gallery images over plain HTTP. Dongchedi's
// image CDN requires no JavaScript, but it does check the Referer and
// throttles impolite clients, so downloads go through a rate limiter.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"golang.org/x/time/rate"
)

// DefaultRequestTimeout bounds one image request.
const DefaultRequestTimeout = 10 * time.Second

// defaultReferer satisfies the CDN's hotlink check.
const defaultReferer = "https://www.dongchedi.com/"

// ImageDownloader downloads image URLs into a directory.
type ImageDownloader struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	referer   string
}

// DownloaderOption configures an ImageDownloader.
type DownloaderOption func(*ImageDownloader)

// WithRate sets the download rate in requests per second. Defaults to 2.
func WithRate(rps float64) DownloaderOption {
	return func(d *ImageDownloader) { d.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithUserAgent sets the request user agent.
func WithUserAgent(ua string) DownloaderOption {
	return func(d *ImageDownloader) { d.userAgent = ua }
}

// NewImageDownloader creates a new ImageDownloader.
func NewImageDownloader(opts ...DownloaderOption) *ImageDownloader {
	d := &ImageDownloader{
		client:  &http.Client{Timeout: DefaultRequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		referer: defaultReferer,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches each URL into dir as image_N.<ext>, in order. A
// per-image failure is retried once, then recorded and skipped; the
// whole call fails only on context cancellation. Returns the saved file
// paths and the per-image failures.
func (d *ImageDownloader) Download(ctx context.Context, urls []string, dir string) ([]string, []dongchedi.ExtractionError, error) {
	var saved []string
	var errs []dongchedi.ExtractionError

	for i, url := range urls {
		if err := d.limiter.Wait(ctx); err != nil {
			return saved, errs, err
		}

		path, err := d.downloadOne(ctx, url, dir, i+1)
		if err != nil {
			if ctx.Err() != nil {
				return saved, errs, ctx.Err()
			}
			// One retry, then give up on this image.
			if path, err = d.downloadOne(ctx, url, dir, i+1); err != nil {
				errs = append(errs, dongchedi.ExtractionError{
					Field:  fmt.Sprintf("image %d", i+1),
					Reason: err.Error(),
				})
				continue
			}
		}
		saved = append(saved, path)
	}

	return saved, errs, nil
}

func (d *ImageDownloader) downloadOne(ctx context.Context, url, dir string, n int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Referer", d.referer)
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	path := filepath.Join(dir, fmt.Sprintf("image_%d.%s", n, imageExtension(url, resp.Header.Get("Content-Type"))))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// imageExtension picks a file extension from the content type, falling
// back to the URL path.
func imageExtension(url, contentType string) string {
	switch {
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "png"):
		return "png"
	}
	if i := strings.LastIndex(url, "."); i >= 0 && len(url)-i <= 5 {
		return strings.ToLower(url[i+1:])
	}
	return "webp"
}
