// Package rod fetches rendered dongchedi pages using Chrome browser
// automation. Dongchedi renders its listing and configuration data with
// JavaScript, so a plain HTTP GET returns an empty shell; the fetcher
// waits for the region the caller is about to extract before returning.
package rod

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// DefaultSettleTimeout bounds the wait for the content-ready selector
// after the page's load event. Dongchedi hydrates its tables well after
// load, so this is deliberately generous.
const DefaultSettleTimeout = 45 * time.Second

// DefaultUserAgent is sent with every navigation. Dongchedi serves a
// degraded page to obviously-automated agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements dongchedi.Fetcher at compile time.
var _ dongchedi.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a shared headless
// Chrome browser. Each Fetch call owns its own page (tab), so Fetcher is
// safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	settle    time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSettleTimeout sets the bound on the content-ready wait.
// Defaults to DefaultSettleTimeout.
func WithSettleTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.settle = d }
}

// WithUserAgent overrides the navigation user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a Fetcher backed by the given browser manager.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(manager *BrowserManager, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager:   manager,
		settle:    DefaultSettleTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL, waits until the ready selector appears in
// the rendered DOM, and returns the rendered HTML. The page (tab) is
// released on every exit path, including timeout and cancellation.
func (f *Fetcher) Fetch(ctx context.Context, url string, readySelector string) (*dongchedi.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := f.manager.Browser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "setting user agent: %v", err)
	}

	// Subresources and iframes emit responses of their own; only the
	// document response for the page's frame carries the navigation
	// status. On a redirect chain this is the final hop.
	var status int
	frameID := page.FrameID
	waitResp := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.FrameID != frameID {
			return false
		}
		if e.Response != nil {
			status = e.Response.Status
		}
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, dongchedi.Errorf(dongchedi.ENAVIGATION, "navigating to %s: %v", url, err)
	}
	waitResp()
	if status >= 400 {
		return nil, dongchedi.Errorf(dongchedi.ENAVIGATION, "HTTP %d for %s", status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fetchError(err, url, "waiting for load")
	}

	if readySelector != "" {
		if _, err := page.Timeout(f.settle).Element(readySelector); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, dongchedi.Errorf(dongchedi.EFETCHTIMEOUT,
				"content ready signal %q never appeared for %s", readySelector, url)
		}
	}

	if err := expandCarousel(ctx, page); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fetchError(err, url, "reading HTML")
	}

	f.manager.IncrementPageCount()

	return &dongchedi.RenderedPage{URL: url, HTML: html}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// Dongchedi mounts gallery <img> nodes lazily as the image carousel
// advances; the next button carries swiper-button-disabled once every
// slide has been shown.
const (
	carouselNextSelector  = "button.tw--right-8.head-info_swiper-button__Z2mjF"
	carouselDisabledClass = "swiper-button-disabled"
	carouselSettleDelay   = 300 * time.Millisecond
	maxCarouselClicks     = 100
)

// expandCarousel clicks the image carousel forward until its next button
// reports disabled, so the rendered HTML carries the full gallery. Pages
// without a carousel are left untouched. The gallery is supplementary:
// click failures end the expansion rather than fail the fetch.
func expandCarousel(ctx context.Context, page *rod.Page) error {
	for i := 0; i < maxCarouselClicks; i++ {
		has, btn, err := page.Has(carouselNextSelector)
		if err != nil || !has {
			return nil
		}
		class, err := btn.Attribute("class")
		if err != nil || (class != nil && strings.Contains(*class, carouselDisabledClass)) {
			return nil
		}
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(carouselSettleDelay):
		}
	}
	return nil
}

// fetchError classifies a page operation failure: deadline expiry becomes
// EFETCHTIMEOUT (retryable by the caller), anything else is internal.
func fetchError(err error, url, stage string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return dongchedi.Errorf(dongchedi.EFETCHTIMEOUT, "%s for %s: %v", stage, url, err)
	}
	return dongchedi.Errorf(dongchedi.EINTERNAL, "%s for %s: %v", stage, url, err)
}
