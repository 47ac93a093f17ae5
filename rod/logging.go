package rod

import (
	"context"
	"log/slog"
	"time"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// Ensure LoggingFetcher implements dongchedi.Fetcher.
var _ dongchedi.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   dongchedi.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next dongchedi.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, readySelector string) (page *dongchedi.RenderedPage, err error) {
	defer func(begin time.Time) {
		var bytes int
		if page != nil {
			bytes = len(page.HTML)
		}
		f.logger.Info("fetch",
			"url", url,
			"ready", readySelector,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, readySelector)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
