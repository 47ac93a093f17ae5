package dongchedi

import "context"

// RenderedPage is the rendered HTML of a dynamically loaded page.
type RenderedPage struct {
	URL  string
	HTML string
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render, and —
	// when readySelector is non-empty — blocks until that element appears
	// before returning the rendered page. The context bounds the whole
	// operation.
	//
	// Returns ENAVIGATION on a non-2xx response or network failure and
	// EFETCHTIMEOUT when the ready signal never appears within the wait.
	Fetch(ctx context.Context, url string, readySelector string) (*RenderedPage, error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
