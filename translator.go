package dongchedi

import "context"

// Translation is the outcome of translating one source string. Text and
// Err are mutually exclusive: a per-item failure sets Err and leaves Text
// empty.
type Translation struct {
	Text string
	Err  error
}

// Translator translates a batch of source-language strings.
type Translator interface {
	// Translate returns one Translation per input string, in 1:1
	// positional correspondence. Per-item failures are reported through
	// the item's Err field; the call as a whole fails only when the
	// service is unreachable after a single retry.
	Translate(ctx context.Context, texts []string) ([]Translation, error)
}
