// Package gemini implements the translation service boundary using
// Google Gemini. One record's labels and values are batched into a
// single request; the response keeps 1:1 positional correspondence via a
// numbered-line protocol with an explicit per-item failure marker.
package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// failureMarker is the sentinel the model emits for an item it cannot
// translate. A missing index in the response counts the same way.
const failureMarker = "<untranslated>"

// Ensure Translator implements dongchedi.Translator at compile time.
var _ dongchedi.Translator = (*Translator)(nil)

// Translator translates batches of Chinese automotive terms using the
// Gemini API.
type Translator struct {
	client *genai.Client
	model  string
	target string
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithModel overrides the Gemini model.
func WithModel(model string) TranslatorOption {
	return func(t *Translator) { t.model = model }
}

// WithTargetLanguage sets the translation target language.
// Defaults to English.
func WithTargetLanguage(lang string) TranslatorOption {
	return func(t *Translator) { t.target = lang }
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client, opts ...TranslatorOption) *Translator {
	t := &Translator{
		client: client,
		model:  defaultModel,
		target: "English",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns one Translation per input string, positionally. The
// service call is retried once on a transient failure, then treated as
// permanent.
func (t *Translator) Translate(ctx context.Context, texts []string) ([]dongchedi.Translation, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	prompt := BuildUserPrompt(texts)
	config := BuildConfig(t.target)

	result, err := t.generate(ctx, prompt, config)
	if err != nil && ctx.Err() == nil {
		// One retry on a transient service failure.
		result, err = t.generate(ctx, prompt, config)
	}
	if err != nil {
		return nil, err
	}

	return parseResponse(result, len(texts)), nil
}

func (t *Translator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", dongchedi.Errorf(dongchedi.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for translation calls.
func BuildConfig(target string) *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You translate Chinese automotive terms from vehicle spec sheets to " + target + ". " +
					"The input is a numbered list. Reply with the same numbered list, one translation per line, " +
					"keeping the numbering and order exactly. Translate tersely, as a spec sheet would. " +
					"If an item cannot be translated, output " + failureMarker + " for that item.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt renders the numbered-list request body.
func BuildUserPrompt(texts []string) string {
	var sb strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, text)
	}
	return sb.String()
}

// parseResponse maps numbered response lines back onto input positions.
// Items whose index is missing or marked as failed carry a per-item
// error; they never fail the batch.
func parseResponse(body string, n int) []dongchedi.Translation {
	out := make([]dongchedi.Translation, n)
	for i := range out {
		out[i] = dongchedi.Translation{
			Err: dongchedi.Errorf(dongchedi.EINTERNAL, "no translation for item %d", i+1),
		}
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		num, text, ok := strings.Cut(line, ".")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil || idx < 1 || idx > n {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" || text == failureMarker {
			continue
		}
		out[idx-1] = dongchedi.Translation{Text: text}
	}

	return out
}
