package parse

import (
	"context"
	"fmt"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// batchItem maps one submitted string back to its field.
type batchItem struct {
	fieldIdx int
	isValue  bool
}

// translateFields batches the eligible labels and values of one page
// into a single translation call and merges the results back. Fields
// with missing confidence are never submitted; their translated text is
// the original text. A per-item failure keeps the original text and
// records an extraction error. A whole-call failure degrades every field
// the same way rather than aborting the record.
func (p *Parser) translateFields(ctx context.Context, fields []dongchedi.NormalizedField) ([]dongchedi.TranslatedField, []dongchedi.ExtractionError) {
	out := make([]dongchedi.TranslatedField, len(fields))
	var texts []string
	var items []batchItem

	for i, f := range fields {
		out[i] = dongchedi.TranslatedField{
			NormalizedField: f,
			TranslatedLabel: f.Label,
			TranslatedValue: f.Raw(),
		}
		if f.Confidence == dongchedi.ConfidenceMissing {
			continue
		}

		texts = append(texts, f.Label)
		items = append(items, batchItem{fieldIdx: i})

		// Numbers, booleans and enumerated options already render in
		// canonical form; only free text needs the service.
		if f.Value.Kind == dongchedi.KindText {
			texts = append(texts, f.Value.Text)
			items = append(items, batchItem{fieldIdx: i, isValue: true})
		}
	}

	if len(texts) == 0 {
		return out, nil
	}

	results, err := p.Translator.Translate(ctx, texts)
	if err != nil {
		return out, []dongchedi.ExtractionError{{
			Field:  "translation",
			Reason: fmt.Sprintf("translation service unavailable: %v", err),
		}}
	}

	var errs []dongchedi.ExtractionError
	failed := make(map[int]bool)
	for i, item := range items {
		if i >= len(results) {
			break
		}
		f := &out[item.fieldIdx]
		if results[i].Err != nil {
			// The label and the value of one field can both fail; the
			// field gets a single entry.
			if !failed[item.fieldIdx] {
				failed[item.fieldIdx] = true
				errs = append(errs, dongchedi.ExtractionError{
					Field:  f.Label,
					Reason: fmt.Sprintf("translation failed: %v", results[i].Err),
				})
			}
			continue
		}
		if item.isValue {
			f.TranslatedValue = results[i].Text
		} else {
			f.TranslatedLabel = results[i].Text
		}
	}

	return out, errs
}
