// Package parse orchestrates the extraction pipeline: fetch a rendered
// page, extract raw fields, normalize them into the internal schema,
// translate labels and values, and assemble the immutable vehicle
// record.
package parse

import (
	"context"
	"fmt"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"golang.org/x/sync/errgroup"
)

// Parser runs parse requests through the pipeline. All collaborators are
// interfaces so the pipeline can be tested without a browser or a
// translation service.
type Parser struct {
	Fetcher    dongchedi.Fetcher
	Extractor  dongchedi.Extractor
	Normalizer dongchedi.Normalizer
	Translator dongchedi.Translator

	// Ready maps a record kind to the content-ready selector the fetcher
	// waits for. Nil means wait for page load only.
	Ready func(dongchedi.RecordKind) string

	// Records, when set, persists every assembled record.
	Records dongchedi.RecordService

	// Concurrency bounds concurrent requests in ParseBatch. Each
	// in-flight request owns its own browser tab. Defaults to 2.
	Concurrency int
}

// Request describes one parse request.
type Request struct {
	URL  string
	Kind dongchedi.RecordKind

	// Keys, when non-empty, restricts which canonical keys are
	// translated and included in the record.
	Keys []dongchedi.CanonicalKey

	// FollowConfig makes a marketplace parse follow the listing's
	// configuration-page link and append those fields to the record.
	FollowConfig bool
}

// Validate returns an error if the request is malformed.
func (r Request) Validate() error {
	if r.URL == "" {
		return dongchedi.Errorf(dongchedi.EINVALID, "request URL required")
	}
	if !r.Kind.Valid() {
		return dongchedi.Errorf(dongchedi.EINVALID, "unknown record kind %q", r.Kind)
	}
	return nil
}

// Parse runs one request through the pipeline. Fatal errors (navigation,
// fetch timeout, structure mismatch) abort the request; extraction gaps
// and translation failures accumulate on the returned record instead.
func (p *Parser) Parse(ctx context.Context, req Request, progress dongchedi.ProgressFunc) (*dongchedi.VehicleRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ex, fields, errs, err := p.runPage(ctx, req.URL, req.Kind, req.Keys, progress)
	if err != nil {
		return nil, err
	}

	if req.FollowConfig && req.Kind == dongchedi.RecordKindMarketplace && ex.ConfigURL != "" {
		_, cfgFields, cfgErrs, err := p.runPage(ctx, ex.ConfigURL, dongchedi.RecordKindConfiguration, req.Keys, progress)
		if err != nil {
			// The configuration page is supplementary; losing it
			// degrades the record rather than failing the listing parse.
			errs = append(errs, dongchedi.ExtractionError{
				Field:  "configuration",
				Reason: fmt.Sprintf("configuration page not parsed: %v", err),
			})
		} else {
			fields = append(fields, cfgFields...)
			errs = append(errs, cfgErrs...)
		}
	}

	rec := dongchedi.AssembleRecord(req.URL, req.Kind, fields, errs)
	rec.Title = ex.Title
	rec.ImageURLs = ex.ImageURLs

	if p.Records != nil {
		if err := p.Records.CreateRecord(ctx, rec); err != nil {
			return nil, err
		}
	}

	report(progress, dongchedi.Progress{Stage: dongchedi.StageDone, URL: req.URL,
		Detail: fmt.Sprintf("%d fields, %d errors", len(rec.Fields), len(rec.ExtractionErrors))})

	return rec, nil
}

// ParseBatch runs independent requests concurrently. The underlying
// browser session is shared but each request owns its own tab. Results
// keep request order; the first fatal error cancels the remaining
// requests.
func (p *Parser) ParseBatch(ctx context.Context, reqs []Request, progress dongchedi.ProgressFunc) ([]*dongchedi.VehicleRecord, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	records := make([]*dongchedi.VehicleRecord, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			rec, err := p.Parse(gctx, req, progress)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// runPage executes fetch → extract → normalize → translate for one page.
func (p *Parser) runPage(ctx context.Context, url string, kind dongchedi.RecordKind, keys []dongchedi.CanonicalKey, progress dongchedi.ProgressFunc) (*dongchedi.Extraction, []dongchedi.TranslatedField, []dongchedi.ExtractionError, error) {
	report(progress, dongchedi.Progress{Stage: dongchedi.StageFetching, URL: url})

	var ready string
	if p.Ready != nil {
		ready = p.Ready(kind)
	}
	page, err := p.Fetcher.Fetch(ctx, url, ready)
	if err != nil {
		return nil, nil, nil, err
	}

	report(progress, dongchedi.Progress{Stage: dongchedi.StageExtracting, URL: url})

	ex, err := p.Extractor.Extract(page, kind)
	if err != nil {
		return nil, nil, nil, err
	}

	report(progress, dongchedi.Progress{Stage: dongchedi.StageNormalizing, URL: url,
		Detail: fmt.Sprintf("%d raw fields", len(ex.Fields))})

	var fields []dongchedi.NormalizedField
	var errs []dongchedi.ExtractionError
	for _, raw := range ex.Fields {
		if !p.Normalizer.Enabled(raw.Label) {
			continue
		}
		f, mapped := p.Normalizer.Normalize(raw)
		if !mapped {
			errs = append(errs, dongchedi.ExtractionError{
				Field:  f.Label,
				Reason: fmt.Sprintf("unmapped label, synthesized key %q", f.Key),
			})
		}
		fields = append(fields, f)
	}

	fields = filterKeys(fields, keys)

	report(progress, dongchedi.Progress{Stage: dongchedi.StageTranslating, URL: url,
		Detail: fmt.Sprintf("%d fields", len(fields))})

	translated, terrs := p.translateFields(ctx, fields)
	errs = append(errs, terrs...)

	return ex, translated, errs, nil
}

// filterKeys keeps only the fields whose canonical key is in keys.
// An empty key set keeps everything.
func filterKeys(fields []dongchedi.NormalizedField, keys []dongchedi.CanonicalKey) []dongchedi.NormalizedField {
	if len(keys) == 0 {
		return fields
	}
	want := make(map[dongchedi.CanonicalKey]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	kept := fields[:0]
	for _, f := range fields {
		if want[f.Key] {
			kept = append(kept, f)
		}
	}
	return kept
}

func report(progress dongchedi.ProgressFunc, p dongchedi.Progress) {
	if progress != nil {
		progress(p)
	}
}
