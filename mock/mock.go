// Package mock provides function-field mock implementations of the
// domain interfaces for testing.
package mock

import (
	"context"
	"io"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

var _ dongchedi.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of dongchedi.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, readySelector string) (*dongchedi.RenderedPage, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, readySelector string) (*dongchedi.RenderedPage, error) {
	return f.FetchFn(ctx, url, readySelector)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ dongchedi.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of dongchedi.Extractor.
type Extractor struct {
	ExtractFn func(page *dongchedi.RenderedPage, kind dongchedi.RecordKind) (*dongchedi.Extraction, error)
}

func (e *Extractor) Extract(page *dongchedi.RenderedPage, kind dongchedi.RecordKind) (*dongchedi.Extraction, error) {
	return e.ExtractFn(page, kind)
}

var _ dongchedi.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of dongchedi.Normalizer. A nil
// EnabledFn enables every label.
type Normalizer struct {
	NormalizeFn func(raw dongchedi.RawField) (dongchedi.NormalizedField, bool)
	EnabledFn   func(label string) bool
}

func (n *Normalizer) Normalize(raw dongchedi.RawField) (dongchedi.NormalizedField, bool) {
	return n.NormalizeFn(raw)
}

func (n *Normalizer) Enabled(label string) bool {
	if n.EnabledFn == nil {
		return true
	}
	return n.EnabledFn(label)
}

var _ dongchedi.Translator = (*Translator)(nil)

// Translator is a mock implementation of dongchedi.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, texts []string) ([]dongchedi.Translation, error)
}

func (t *Translator) Translate(ctx context.Context, texts []string) ([]dongchedi.Translation, error) {
	return t.TranslateFn(ctx, texts)
}

var _ dongchedi.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of dongchedi.RecordService.
type RecordService struct {
	CreateRecordFn   func(ctx context.Context, rec *dongchedi.VehicleRecord) error
	FindRecordByIDFn func(ctx context.Context, id string) (*dongchedi.VehicleRecord, error)
	FindRecordsFn    func(ctx context.Context, filter dongchedi.RecordFilter) ([]*dongchedi.VehicleRecord, error)
	DeleteRecordFn   func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *dongchedi.VehicleRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*dongchedi.VehicleRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter dongchedi.RecordFilter) ([]*dongchedi.VehicleRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}

var _ dongchedi.RecordRenderer = (*Renderer)(nil)

// Renderer is a mock implementation of dongchedi.RecordRenderer.
type Renderer struct {
	RenderFn func(w io.Writer, rec *dongchedi.VehicleRecord) error
}

func (r *Renderer) Render(w io.Writer, rec *dongchedi.VehicleRecord) error {
	return r.RenderFn(w, rec)
}
