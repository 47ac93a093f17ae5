package parse_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/lmh17ever/dongchedi-parser/dict"
	"github.com/lmh17ever/dongchedi-parser/mock"
	"github.com/lmh17ever/dongchedi-parser/normalize"
	"github.com/lmh17ever/dongchedi-parser/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughNormalizer maps every label to itself as an exact text
// field, reporting it as dictionary-mapped.
func passthroughNormalizer() *mock.Normalizer {
	return &mock.Normalizer{
		NormalizeFn: func(raw dongchedi.RawField) (dongchedi.NormalizedField, bool) {
			return dongchedi.NormalizedField{
				Key:        dongchedi.CanonicalKey(raw.Label),
				Label:      raw.Label,
				Value:      dongchedi.TextValue(raw.Value),
				Confidence: dongchedi.ConfidenceExact,
				GroupPath:  raw.GroupPath,
			}, true
		},
	}
}

// echoTranslator translates every submitted string to "en:" + original.
func echoTranslator() *mock.Translator {
	return &mock.Translator{
		TranslateFn: func(_ context.Context, texts []string) ([]dongchedi.Translation, error) {
			out := make([]dongchedi.Translation, len(texts))
			for i, s := range texts {
				out[i] = dongchedi.Translation{Text: "en:" + s}
			}
			return out, nil
		},
	}
}

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url, _ string) (*dongchedi.RenderedPage, error) {
			return &dongchedi.RenderedPage{URL: url, HTML: html}, nil
		},
	}
}

func staticExtractor(ex *dongchedi.Extraction) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(*dongchedi.RenderedPage, dongchedi.RecordKind) (*dongchedi.Extraction, error) {
			return ex, nil
		},
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("runs the full pipeline and assembles a record", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: staticExtractor(&dongchedi.Extraction{
				Title: "2021款 速腾",
				Fields: []dongchedi.RawField{
					{Label: "售价", Value: "15.98万"},
					{Label: "表显里程", Value: "1.2万公里"},
				},
				ImageURLs: []string{"https://p1.dcarimg.com/img/a.webp"},
			}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://www.dongchedi.com/usedcar/1",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, "https://www.dongchedi.com/usedcar/1", rec.SourceURL)
		assert.Equal(t, dongchedi.RecordKindMarketplace, rec.Kind)
		assert.Equal(t, "2021款 速腾", rec.Title)
		assert.Equal(t, []string{"https://p1.dcarimg.com/img/a.webp"}, rec.ImageURLs)
		require.Len(t, rec.Fields, 2)
		assert.Equal(t, "en:售价", rec.Fields[0].TranslatedLabel)
		assert.Equal(t, "en:15.98万", rec.Fields[0].TranslatedValue)
		assert.Empty(t, rec.ExtractionErrors)
	})

	t.Run("passes the kind's ready selector to the fetcher", func(t *testing.T) {
		t.Parallel()

		var gotReady string
		p := &parse.Parser{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url, ready string) (*dongchedi.RenderedPage, error) {
					gotReady = ready
					return &dongchedi.RenderedPage{URL: url}, nil
				},
			},
			Extractor:  staticExtractor(&dongchedi.Extraction{}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
			Ready: func(kind dongchedi.RecordKind) string {
				return "." + string(kind)
			},
		}

		_, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindConfiguration,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, ".configuration", gotReady)
	})

	t.Run("rejects malformed requests", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{}

		_, err := p.Parse(context.Background(), parse.Request{Kind: dongchedi.RecordKindMarketplace}, nil)
		require.Error(t, err)
		assert.Equal(t, dongchedi.EINVALID, dongchedi.ErrorCode(err))

		_, err = p.Parse(context.Background(), parse.Request{URL: "https://example.com", Kind: "bogus"}, nil)
		require.Error(t, err)
		assert.Equal(t, dongchedi.EINVALID, dongchedi.ErrorCode(err))
	})

	t.Run("fatal fetch errors abort the request", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string, string) (*dongchedi.RenderedPage, error) {
					return nil, dongchedi.Errorf(dongchedi.ENAVIGATION, "HTTP 404")
				},
			},
		}

		_, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.Error(t, err)
		assert.Equal(t, dongchedi.ENAVIGATION, dongchedi.ErrorCode(err))
	})

	t.Run("structure mismatch aborts the request", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: &mock.Extractor{
				ExtractFn: func(*dongchedi.RenderedPage, dongchedi.RecordKind) (*dongchedi.Extraction, error) {
					return nil, dongchedi.Errorf(dongchedi.ESTRUCTURE, "listing summary region absent")
				},
			},
		}

		_, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.Error(t, err)
		assert.Equal(t, dongchedi.ESTRUCTURE, dongchedi.ErrorCode(err))
	})

	t.Run("unmapped labels become extraction errors, not failures", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: staticExtractor(&dongchedi.Extraction{
				Fields: []dongchedi.RawField{{Label: "隐藏式门把手", Value: "有"}},
			}),
			Normalizer: &mock.Normalizer{
				NormalizeFn: func(raw dongchedi.RawField) (dongchedi.NormalizedField, bool) {
					return dongchedi.NormalizedField{
						Key:        "label-0a1b2c3d",
						Label:      raw.Label,
						Value:      dongchedi.TextValue(raw.Value),
						Confidence: dongchedi.ConfidenceInferred,
					}, false
				},
			},
			Translator: echoTranslator(),
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		require.Len(t, rec.Fields, 1)
		require.Len(t, rec.ExtractionErrors, 1)
		assert.Equal(t, "隐藏式门把手", rec.ExtractionErrors[0].Field)
		assert.Contains(t, rec.ExtractionErrors[0].Reason, "label-0a1b2c3d")
	})

	t.Run("drops labels disabled in the dictionary", func(t *testing.T) {
		t.Parallel()

		override := filepath.Join(t.TempDir(), "override.yaml")
		require.NoError(t, os.WriteFile(override, []byte(`
labels:
  "所在地": {key: location, enabled: false}
`), 0644))
		table, err := dict.LoadFile(override)
		require.NoError(t, err)

		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: staticExtractor(&dongchedi.Extraction{
				Fields: []dongchedi.RawField{
					{Label: "售价", Value: "15.98万"},
					{Label: "所在地", Value: "上海"},
				},
			}),
			Normalizer: normalize.New(table),
			Translator: echoTranslator(),
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		require.Len(t, rec.Fields, 1)
		assert.Equal(t, dongchedi.CanonicalKey("price"), rec.Fields[0].Key)
		assert.Empty(t, rec.ExtractionErrors, "a disabled label is not a gap")
	})

	t.Run("restricts output to requested keys", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: staticExtractor(&dongchedi.Extraction{
				Fields: []dongchedi.RawField{
					{Label: "price", Value: "159800"},
					{Label: "mileage", Value: "12000"},
					{Label: "location", Value: "杭州"},
				},
			}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
			Keys: []dongchedi.CanonicalKey{"price", "location"},
		}, nil)
		require.NoError(t, err)

		require.Len(t, rec.Fields, 2)
		assert.Equal(t, dongchedi.CanonicalKey("price"), rec.Fields[0].Key)
		assert.Equal(t, dongchedi.CanonicalKey("location"), rec.Fields[1].Key)
	})

	t.Run("reports progress stages in order", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher:    staticFetcher("<html></html>"),
			Extractor:  staticExtractor(&dongchedi.Extraction{}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		var stages []dongchedi.Stage
		_, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, func(pr dongchedi.Progress) { stages = append(stages, pr.Stage) })
		require.NoError(t, err)

		assert.Equal(t, []dongchedi.Stage{
			dongchedi.StageFetching,
			dongchedi.StageExtracting,
			dongchedi.StageNormalizing,
			dongchedi.StageTranslating,
			dongchedi.StageDone,
		}, stages)
	})

	t.Run("persists the record when a service is wired", func(t *testing.T) {
		t.Parallel()

		var created *dongchedi.VehicleRecord
		p := &parse.Parser{
			Fetcher:    staticFetcher("<html></html>"),
			Extractor:  staticExtractor(&dongchedi.Extraction{}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
			Records: &mock.RecordService{
				CreateRecordFn: func(_ context.Context, rec *dongchedi.VehicleRecord) error {
					created = rec
					return nil
				},
			},
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)
		assert.Same(t, rec, created)
	})
}

func TestParser_Parse_FollowConfig(t *testing.T) {
	t.Parallel()

	t.Run("merges configuration fields into the listing record", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: &mock.Extractor{
				ExtractFn: func(_ *dongchedi.RenderedPage, kind dongchedi.RecordKind) (*dongchedi.Extraction, error) {
					if kind == dongchedi.RecordKindConfiguration {
						return &dongchedi.Extraction{
							Fields: []dongchedi.RawField{{Label: "天窗", Value: "标配", GroupPath: []string{"车身"}}},
						}, nil
					}
					return &dongchedi.Extraction{
						Fields:    []dongchedi.RawField{{Label: "售价", Value: "15.98万"}},
						ConfigURL: "https://www.dongchedi.com/auto/params-carIds-x-1",
					}, nil
				},
			},
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:          "https://www.dongchedi.com/usedcar/1",
			Kind:         dongchedi.RecordKindMarketplace,
			FollowConfig: true,
		}, nil)
		require.NoError(t, err)

		require.Len(t, rec.Fields, 2)
		assert.Equal(t, dongchedi.CanonicalKey("售价"), rec.Fields[0].Key)
		assert.Equal(t, dongchedi.CanonicalKey("天窗"), rec.Fields[1].Key)
		assert.Equal(t, []string{"车身"}, rec.Fields[1].GroupPath)
	})

	t.Run("a failed configuration page degrades the record", func(t *testing.T) {
		t.Parallel()

		calls := 0
		p := &parse.Parser{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url, _ string) (*dongchedi.RenderedPage, error) {
					calls++
					if calls > 1 {
						return nil, dongchedi.Errorf(dongchedi.EFETCHTIMEOUT, "content-ready selector never appeared")
					}
					return &dongchedi.RenderedPage{URL: url}, nil
				},
			},
			Extractor: staticExtractor(&dongchedi.Extraction{
				Fields:    []dongchedi.RawField{{Label: "售价", Value: "15.98万"}},
				ConfigURL: "https://www.dongchedi.com/auto/params-carIds-x-1",
			}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:          "https://www.dongchedi.com/usedcar/1",
			Kind:         dongchedi.RecordKindMarketplace,
			FollowConfig: true,
		}, nil)
		require.NoError(t, err, "the listing parse survives")

		require.Len(t, rec.Fields, 1)
		require.Len(t, rec.ExtractionErrors, 1)
		assert.Equal(t, "configuration", rec.ExtractionErrors[0].Field)
	})

	t.Run("ignored for configuration requests", func(t *testing.T) {
		t.Parallel()

		calls := 0
		p := &parse.Parser{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url, _ string) (*dongchedi.RenderedPage, error) {
					calls++
					return &dongchedi.RenderedPage{URL: url}, nil
				},
			},
			Extractor:  staticExtractor(&dongchedi.Extraction{}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		_, err := p.Parse(context.Background(), parse.Request{
			URL:          "https://example.com",
			Kind:         dongchedi.RecordKindConfiguration,
			FollowConfig: true,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestParser_Translation(t *testing.T) {
	t.Parallel()

	extraction := &dongchedi.Extraction{
		Fields: []dongchedi.RawField{
			{Label: "a", Value: "va"},
			{Label: "b", Value: "vb"},
			{Label: "c", Value: "vc"},
			{Label: "d", Value: "vd"},
			{Label: "e", Value: "ve"},
		},
	}

	t.Run("one failed item keeps its original text, the rest translate", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher:    staticFetcher("<html></html>"),
			Extractor:  staticExtractor(extraction),
			Normalizer: passthroughNormalizer(),
			Translator: &mock.Translator{
				TranslateFn: func(_ context.Context, texts []string) ([]dongchedi.Translation, error) {
					out := make([]dongchedi.Translation, len(texts))
					for i, s := range texts {
						if s == "c" {
							out[i] = dongchedi.Translation{Err: dongchedi.Errorf(dongchedi.EINTERNAL, "no translation")}
							continue
						}
						out[i] = dongchedi.Translation{Text: "en:" + s}
					}
					return out, nil
				},
			},
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		require.Len(t, rec.Fields, 5)
		assert.Equal(t, "en:a", rec.Fields[0].TranslatedLabel)
		assert.Equal(t, "c", rec.Fields[2].TranslatedLabel, "failed item keeps the original")
		assert.Equal(t, "en:e", rec.Fields[4].TranslatedLabel)

		require.Len(t, rec.ExtractionErrors, 1)
		assert.Equal(t, "c", rec.ExtractionErrors[0].Field)
		assert.Contains(t, rec.ExtractionErrors[0].Reason, "translation failed")
	})

	t.Run("a field failing on both label and value is reported once", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher:    staticFetcher("<html></html>"),
			Extractor:  staticExtractor(extraction),
			Normalizer: passthroughNormalizer(),
			Translator: &mock.Translator{
				TranslateFn: func(_ context.Context, texts []string) ([]dongchedi.Translation, error) {
					out := make([]dongchedi.Translation, len(texts))
					for i, s := range texts {
						if s == "c" || s == "vc" {
							out[i] = dongchedi.Translation{Err: dongchedi.Errorf(dongchedi.EINTERNAL, "no translation")}
							continue
						}
						out[i] = dongchedi.Translation{Text: "en:" + s}
					}
					return out, nil
				},
			},
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		require.Len(t, rec.Fields, 5)
		assert.Equal(t, "c", rec.Fields[2].TranslatedLabel)
		assert.Equal(t, "vc", rec.Fields[2].TranslatedValue)

		require.Len(t, rec.ExtractionErrors, 1)
		assert.Equal(t, "c", rec.ExtractionErrors[0].Field)
	})

	t.Run("a whole-call failure degrades every field", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher:    staticFetcher("<html></html>"),
			Extractor:  staticExtractor(extraction),
			Normalizer: passthroughNormalizer(),
			Translator: &mock.Translator{
				TranslateFn: func(context.Context, []string) ([]dongchedi.Translation, error) {
					return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "service unavailable")
				},
			},
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err, "translation failure never fails the parse")

		require.Len(t, rec.Fields, 5)
		for _, f := range rec.Fields {
			assert.Equal(t, f.Label, f.TranslatedLabel)
		}
		require.Len(t, rec.ExtractionErrors, 1)
		assert.Equal(t, "translation", rec.ExtractionErrors[0].Field)
	})

	t.Run("missing fields are never submitted for translation", func(t *testing.T) {
		t.Parallel()

		var submitted []string
		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: staticExtractor(&dongchedi.Extraction{
				Fields: []dongchedi.RawField{
					{Label: "present", Value: "text"},
					{Label: "absent", Value: "-"},
				},
			}),
			Normalizer: &mock.Normalizer{
				NormalizeFn: func(raw dongchedi.RawField) (dongchedi.NormalizedField, bool) {
					f := dongchedi.NormalizedField{
						Key:        dongchedi.CanonicalKey(raw.Label),
						Label:      raw.Label,
						Value:      dongchedi.TextValue(raw.Value),
						Confidence: dongchedi.ConfidenceExact,
					}
					if raw.Value == "-" {
						f.Confidence = dongchedi.ConfidenceMissing
					}
					return f, true
				},
			},
			Translator: &mock.Translator{
				TranslateFn: func(_ context.Context, texts []string) ([]dongchedi.Translation, error) {
					submitted = texts
					out := make([]dongchedi.Translation, len(texts))
					for i, s := range texts {
						out[i] = dongchedi.Translation{Text: "en:" + s}
					}
					return out, nil
				},
			},
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		assert.NotContains(t, submitted, "absent")
		assert.NotContains(t, submitted, "-")

		require.Len(t, rec.Fields, 2)
		assert.Equal(t, "absent", rec.Fields[1].TranslatedLabel)
		assert.Equal(t, "-", rec.Fields[1].TranslatedValue)
	})

	t.Run("only free-text values are submitted", func(t *testing.T) {
		t.Parallel()

		var submitted []string
		p := &parse.Parser{
			Fetcher: staticFetcher("<html></html>"),
			Extractor: staticExtractor(&dongchedi.Extraction{
				Fields: []dongchedi.RawField{
					{Label: "price", Value: "159800"},
					{Label: "engine", Value: "2.0T 涡轮增压"},
				},
			}),
			Normalizer: &mock.Normalizer{
				NormalizeFn: func(raw dongchedi.RawField) (dongchedi.NormalizedField, bool) {
					f := dongchedi.NormalizedField{
						Key:        dongchedi.CanonicalKey(raw.Label),
						Label:      raw.Label,
						Confidence: dongchedi.ConfidenceExact,
					}
					if raw.Label == "price" {
						f.Value = dongchedi.NumberValue(159800)
						f.Unit = "CNY"
					} else {
						f.Value = dongchedi.TextValue(raw.Value)
					}
					return f, true
				},
			},
			Translator: &mock.Translator{
				TranslateFn: func(_ context.Context, texts []string) ([]dongchedi.Translation, error) {
					submitted = texts
					out := make([]dongchedi.Translation, len(texts))
					for i, s := range texts {
						out[i] = dongchedi.Translation{Text: "en:" + s}
					}
					return out, nil
				},
			},
		}

		rec, err := p.Parse(context.Background(), parse.Request{
			URL:  "https://example.com",
			Kind: dongchedi.RecordKindMarketplace,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"price", "engine", "2.0T 涡轮增压"}, submitted)
		assert.Equal(t, "159800 CNY", rec.Fields[0].TranslatedValue, "numbers render canonically without the service")
		assert.Equal(t, "en:2.0T 涡轮增压", rec.Fields[1].TranslatedValue)
	})
}

func TestParser_ParseBatch(t *testing.T) {
	t.Parallel()

	t.Run("keeps request order", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher:    staticFetcher("<html></html>"),
			Extractor:  staticExtractor(&dongchedi.Extraction{}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		reqs := []parse.Request{
			{URL: "https://example.com/1", Kind: dongchedi.RecordKindMarketplace},
			{URL: "https://example.com/2", Kind: dongchedi.RecordKindMarketplace},
			{URL: "https://example.com/3", Kind: dongchedi.RecordKindMarketplace},
		}

		records, err := p.ParseBatch(context.Background(), reqs, nil)
		require.NoError(t, err)

		require.Len(t, records, 3)
		for i, rec := range records {
			assert.Equal(t, reqs[i].URL, rec.SourceURL)
		}
	})

	t.Run("a fatal error fails the batch", func(t *testing.T) {
		t.Parallel()

		p := &parse.Parser{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url, _ string) (*dongchedi.RenderedPage, error) {
					if strings.HasSuffix(url, "/2") {
						return nil, dongchedi.Errorf(dongchedi.ENAVIGATION, "HTTP 404")
					}
					return &dongchedi.RenderedPage{URL: url}, nil
				},
			},
			Extractor:  staticExtractor(&dongchedi.Extraction{}),
			Normalizer: passthroughNormalizer(),
			Translator: echoTranslator(),
		}

		_, err := p.ParseBatch(context.Background(), []parse.Request{
			{URL: "https://example.com/1", Kind: dongchedi.RecordKindMarketplace},
			{URL: "https://example.com/2", Kind: dongchedi.RecordKindMarketplace},
		}, nil)
		require.Error(t, err)
		assert.Equal(t, dongchedi.ENAVIGATION, dongchedi.ErrorCode(err))
	})
}
