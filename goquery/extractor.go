// Package goquery provides CSS-selector based field extraction from
// rendered dongchedi pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// Selectors for the known structural regions of dongchedi pages. These
// encode the current page layout; when dongchedi ships new markup the
// extractor surfaces ESTRUCTURE instead of silently returning nothing.
const (
	// Marketplace (used-car listing) page.
	selListingSummary = ".head-info_price-wrap__Y4bxi"
	selListingTitle   = ".line-1.tw-flex-1"
	selListingPrice   = ".tw-text-color-red-500"
	selListingCells   = ".tw-flex-auto.tw-flex.tw-flex-col.tw-justify-center"
	selListingConfig  = "a.tw-flex-none.tw-text-color-gray-800[href]"
	selGalleryImages  = ".tw-flex-none.tw-w-100\\/6 img"

	// Configuration page.
	selConfigSection = "div[class*=table_root]"
	selSectionTitle  = "div[class*=table_title]"
	selGroupHeading  = "div[class*=cell_title]"
	selCellLabel     = "label[class*=cell_label]"
	selCellValue     = "div[class*=cell_normal]"
)

// ReadySelector returns the content-ready selector for a record kind:
// the root element of the region the extractor will read. The fetcher
// waits for it before returning the rendered page.
func ReadySelector(kind dongchedi.RecordKind) string {
	if kind == dongchedi.RecordKindConfiguration {
		return selCellLabel
	}
	return selListingSummary
}

// Ensure Extractor implements dongchedi.Extractor at compile time.
var _ dongchedi.Extractor = (*Extractor)(nil)

// Extractor extracts raw fields from rendered dongchedi pages using CSS
// selectors. It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the rendered page according to the record kind.
func (e *Extractor) Extract(page *dongchedi.RenderedPage, kind dongchedi.RecordKind) (*dongchedi.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINVALID, "failed to parse HTML for %s: %v", page.URL, err)
	}

	switch kind {
	case dongchedi.RecordKindMarketplace:
		return e.extractMarketplace(doc, page.URL)
	case dongchedi.RecordKindConfiguration:
		return e.extractConfiguration(doc)
	default:
		return nil, dongchedi.Errorf(dongchedi.EINVALID, "unknown record kind %q", kind)
	}
}

// extractMarketplace extracts the flat listing summary: title, price, the
// key-info cells (mileage, registration date, etc.), the image gallery
// and the configuration-page link.
func (e *Extractor) extractMarketplace(doc *goquery.Document, pageURL string) (*dongchedi.Extraction, error) {
	summary := doc.Find(selListingSummary)
	if summary.Length() == 0 {
		return nil, dongchedi.Errorf(dongchedi.ESTRUCTURE, "listing summary region absent from %s", pageURL)
	}

	ex := &dongchedi.Extraction{
		Title: strings.TrimSpace(doc.Find(selListingTitle).First().Text()),
	}

	if price := cellText(summary.Find(selListingPrice).First()); price != "" {
		ex.Fields = append(ex.Fields, dongchedi.RawField{Label: "售价", Value: price})
	}

	// Key-info cells render as value-over-label pairs.
	doc.Find(selListingCells).Each(func(_ int, cell *goquery.Selection) {
		ps := cell.Find("p")
		if ps.Length() < 2 {
			return
		}
		value := cellText(ps.First())
		label := cellText(ps.Last())
		if label == "" {
			return
		}
		ex.Fields = append(ex.Fields, dongchedi.RawField{Label: label, Value: value})
	})

	ex.ImageURLs = extractGallery(doc)

	if href, ok := doc.Find(selListingConfig).First().Attr("href"); ok {
		ex.ConfigURL = resolveURL(pageURL, href)
	}

	return ex, nil
}

// extractConfiguration extracts the nested option groups. GroupPath
// records the section title and, when present, the sub-group heading
// above the cell.
func (e *Extractor) extractConfiguration(doc *goquery.Document) (*dongchedi.Extraction, error) {
	sections := doc.Find(selConfigSection)
	if sections.Length() == 0 {
		return nil, dongchedi.Errorf(dongchedi.ESTRUCTURE, "configuration tables absent")
	}

	ex := &dongchedi.Extraction{}
	sections.Each(func(_ int, section *goquery.Selection) {
		var path []string
		if title := cellText(section.Find(selSectionTitle).First()); title != "" {
			path = append(path, title)
		}

		section.Find(selCellLabel).Each(func(_ int, label *goquery.Selection) {
			groupPath := path
			if heading := cellText(closestGroupHeading(label)); heading != "" {
				groupPath = append(append([]string(nil), path...), heading)
			}

			ex.Fields = append(ex.Fields, dongchedi.RawField{
				Label:     cellText(label),
				Value:     cellText(label.Parent().Find(selCellValue).First()),
				GroupPath: groupPath,
			})
		})
	})

	return ex, nil
}

// closestGroupHeading finds the sub-group heading for a cell label, if
// the cell's row group carries one.
func closestGroupHeading(label *goquery.Selection) *goquery.Selection {
	return label.Closest("div[class*=table_row]").Find(selGroupHeading).First()
}

// cellText decodes obfuscated glyphs and trims the text of a selection.
func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(DecodeGlyphs(sel.Text()))
}

// extractGallery collects gallery image URLs in document order, skipping
// SVG placeholders, upgrading thumbnail variants to full resolution, and
// deduplicating exact matches.
func extractGallery(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]bool)

	doc.Find(selGalleryImages).Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" || strings.Contains(src, "svg") {
			return
		}
		if strings.HasSuffix(src, "webp") && !strings.HasPrefix(src, "https") {
			src = "https:" + strings.Replace(src, "124x0", "1850x0", 1)
		}
		if seen[src] {
			return
		}
		seen[src] = true
		urls = append(urls, src)
	})

	return urls
}

// resolveURL resolves a relative href against the page URL.
// Returns empty string if either cannot be parsed.
func resolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
