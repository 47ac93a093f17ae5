package dongchedi

// Extraction holds everything an Extractor pulled out of one rendered
// page. Fields preserve source order: group path first, then field order
// within each group.
type Extraction struct {
	// Fields are the raw key/value pairs found in the page's known
	// structural regions.
	Fields []RawField

	// Title is the listing headline (marketplace pages only).
	Title string

	// ImageURLs are the gallery image URLs (marketplace pages only),
	// deduplicated, in gallery order.
	ImageURLs []string

	// ConfigURL is the absolute URL of the vehicle's configuration page,
	// when the listing links to one (marketplace pages only).
	ConfigURL string
}

// Extractor locates known structural regions in a rendered page and
// extracts raw fields from them.
type Extractor interface {
	// Extract parses the rendered page according to the record kind.
	//
	// A region that is structurally present but empty yields zero fields
	// for that region. A region that is entirely absent from the DOM
	// returns ESTRUCTURE naming the offending region, so page layout
	// drift is detectable rather than silently ignored.
	Extract(page *RenderedPage, kind RecordKind) (*Extraction, error)
}
