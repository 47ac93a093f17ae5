// Package markdown renders assembled vehicle records as markdown
// reports: one table per option group, in extraction order, with an
// extraction-problems section when the record carries any. The PDF
// renderer consumes the same record through the same interface.
package markdown

import (
	"io"
	"strconv"
	"strings"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/nao1215/markdown"
)

// Ensure Renderer implements dongchedi.RecordRenderer at compile time.
var _ dongchedi.RecordRenderer = (*Renderer)(nil)

// Renderer renders records as markdown.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the record as a markdown report.
func (r *Renderer) Render(w io.Writer, rec *dongchedi.VehicleRecord) error {
	md := markdown.NewMarkdown(w)

	title := rec.Title
	if title == "" {
		title = rec.SourceURL
	}
	md.H1(title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", rec.SourceURL},
			{"Kind", string(rec.Kind)},
			{"Parsed", rec.ParsedAt.Format("2006-01-02 15:04:05 MST")},
			{"Fields", strconv.Itoa(len(rec.Fields))},
			{"Problems", strconv.Itoa(len(rec.ExtractionErrors))},
		},
	})
	md.PlainText("")

	writeGroups(md, rec.Fields)
	writeProblems(md, rec.ExtractionErrors)

	return md.Build()
}

// writeGroups renders one table per group, preserving field order.
func writeGroups(md *markdown.Markdown, fields []dongchedi.TranslatedField) {
	var group string
	var rows [][]string

	flush := func() {
		if len(rows) == 0 {
			return
		}
		heading := group
		if heading == "" {
			heading = "Summary"
		}
		md.H2(heading)
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Field", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
		rows = nil
	}

	for _, f := range fields {
		g := strings.Join(f.GroupPath, " / ")
		if g != group && len(rows) > 0 {
			flush()
		}
		group = g
		rows = append(rows, []string{f.TranslatedLabel, fieldValue(f)})
	}
	flush()
}

// fieldValue renders a field's display value: translated text with the
// unit appended, or the untouched raw text for missing values.
func fieldValue(f dongchedi.TranslatedField) string {
	if f.Confidence == dongchedi.ConfidenceMissing {
		return f.Value.Text
	}
	return f.TranslatedValue
}

func writeProblems(md *markdown.Markdown, errs []dongchedi.ExtractionError) {
	if len(errs) == 0 {
		return
	}

	rows := make([][]string, 0, len(errs))
	for _, e := range errs {
		rows = append(rows, []string{e.Field, e.Reason})
	}

	md.H2("Extraction problems")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}
