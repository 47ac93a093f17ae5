// Package normalize converts raw extracted field values into the typed
// internal schema: localized numbers with scale suffixes, enumerated
// option vocabularies, yes/no equivalents, and explicit "not available"
// markers. Anything that matches no pattern falls back to raw text with
// inferred confidence.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/lmh17ever/dongchedi-parser/dict"
	"golang.org/x/text/width"
)

// Ensure ValueNormalizer implements dongchedi.Normalizer at compile time.
var _ dongchedi.Normalizer = (*ValueNormalizer)(nil)

// ValueNormalizer normalizes raw fields using the canonical dictionary
// tables. It is stateless apart from the immutable tables and safe for
// concurrent use.
type ValueNormalizer struct {
	table *dict.Table
}

// New creates a ValueNormalizer backed by the given dictionary table.
func New(table *dict.Table) *ValueNormalizer {
	return &ValueNormalizer{table: table}
}

// Normalize converts a raw field into the internal schema. The rules
// apply in order: scale/unit-suffixed numbers, enumerated vocabulary,
// raw-text fallback with inferred confidence, and explicit "not
// available" markers which yield missing confidence with the raw string
// preserved unchanged.
//
// The second return value reports whether the label resolved through the
// dictionary; false means a synthetic key was derived from the label
// text, with confidence capped at inferred.
func (n *ValueNormalizer) Normalize(raw dongchedi.RawField) (dongchedi.NormalizedField, bool) {
	label := CleanText(raw.Label)

	entry, mapped := n.table.LookupLabel(label)
	key := entry.Key
	if !mapped {
		key = SynthesizeKey(label)
	}

	f := dongchedi.NormalizedField{
		Key:       key,
		Label:     label,
		GroupPath: raw.GroupPath,
	}

	value := CleanText(raw.Value)
	switch {
	case value == "" || n.table.IsMissing(value):
		// Preserve the original raw string unchanged for missing values.
		f.Value = dongchedi.TextValue(raw.Value)
		f.Confidence = dongchedi.ConfidenceMissing

	default:
		if v, ok := n.table.LookupValue(value); ok {
			f.Value = v
			f.Confidence = dongchedi.ConfidenceExact
			break
		}
		if num, unit, ok := parseNumber(value, entry.Unit); ok {
			f.Value = dongchedi.NumberValue(num)
			f.Unit = unit
			f.Confidence = dongchedi.ConfidenceExact
			break
		}
		f.Value = dongchedi.TextValue(value)
		f.Confidence = dongchedi.ConfidenceInferred
	}

	// A synthesized key means the value's meaning is unverified; cap its
	// confidence unless the value is explicitly missing.
	if !mapped && f.Confidence == dongchedi.ConfidenceExact {
		f.Confidence = dongchedi.ConfidenceInferred
	}

	return f, mapped
}

// Enabled reports whether fields with the given source label are
// included in records. Labels are disabled through a dictionary override
// file; unknown labels are enabled.
func (n *ValueNormalizer) Enabled(label string) bool {
	return n.table.Enabled(CleanText(label))
}

// CleanText folds full-width characters to their half-width equivalents,
// removes the 图示 ("illustrated") marker dongchedi appends to some cells,
// and trims surrounding whitespace.
func CleanText(s string) string {
	s = width.Narrow.String(s)
	s = strings.ReplaceAll(s, "图示", "")
	return strings.TrimSpace(s)
}

// asciiKey matches labels that can become readable canonical keys.
var asciiKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _/().-]*$`)

// SynthesizeKey derives a deterministic canonical key from an unmapped
// label so results remain stable across runs. ASCII labels become
// lowercase slugs; anything else is keyed by its hash.
func SynthesizeKey(label string) dongchedi.CanonicalKey {
	if asciiKey.MatchString(label) {
		slug := strings.ToLower(label)
		slug = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				return r
			default:
				return '_'
			}
		}, slug)
		slug = strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '_' }), "_"), "_")
		if slug != "" {
			return dongchedi.CanonicalKey(slug)
		}
	}
	return dongchedi.CanonicalKey(fmt.Sprintf("label-%08x", xxhash.Sum64String(label)>>32))
}

// numberPattern matches a decimal number followed by an optional suffix.
var numberPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(.*)$`)

// unitSuffix describes a recognized unit or scale suffix.
type unitSuffix struct {
	scale float64
	unit  string
}

// unitSuffixes maps source and canonical unit tokens to the scale they
// apply and the canonical unit they carry. A 万 ("ten thousand") suffix
// scales the number; its unit comes from the label's unit hint.
var unitSuffixes = map[string]unitSuffix{
	"万公里":       {1e4, "km"},
	"万元":        {1e4, "CNY"},
	"万":         {1e4, ""},
	"公里":        {1, "km"},
	"km":        {1, "km"},
	"元":         {1, "CNY"},
	"CNY":       {1, "CNY"},
	"马力":        {1, "Ps"},
	"Ps":        {1, "Ps"},
	"kW":        {1, "kW"},
	"kWh":       {1, "kWh"},
	"N·m":       {1, "N·m"},
	"牛·米":       {1, "N·m"},
	"km/h":      {1, "km/h"},
	"L/100km":   {1, "L/100km"},
	"kWh/100km": {1, "kWh/100km"},
	"mm":        {1, "mm"},
	"mL":        {1, "mL"},
	"L":         {1, "L"},
	"kg":        {1, "kg"},
	"s":         {1, "s"},
	"秒":         {1, "s"},
	"%":         {1, "%"},
	"年":         {1, "year"},
	"year":      {1, "year"},
	"次":         {1, ""},
	"个":         {1, ""},
	"座":         {1, ""},
	"门":         {1, ""},
}

// parseNumber decodes a localized numeric value with an optional scale or
// unit suffix, e.g. "15.98万" → 159800 (CNY when the label hints a price)
// or "1.2万公里" → 12000 km. Thousand separators are stripped first.
func parseNumber(s, unitHint string) (float64, string, bool) {
	s = strings.ReplaceAll(s, ",", "")

	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}

	suffix := strings.TrimSpace(m[2])
	if suffix == "" {
		return num, unitHint, true
	}

	us, ok := unitSuffixes[suffix]
	if !ok {
		return 0, "", false
	}

	num *= us.scale
	// Scaled values are integral in the source data; keep float noise
	// out of rendered output.
	num = math.Round(num*1e6) / 1e6

	unit := us.unit
	if unit == "" {
		unit = unitHint
	}
	return num, unit, true
}
