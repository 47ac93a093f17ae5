package dongchedi

import "strconv"

// RawField is a single key/value pair as found in the rendered DOM,
// before any normalization. GroupPath records the nesting of option
// group headings for configuration pages (e.g., ["Exterior", "Wheels"]);
// it is empty for flat marketplace fields.
//
// RawFields are ephemeral: they are produced by an Extractor and consumed
// immediately by a Normalizer.
type RawField struct {
	Label     string
	Value     string
	GroupPath []string
}

// CanonicalKey is the internal, language-neutral identifier for a data
// field, independent of the source label text.
type CanonicalKey string

// Confidence indicates how reliably a value was parsed.
type Confidence string

// Confidence levels, ordered missing < inferred < exact.
const (
	ConfidenceExact    Confidence = "exact"
	ConfidenceInferred Confidence = "inferred"
	ConfidenceMissing  Confidence = "missing"
)

// Rank returns the ordering of the confidence level. Higher is better.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceExact:
		return 2
	case ConfidenceInferred:
		return 1
	default:
		return 0
	}
}

// ValueKind discriminates the closed set of field value variants.
type ValueKind string

// Value variants.
const (
	KindNumber ValueKind = "number"
	KindText   ValueKind = "text"
	KindBool   ValueKind = "bool"
	KindOption ValueKind = "option"
)

// Value is a closed tagged variant holding one parsed field value.
// Exactly the field selected by Kind is meaningful.
type Value struct {
	Kind   ValueKind `json:"kind"`
	Number float64   `json:"number,omitempty"`
	Text   string    `json:"text,omitempty"`
	Bool   bool      `json:"bool,omitempty"`
	Option string    `json:"option,omitempty"`
}

// NumberValue returns a Value holding a parsed number.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// TextValue returns a Value holding free text.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// BoolValue returns a Value holding a yes/no equivalent.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// OptionValue returns a Value holding an enumerated option token.
func OptionValue(o string) Value { return Value{Kind: KindOption, Option: o} }

// String renders the value in its canonical textual form. Normalizing the
// rendered form again yields an identical value.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		if v.Bool {
			return "yes"
		}
		return "no"
	case KindOption:
		return v.Option
	default:
		return v.Text
	}
}

// NormalizedField is a RawField converted into the internal schema.
// Label and GroupPath are carried through from the raw field so that
// translation and ordering can operate downstream.
type NormalizedField struct {
	Key        CanonicalKey `json:"key"`
	Label      string       `json:"label"`
	Value      Value        `json:"value"`
	Unit       string       `json:"unit,omitempty"`
	Confidence Confidence   `json:"confidence"`
	GroupPath  []string     `json:"groupPath,omitempty"`
}

// Raw renders the field's value (with unit) back into the canonical raw
// string form accepted by a Normalizer.
func (f NormalizedField) Raw() string {
	s := f.Value.String()
	if f.Unit != "" {
		s += " " + f.Unit
	}
	return s
}

// TranslatedField is a NormalizedField with translated label and value
// text merged in. For fields that could not be translated, both carry the
// original text.
type TranslatedField struct {
	NormalizedField
	TranslatedLabel string `json:"translatedLabel"`
	TranslatedValue string `json:"translatedValue"`
}

// Normalizer converts raw extracted fields into typed normalized fields.
type Normalizer interface {
	// Normalize converts a raw field into the internal schema. The
	// second return value reports whether the label resolved through the
	// canonical dictionary; false means a synthetic key was derived from
	// the label text and the caller should record an extraction gap.
	Normalize(raw RawField) (NormalizedField, bool)

	// Enabled reports whether fields with the given source label should
	// be included in records. Disabled labels are dropped before
	// normalization, without an extraction gap.
	Enabled(label string) bool
}
