// Package dict provides the versioned lookup tables that drive value
// normalization: the label-to-canonical-key mapping, the enumerated value
// vocabulary, and the "not available" markers. The shipped tables are
// embedded; a user-supplied YAML file can be merged on top to add labels,
// override translations, or disable labels entirely.
package dict

import (
	"embed"
	"os"
	"sort"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"gopkg.in/yaml.v3"
)

//go:embed data/labels.yaml
var embedded embed.FS

// Label describes one entry in the label table.
type Label struct {
	// Key is the canonical key the source label maps to.
	Key dongchedi.CanonicalKey `yaml:"key"`

	// Unit is an optional unit hint applied when the value carries a
	// bare scale suffix (e.g., a price in 万 is CNY-scaled).
	Unit string `yaml:"unit,omitempty"`

	// Enabled marks whether fields with this label are included in
	// records. Nil means enabled.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// valueEntry is the YAML form of one vocabulary entry.
type valueEntry struct {
	Kind   string `yaml:"kind"` // "bool" or "option"
	Bool   bool   `yaml:"bool,omitempty"`
	Option string `yaml:"option,omitempty"`
}

// tableFile is the on-disk/embedded YAML schema.
type tableFile struct {
	Version int                   `yaml:"version"`
	Labels  map[string]Label      `yaml:"labels"`
	Values  map[string]valueEntry `yaml:"values"`
	Missing []string              `yaml:"missing"`
}

// Table holds the loaded lookup tables. Table is immutable after loading
// and safe for concurrent use.
type Table struct {
	version int
	labels  map[string]Label
	values  map[string]dongchedi.Value
	missing map[string]struct{}
}

// Load returns the embedded table.
func Load() (*Table, error) {
	data, err := embedded.ReadFile("data/labels.yaml")
	if err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "embedded label table: %v", err)
	}
	return parse(data)
}

// LoadFile returns the embedded table with the YAML file at path merged
// on top. Labels, values and missing markers from the file add to or
// replace embedded entries.
func LoadFile(path string) (*Table, error) {
	t, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINVALID, "label table %q: %v", path, err)
	}

	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINVALID, "label table %q: %v", path, err)
	}

	for label, entry := range f.Labels {
		t.labels[label] = entry
	}
	for raw, entry := range f.Values {
		t.values[raw] = entry.value()
	}
	for _, m := range f.Missing {
		t.missing[m] = struct{}{}
	}
	if f.Version > 0 {
		t.version = f.Version
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "parsing label table: %v", err)
	}

	t := &Table{
		version: f.Version,
		labels:  make(map[string]Label, len(f.Labels)),
		values:  make(map[string]dongchedi.Value, len(f.Values)),
		missing: make(map[string]struct{}, len(f.Missing)),
	}
	for label, entry := range f.Labels {
		t.labels[label] = entry
	}
	for raw, entry := range f.Values {
		t.values[raw] = entry.value()
	}
	for _, m := range f.Missing {
		t.missing[m] = struct{}{}
	}
	return t, nil
}

func (e valueEntry) value() dongchedi.Value {
	if e.Kind == "bool" {
		return dongchedi.BoolValue(e.Bool)
	}
	return dongchedi.OptionValue(e.Option)
}

// Version returns the table version.
func (t *Table) Version() int { return t.version }

// LookupLabel resolves a source label to its table entry.
func (t *Table) LookupLabel(label string) (Label, bool) {
	e, ok := t.labels[label]
	return e, ok
}

// Enabled reports whether fields with the given label should be included
// in records. Unknown labels are enabled.
func (t *Table) Enabled(label string) bool {
	e, ok := t.labels[label]
	if !ok || e.Enabled == nil {
		return true
	}
	return *e.Enabled
}

// LookupValue resolves an enumerated value token (e.g., 标配, ●, 有) to
// its typed value.
func (t *Table) LookupValue(raw string) (dongchedi.Value, bool) {
	v, ok := t.values[raw]
	return v, ok
}

// IsMissing reports whether raw is an explicit "not available" marker.
func (t *Table) IsMissing(raw string) bool {
	_, ok := t.missing[raw]
	return ok
}

// Labels returns all known source labels, sorted, for display.
func (t *Table) Labels() []string {
	labels := make([]string, 0, len(t.labels))
	for l := range t.labels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
