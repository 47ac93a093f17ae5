package dongchedi

import (
	"context"
	"time"
)

// RecordKind selects the kind of page a parse request targets.
type RecordKind string

// Supported record kinds.
const (
	// RecordKindMarketplace is a listing-style page summarizing one
	// vehicle for sale.
	RecordKindMarketplace RecordKind = "marketplace"

	// RecordKindConfiguration is a page enumerating trim/option details
	// for one vehicle model.
	RecordKindConfiguration RecordKind = "configuration"
)

// Valid reports whether k is a known record kind.
func (k RecordKind) Valid() bool {
	return k == RecordKindMarketplace || k == RecordKindConfiguration
}

// ExtractionError records a non-fatal problem encountered while building
// a record: an unmapped label, a missing value, or a failed translation.
type ExtractionError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// VehicleRecord is the final output of one parse request. It is immutable
// once assembled; the assembler owns it until it is handed to the report
// renderer.
type VehicleRecord struct {
	ID               string            `json:"id"`
	SourceURL        string            `json:"sourceUrl"`
	Kind             RecordKind        `json:"kind"`
	Title            string            `json:"title,omitempty"`
	Fields           []TranslatedField `json:"fields"`
	ImageURLs        []string          `json:"imageUrls,omitempty"`
	ExtractionErrors []ExtractionError `json:"extractionErrors,omitempty"`
	ContentHash      string            `json:"contentHash,omitempty"`
	ParsedAt         time.Time         `json:"parsedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *VehicleRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if !r.Kind.Valid() {
		return Errorf(EINVALID, "unknown record kind %q", r.Kind)
	}
	return nil
}

// AssembleRecord combines translated fields and accumulated extraction
// errors into one VehicleRecord. Pure aggregation: field order follows
// extraction order (group path, then field order within group) so report
// output is deterministic for the same input page.
//
// Duplicate raw labels map to the same canonical key; the record keeps
// the first occurrence's position, and a later occurrence overwrites the
// field only when its confidence is strictly higher.
func AssembleRecord(sourceURL string, kind RecordKind, fields []TranslatedField, errs []ExtractionError) *VehicleRecord {
	byKey := make(map[CanonicalKey]int, len(fields))
	deduped := make([]TranslatedField, 0, len(fields))
	for _, f := range fields {
		if i, ok := byKey[f.Key]; ok {
			if f.Confidence.Rank() > deduped[i].Confidence.Rank() {
				deduped[i] = f
			}
			continue
		}
		byKey[f.Key] = len(deduped)
		deduped = append(deduped, f)
	}

	return &VehicleRecord{
		SourceURL:        sourceURL,
		Kind:             kind,
		Fields:           deduped,
		ExtractionErrors: append([]ExtractionError(nil), errs...),
		ParsedAt:         time.Now().UTC(),
	}
}

// RecordService represents a service for managing parsed vehicle records.
type RecordService interface {
	// CreateRecord persists a record, assigning its ID and content hash.
	CreateRecord(ctx context.Context, rec *VehicleRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*VehicleRecord, error)

	// FindRecords retrieves records matching the filter, newest first by
	// default.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*VehicleRecord, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID        *string     `json:"id"`
	SourceURL *string     `json:"sourceUrl"`
	Kind      *RecordKind `json:"kind"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
