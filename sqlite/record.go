package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// Compile-time interface verification.
var _ dongchedi.RecordService = (*RecordService)(nil)

// RecordService implements dongchedi.RecordService using SQLite. Fields
// and extraction errors are stored as one JSON payload per record; the
// queryable columns (URL, kind, timestamps) are broken out.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// payload is the JSON-serialized portion of a record.
type payload struct {
	Fields           []dongchedi.TranslatedField `json:"fields"`
	ImageURLs        []string                    `json:"imageUrls,omitempty"`
	ExtractionErrors []dongchedi.ExtractionError `json:"extractionErrors,omitempty"`
}

// hashPayload computes xxHash of the payload and returns a hex string.
func hashPayload(data []byte) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	return hex.EncodeToString(b[:])
}

// CreateRecord persists a record, assigning its ID and content hash.
func (s *RecordService) CreateRecord(ctx context.Context, rec *dongchedi.VehicleRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(payload{
		Fields:           rec.Fields,
		ImageURLs:        rec.ImageURLs,
		ExtractionErrors: rec.ExtractionErrors,
	})
	if err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ContentHash = hashPayload(data)
	if rec.ParsedAt.IsZero() {
		rec.ParsedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, source_url, kind, title, payload, content_hash, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, string(rec.Kind), rec.Title, string(data), rec.ContentHash,
		rec.ParsedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*dongchedi.VehicleRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, kind, title, payload, content_hash, parsed_at
		FROM records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, dongchedi.Errorf(dongchedi.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter dongchedi.RecordFilter) ([]*dongchedi.VehicleRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, kind, title, payload, content_hash, parsed_at FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}

	query.WriteString(" ORDER BY parsed_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*dongchedi.VehicleRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return dongchedi.Errorf(dongchedi.ENOTFOUND, "record not found")
	}
	return nil
}

// scanRecord reads one row into a VehicleRecord.
func scanRecord(scan func(dest ...any) error) (*dongchedi.VehicleRecord, error) {
	var rec dongchedi.VehicleRecord
	var kind, data, parsedAt string

	if err := scan(&rec.ID, &rec.SourceURL, &kind, &rec.Title, &data, &rec.ContentHash, &parsedAt); err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "corrupt record payload: %v", err)
	}
	rec.Kind = dongchedi.RecordKind(kind)
	rec.Fields = p.Fields
	rec.ImageURLs = p.ImageURLs
	rec.ExtractionErrors = p.ExtractionErrors

	t, err := time.Parse(time.RFC3339, parsedAt)
	if err != nil {
		return nil, dongchedi.Errorf(dongchedi.EINTERNAL, "corrupt parsed_at: %v", err)
	}
	rec.ParsedAt = t

	return &rec, nil
}
