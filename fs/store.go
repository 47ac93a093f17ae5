// Package fs persists assembled records to disk: one directory per
// record holding the record JSON and any downloaded gallery images.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// RecordFileName is the name of the record JSON inside a record directory.
const RecordFileName = "record.json"

// ImagesDirName is the name of the images subdirectory.
const ImagesDirName = "images"

// Store writes records under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SaveRecord writes the record as indented JSON into its own directory
// and returns the directory path. The directory is named by record ID,
// falling back to the parse timestamp for unsaved records.
func (s *Store) SaveRecord(rec *dongchedi.VehicleRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	name := rec.ID
	if name == "" {
		name = rec.ParsedAt.UTC().Format("20060102-150405")
	}
	dir := filepath.Join(s.baseDir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, RecordFileName), data, 0644); err != nil {
		return "", err
	}

	return dir, nil
}

// ImagesDir returns (and creates) the images subdirectory for a record
// directory returned by SaveRecord.
func (s *Store) ImagesDir(recordDir string) (string, error) {
	dir := filepath.Join(recordDir, ImagesDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
