// Package record loads the source table of texts to annotate and resolves
// records by position or by unique id. The table is read once at startup
// and never mutated afterwards.
package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrLoad indicates a missing source file or a header without the
	// configured id/text columns.
	ErrLoad = errors.New("record: load failed")

	// ErrNotFound indicates no record carries the requested id.
	ErrNotFound = errors.New("record: id not found")
)

// Record is one row of source data: a unique id, the text body, and any
// additional display columns. Immutable once loaded.
type Record struct {
	ID    string
	Text  string
	Extra map[string]string
}

// Store holds the ordered record sequence. Read-only after Load.
type Store struct {
	idColumn     string
	textColumn   string
	extraColumns []string
	records      []Record
}

// Load parses a CSV file (header row required) into a Store. The header
// must contain idColumn, textColumn, and every name in extraColumns.
func Load(path, idColumn, textColumn string, extraColumns []string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", ErrLoad, path, err)
	}

	// First occurrence wins on duplicate header names.
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	idIdx, ok := cols[idColumn]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrLoad, path, idColumn)
	}
	textIdx, ok := cols[textColumn]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrLoad, path, textColumn)
	}
	extraIdx := make(map[string]int, len(extraColumns))
	for _, name := range extraColumns {
		idx, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no %q column", ErrLoad, path, name)
		}
		extraIdx[name] = idx
	}

	s := &Store{
		idColumn:     idColumn,
		textColumn:   textColumn,
		extraColumns: append([]string(nil), extraColumns...),
	}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
		}
		rec := Record{ID: row[idIdx], Text: row[textIdx]}
		if len(extraIdx) > 0 {
			rec.Extra = make(map[string]string, len(extraIdx))
			for name, idx := range extraIdx {
				rec.Extra[name] = row[idx]
			}
		}
		s.records = append(s.records, rec)
	}
	return s, nil
}

// NewStore builds a Store from already-materialized records. Used by tests
// and by callers that assemble records from sources other than a CSV file.
func NewStore(records []Record, idColumn, textColumn string, extraColumns []string) *Store {
	return &Store{
		idColumn:     idColumn,
		textColumn:   textColumn,
		extraColumns: append([]string(nil), extraColumns...),
		records:      records,
	}
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// At returns the record at position i and whether i is in range.
func (s *Store) At(i int) (Record, bool) {
	if i < 0 || i >= len(s.records) {
		return Record{}, false
	}
	return s.records[i], true
}

// FindIndexByID scans the sequence for the first record with the given id.
// Duplicate ids are not rejected; the first match wins.
func (s *Store) FindIndexByID(id string) (int, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// IDColumn returns the configured unique-id column name.
func (s *Store) IDColumn() string { return s.idColumn }

// TextColumn returns the configured text column name.
func (s *Store) TextColumn() string { return s.textColumn }

// ExtraColumns returns the configured display column names in order.
func (s *Store) ExtraColumns() []string { return s.extraColumns }
