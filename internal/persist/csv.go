// Package persist serializes the annotation tables to flat CSV files.
//
// Both files are rewritten whole on every save, with no locking and no
// cross-file transaction; a crash between the two writes can leave labels
// and tags mutually inconsistent. That is accepted, not mitigated.
package persist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"widgelabel/internal/annotate"
)

// TagSeparator joins a record's tags into a single CSV cell. The tag set
// round-trips as long as no tag contains the separator itself; the UI's
// fixed tags never do.
const TagSeparator = ";"

// sentimentColumn and tagsColumn are the fixed second-column names of the
// two files. The first column is the configured id column.
const (
	sentimentColumn = "sentiment"
	tagsColumn      = "tags"
)

// ErrLoad indicates a malformed annotation file: wrong header or a row
// with the wrong shape.
var ErrLoad = errors.New("persist: load failed")

// Files binds the annotation state to its two on-disk CSV files.
type Files struct {
	IDColumn  string
	LabelPath string
	TagsPath  string

	// AutoSaveEnabled makes AutoSave persist both tables; when false
	// AutoSave is a no-op and only explicit saves write to disk.
	AutoSaveEnabled bool
}

// IsNotExist reports whether err came from a missing annotation file, the
// one load failure the caller is expected to recover from (by starting
// with an empty table).
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// SaveLabels overwrites the label file with the sentiment table, one row
// per entry in recency order, header included even when the table is empty.
func (f Files) SaveLabels(st *annotate.State) error {
	rows := [][]string{{f.IDColumn, sentimentColumn}}
	for _, e := range st.Sentiments() {
		rows = append(rows, []string{e.ID, e.Sentiment})
	}
	return writeCSV(f.LabelPath, rows)
}

// SaveTags overwrites the tags file with the tag table, each tag set
// flattened to one TagSeparator-joined cell.
func (f Files) SaveTags(st *annotate.State) error {
	rows := [][]string{{f.IDColumn, tagsColumn}}
	for _, e := range st.Tags() {
		rows = append(rows, []string{e.ID, strings.Join(e.Tags, TagSeparator)})
	}
	return writeCSV(f.TagsPath, rows)
}

// SaveAll persists both tables. Labels first, then tags, mirroring the
// original save order.
func (f Files) SaveAll(st *annotate.State) error {
	if err := f.SaveLabels(st); err != nil {
		return err
	}
	return f.SaveTags(st)
}

// AutoSave persists both tables when autosave is enabled. Failures
// propagate to the caller; there is no retry.
func (f Files) AutoSave(st *annotate.State) error {
	if !f.AutoSaveEnabled {
		return nil
	}
	return f.SaveAll(st)
}

// LoadLabels fully replaces the sentiment table with the label file's
// contents. A missing file satisfies IsNotExist; a malformed file fails
// with ErrLoad.
func (f Files) LoadLabels(st *annotate.State) error {
	rows, err := readCSV(f.LabelPath, f.IDColumn, sentimentColumn)
	if err != nil {
		return err
	}
	entries := make([]annotate.SentimentEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, annotate.SentimentEntry{ID: row[0], Sentiment: row[1]})
	}
	st.ReplaceSentiments(entries)
	return nil
}

// LoadTags fully replaces the tag table with the tags file's contents.
func (f Files) LoadTags(st *annotate.State) error {
	rows, err := readCSV(f.TagsPath, f.IDColumn, tagsColumn)
	if err != nil {
		return err
	}
	entries := make([]annotate.TagEntry, 0, len(rows))
	for _, row := range rows {
		var tags []string
		for _, t := range strings.Split(row[1], TagSeparator) {
			if t != "" {
				tags = append(tags, t)
			}
		}
		entries = append(entries, annotate.TagEntry{ID: row[0], Tags: tags})
	}
	st.ReplaceTags(entries)
	return nil
}

// LoadAll loads both tables, reporting the first failure.
func (f Files) LoadAll(st *annotate.State) error {
	if err := f.LoadLabels(st); err != nil {
		return err
	}
	return f.LoadTags(st)
}

func writeCSV(path string, rows [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}
	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		out.Close()
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("persist: close %s: %w", path, err)
	}
	return nil
}

func readCSV(path, idColumn, valueColumn string) ([][]string, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = 2
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", ErrLoad, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", ErrLoad, path, err)
	}
	if header[0] != idColumn || header[1] != valueColumn {
		return nil, fmt.Errorf("%w: %s header is %v, want [%s %s]", ErrLoad, path, header, idColumn, valueColumn)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
