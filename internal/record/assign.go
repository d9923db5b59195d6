package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// AssignIDs copies the CSV at src to dst, prepending an id column filled
// with generated UUIDs. It is meant for datasets that arrive without a
// usable unique-id column. Fails with ErrLoad if src cannot be read, or
// with a plain error if the header already contains idColumn.
func AssignIDs(src, dst, idColumn string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%w: reading header of %s: %v", ErrLoad, src, err)
	}
	for _, name := range header {
		if name == idColumn {
			return fmt.Errorf("record: %s already has a %q column", src, idColumn)
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("record: create %s: %w", dst, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(append([]string{idColumn}, header...)); err != nil {
		return fmt.Errorf("record: write %s: %w", dst, err)
	}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading %s: %v", ErrLoad, src, err)
		}
		if err := w.Write(append([]string{uuid.NewString()}, row...)); err != nil {
			return fmt.Errorf("record: write %s: %w", dst, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("record: write %s: %w", dst, err)
	}
	return nil
}
