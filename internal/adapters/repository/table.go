package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const bom = "\ufeff"

// row is one CSV record addressed by upper-cased header name.
type row struct {
	columns map[string]int
	cells   []string
}

// Get returns the trimmed cell for column, or "" when the column or cell is absent.
func (r row) Get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Has reports whether the header contains column.
func (r row) Has(column string) bool {
	_, ok := r.columns[column]
	return ok
}

// readTable streams path through fn. A missing file is reported as
// present=false with no error; extra columns and short rows are tolerated.
func readTable(path string, header func(columns map[string]int) bool, fn func(row)) (present bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrReadSource, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("%w: %s: %w", ErrReadSource, path, err)
	}
	if len(head) == 0 {
		return true, fmt.Errorf("%w: %s", ErrEmptyHeader, path)
	}

	columns := make(map[string]int, len(head))
	for i, h := range head {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		columns[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	if header != nil && !header(columns) {
		return true, nil
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return true, fmt.Errorf("%w: %s: %w", ErrReadSource, path, err)
		}
		fn(row{columns: columns, cells: rec})
	}
}
