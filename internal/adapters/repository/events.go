package repository

import (
	"fmt"

	"github.com/okian/ufcradar/internal/domain/model"
)

const (
	colURL      = "URL"
	colLocation = "LOCATION"
)

// ReadEventRows returns the raw rows of the events export in file order.
// limit > 0 stops after that many rows. Unlike the cache, a missing file is an error.
func ReadEventRows(path string, limit int) ([]model.EventRow, error) {
	var out []model.EventRow
	n := 0
	present, err := readTable(path, nil, func(r row) {
		n++
		if limit > 0 && n > limit {
			return
		}
		out = append(out, model.EventRow{
			Name:     r.Get(colEvent),
			URL:      r.Get(colURL),
			Date:     r.Get(colDate),
			Location: r.Get(colLocation),
		})
	})
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	return out, nil
}
