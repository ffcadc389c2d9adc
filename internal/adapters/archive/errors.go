package archive

import "errors"

// Sentinel errors for the event archive.
var (
	ErrOpen     = errors.New("open archive")
	ErrNotFound = errors.New("event not found")
)
