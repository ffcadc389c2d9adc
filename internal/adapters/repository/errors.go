package repository

import "errors"

// Sentinel errors returned by the loader.
var (
	ErrReadSource  = errors.New("read source")
	ErrEmptyHeader = errors.New("source has no header row")
	ErrMissingFile = errors.New("source file does not exist")
)
