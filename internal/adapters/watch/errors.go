package watch

import "errors"

// Sentinel errors for the data watcher.
var (
	ErrNoFiles = errors.New("no files to watch")
	ErrWatch   = errors.New("watch data directory")
)
