package watch

import (
	"time"

	"github.com/okian/ufcradar/pkg/logger"
)

// Option applies a configuration option to the Watcher.
type Option func(*Watcher)

// WithDebounce coalesces events arriving within d into one invalidation.
// Zero invalidates on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets a custom logger for the watcher.
func WithLogger(l logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}
