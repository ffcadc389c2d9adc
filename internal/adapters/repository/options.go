// Package repository loads the ufcstats CSV exports into immutable in-memory
// indices and memoizes them per source.
package repository

import "github.com/okian/ufcradar/pkg/logger"

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}
