// Package probe drives concurrent radar queries against a running server and
// checks that repeated queries for the same fighter return the same answer.
package probe

import (
	"time"

	"github.com/okian/ufcradar/pkg/logger"
)

// Option configures a Prober.
type Option func(*Prober)

// WithWorkers sets the number of concurrent workers. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithRepeat sets how many times each fighter is queried. Values below 1 are ignored.
func WithRepeat(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.repeat = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Prober) {
		if l != nil {
			p.logger = l
		}
	}
}
