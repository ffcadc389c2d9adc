package probe

import "errors"

// Sentinel errors for this package.
var (
	ErrUnhealthy    = errors.New("service health check failed")
	ErrNoFighters   = errors.New("no fighters to probe")
	ErrInconsistent = errors.New("radar answers differ between repeats")
)
