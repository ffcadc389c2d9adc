package service

import "github.com/okian/ufcradar/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultWindow sets the number of fights used when a query omits it.
func WithDefaultWindow(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.defaultWindow = n
		}
	}
}

// WithMaxWindow caps the number of fights a query may ask for. 0 removes the cap.
func WithMaxWindow(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxWindow = n
		}
	}
}

// WithWarmCache loads every source during Start.
func WithWarmCache(enabled bool) Option {
	return func(s *Service) {
		s.warm = enabled
	}
}
