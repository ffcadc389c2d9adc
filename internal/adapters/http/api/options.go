package api

import "github.com/okian/ufcradar/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
