package service

import "errors"

// Sentinel errors returned by the service. Transport layers map them with errors.Is.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("no fights found")
	ErrServiceUnavailable = errors.New("data sources unavailable")
)
