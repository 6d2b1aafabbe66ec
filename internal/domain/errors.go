package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotAcceptable    = errors.New("no acceptable representation: only application/json is available")
	ErrRateLimited      = errors.New("rate limit exceeded, try again later")
)
