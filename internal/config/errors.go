package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidMaxRequests is returned when the request limit is negative.
	// Zero is allowed and means no request is sent.
	ErrInvalidMaxRequests = errors.New("invalid max requests: must be zero or positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidPendingCap is returned when the pending cap is not positive.
	ErrInvalidPendingCap = errors.New("invalid pending cap: must be positive")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidRequestRate is returned when the request rate is negative.
	// Use 0 for no pacing.
	ErrInvalidRequestRate = errors.New("invalid request rate: must be non-negative")

	// ErrNoDBDir is returned when no database directory is configured.
	ErrNoDBDir = errors.New("no database directory configured")
)
