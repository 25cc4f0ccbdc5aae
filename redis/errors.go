package redis

import "errors"

// Domain-specific Redis errors for consistent error handling.
// Use errors.Is() to check error types for retry logic and user-facing messages.
var (
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL      = errors.New("empty redis connection URL")
	ErrHealthcheckFailed       = errors.New("redis healthcheck failed")
	// ErrKeyNotFound is returned by loaders when the Redis key is absent,
	// distinguishing a genuine miss from a transport failure.
	ErrKeyNotFound = errors.New("redis key not found")
	// ErrDecodeFailed is returned by loaders when the stored payload cannot
	// be decoded into the value type.
	ErrDecodeFailed = errors.New("failed to decode redis value")
)
