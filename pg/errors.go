package pg

import "errors"

var (
	// ErrInvalidConfig is returned by NewLoader for missing or unusable arguments.
	ErrInvalidConfig = errors.New("invalid loader config")
	// ErrKeyNotFound is returned by loaders when the query yields no row,
	// distinguishing a genuine miss from a query failure.
	ErrKeyNotFound = errors.New("postgres key not found")
)
