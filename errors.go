package recache

import "errors"

var (
	// ErrCapacityShrink is returned when SetCapacity requests a value below the current capacity.
	ErrCapacityShrink = errors.New("cache capacity cannot shrink")
	// ErrNoLoader is returned by Get on a miss when no loader is configured.
	ErrNoLoader = errors.New("no loader configured")
	// ErrNoEvictCallback is returned by Dispose when no eviction callback is registered.
	ErrNoEvictCallback = errors.New("no eviction callback registered")
	// ErrAlreadyDisposed is returned by Dispose when the cache was already disposed.
	ErrAlreadyDisposed = errors.New("cache already disposed")
	// ErrDisposed is returned by operations on a disposed cache.
	ErrDisposed = errors.New("cache is disposed")
	// ErrDuplicateKey reports an insert for a key already present in the recency order.
	// It guards an internal invariant and never surfaces through correct controller logic.
	ErrDuplicateKey = errors.New("duplicate key in recency order")
	// ErrEmpty reports a tail removal from an empty recency order.
	// It guards an internal invariant and never surfaces through correct controller logic.
	ErrEmpty = errors.New("recency order is empty")
)
