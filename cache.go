package recache

import (
	"fmt"
	"log/slog"
	"sync"
)

// Loader produces a value for a key absent from the cache. Get invokes it
// while the cache mutex is held: a Loader that calls back into the same
// cache instance deadlocks.
type Loader[V any] func(key uint64) (V, error)

// EvictCallback is invoked once per entry removed by capacity trimming,
// Clear or Dispose. It runs while the cache mutex is held: a callback that
// calls back into the same cache instance deadlocks.
type EvictCallback[V any] func(key uint64, value V)

// Cache is a bounded, thread-safe recency (LRU) cache keyed by uint64.
// When the entry count exceeds capacity, the least-recently-touched entries
// are removed and reported to the eviction callback. A configured Loader
// lets Get populate the cache transparently on a miss.
//
// The zero value is not usable; create instances with New or NewFromEnv.
type Cache[V any] struct {
	mu       sync.Mutex
	order    *recencyOrder[V]
	capacity int
	loader   Loader[V]
	onEvict  EvictCallback[V]
	disposed bool
	logger   *slog.Logger
	stats    Stats
}

// New creates a cache with DefaultCapacity unless overridden by options.
// The configured capacity is clamped into [MinCapacity, MaxCapacity].
func New[V any](opts ...Option[V]) *Cache[V] {
	cfg := defaultConfig[V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache[V]{
		order:    newRecencyOrder[V](),
		capacity: clampCapacity(cfg.capacity),
		loader:   cfg.loader,
		onEvict:  cfg.onEvict,
		logger:   cfg.logger,
	}
}

// Get returns the value for key, marking it most recently used. On a miss
// the configured loader is invoked and its result is inserted at the head
// of the recency order, evicting the least-recently-used entries if the
// cache is over capacity.
//
// Get fails with ErrNoLoader when the key is absent and no loader is
// configured, and with ErrDisposed after Dispose. A loader error is
// returned as-is and leaves the cache unchanged.
func (c *Cache[V]) Get(key uint64) (V, error) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return zero, ErrDisposed
	}

	if v, ok := c.order.peek(key); ok {
		c.order.touch(key)
		c.stats.Hits++
		return v, nil
	}

	c.stats.Misses++
	if c.loader == nil {
		return zero, ErrNoLoader
	}

	v, err := c.loader(key)
	if err != nil {
		c.stats.LoadFailures++
		return zero, err
	}
	c.stats.Loads++

	if err := c.order.insertAtHead(key, v); err != nil {
		return zero, err
	}
	c.trimLocked()

	return v, nil
}

// TryGet returns the value for key and whether it was present, marking a
// hit most recently used exactly like Get. The loader is never invoked,
// even on a miss. It fails only with ErrDisposed.
func (c *Cache[V]) TryGet(key uint64) (V, bool, error) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return zero, false, ErrDisposed
	}

	v, ok := c.order.peek(key)
	if !ok {
		c.stats.Misses++
		return zero, false, nil
	}

	c.order.touch(key)
	c.stats.Hits++
	return v, true, nil
}

// Set stores value under key. An existing entry has its value replaced in
// place and is marked most recently used; a new entry is inserted at the
// head and the cache is trimmed back to capacity.
func (c *Cache[V]) Set(key uint64, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}

	if c.order.setValue(key, value) {
		c.order.touch(key)
		return nil
	}

	if err := c.order.insertAtHead(key, value); err != nil {
		return err
	}
	c.trimLocked()

	return nil
}

// Peek returns the value for key without altering the recency order.
func (c *Cache[V]) Peek(key uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.peek(key)
}

// Contains reports whether key is present without altering the recency order.
func (c *Cache[V]) Contains(key uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.contains(key)
}

// Len returns the current number of entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.len()
}

// Cap returns the current capacity.
func (c *Cache[V]) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.capacity
}

// SetCapacity grows the capacity to n, clamped into
// [MinCapacity, MaxCapacity]. Shrinking is unsupported: when the clamped
// value is below the current capacity, SetCapacity fails with
// ErrCapacityShrink and the capacity is unchanged. Growth never evicts
// entries.
func (c *Cache[V]) SetCapacity(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}

	n = clampCapacity(n)
	if n < c.capacity {
		return fmt.Errorf("%w: %d below current %d", ErrCapacityShrink, n, c.capacity)
	}

	c.capacity = n
	c.trimLocked()

	return nil
}

// Clear removes all entries. When an eviction callback is registered it is
// invoked once per entry in head-to-tail (most- to least-recently-used)
// order before Clear returns; otherwise entries are dropped silently.
func (c *Cache[V]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}

	c.clearLocked()
	return nil
}

// Dispose tears the cache down exactly once: every remaining entry is
// reported to the eviction callback in head-to-tail order, the structures
// are emptied and the cache becomes terminally disposed. All subsequent
// operations fail with ErrDisposed.
//
// Dispose fails with ErrNoEvictCallback when no eviction callback is
// registered (disposal-time cleanup is treated as part of the caller
// contract) and with ErrAlreadyDisposed on a second call; in both cases the
// state is unchanged.
func (c *Cache[V]) Dispose() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrAlreadyDisposed
	}
	if c.onEvict == nil {
		return ErrNoEvictCallback
	}

	c.clearLocked()
	c.disposed = true
	c.logger.Info("cache disposed")

	return nil
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// trimLocked removes tail entries until the entry count is within capacity,
// notifying the eviction callback for each removed entry. Callers must hold
// the mutex.
func (c *Cache[V]) trimLocked() {
	for c.order.len() > c.capacity {
		key, value, err := c.order.removeTail()
		if err != nil {
			return
		}
		c.stats.Evictions++
		if c.onEvict != nil {
			c.onEvict(key, value)
		}
		c.logger.Debug("entry evicted",
			slog.Uint64("key", key),
			slog.Int("len", c.order.len()))
	}
}

// clearLocked drains every entry, notifying the eviction callback per entry
// in head-to-tail order. Callers must hold the mutex.
func (c *Cache[V]) clearLocked() {
	entries := c.order.drain()
	c.stats.Evictions += int64(len(entries))
	if c.onEvict != nil {
		for _, e := range entries {
			c.onEvict(e.key, e.value)
		}
	}
	if len(entries) > 0 {
		c.logger.Debug("cache cleared", slog.Int("entries", len(entries)))
	}
}
