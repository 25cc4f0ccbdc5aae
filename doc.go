// Package recache provides a bounded, thread-safe recency (LRU) cache with
// loader-driven population and eviction callbacks. It is designed as a
// building block for storage layers that need to keep a limited number of
// keyed values in memory and reload them transparently on a miss.
//
// # Features
//
//   - Thread-safe operations serialized through a single mutex
//   - Generic value type with compile-time type safety
//   - LRU (Least Recently Used) eviction when capacity is exceeded
//   - Optional miss loader invoked transparently by Get
//   - Optional eviction callbacks for resource cleanup
//   - Grow-only capacity with explicit bounds
//   - One-time disposal with guaranteed eviction notification
//
// # Usage
//
// Create a cache with a capacity and use Set/TryGet directly:
//
//	import "github.com/dmitrymomot/recache"
//
//	c := recache.New[*User](recache.WithCapacity[*User](100))
//
//	// Store values
//	c.Set(123, &User{ID: 123, Name: "John"})
//	c.Set(456, &User{ID: 456, Name: "Jane"})
//
//	// Retrieve values without triggering the loader
//	if user, found, err := c.TryGet(123); err == nil && found {
//		fmt.Printf("Found user: %s\n", user.Name)
//	}
//
// # Loader-Driven Population
//
// Register a loader to have Get populate the cache transparently on a miss:
//
//	queryCache := recache.New[[]byte](
//		recache.WithCapacity[[]byte](1000),
//		recache.WithLoader(func(key uint64) ([]byte, error) {
//			return fetchFromDatabase(key)
//		}),
//	)
//
//	// Returns the cached value, or loads, caches and returns it.
//	result, err := queryCache.Get(42)
//
// Get fails with ErrNoLoader when the key is absent and no loader is
// configured. A loader error is returned to the caller as-is and nothing is
// inserted; retrying is the caller's responsibility.
//
// # Eviction Callbacks
//
// Set up a callback to clean up resources when entries are evicted. The
// callback fires once per removed entry, whether removal happens through
// capacity trimming, Clear or Dispose:
//
//	connCache := recache.New[*Connection](
//		recache.WithCapacity[*Connection](50),
//		recache.WithEvictCallback(func(key uint64, conn *Connection) {
//			conn.Close()
//		}),
//	)
//
// # Capacity
//
// Capacity is bounded to [MinCapacity, MaxCapacity] and defaults to
// DefaultCapacity. It can only grow for the lifetime of a cache instance;
// SetCapacity fails with ErrCapacityShrink when the requested value is below
// the current capacity. Growing never evicts entries.
//
// # Disposal
//
// Dispose tears the cache down exactly once, notifying the eviction callback
// for every remaining entry. Because callers typically rely on disposal-time
// cleanup, Dispose fails with ErrNoEvictCallback when no callback is
// registered, leaving the cache usable. After a successful Dispose every
// subsequent operation fails with ErrDisposed.
//
// # Thread Safety and Reentrancy
//
// All operations are safe for concurrent use. Every operation holds the
// cache mutex for its full duration, including while the loader and eviction
// callbacks run, so concurrent operations observe recency updates in a total
// order. The trade-off is reentrancy: a loader or eviction callback that
// calls back into the same cache instance deadlocks. Callbacks must not
// touch the cache that invoked them.
//
// # Performance Characteristics
//
// The implementation combines a slot arena linked into a recency sequence
// with a hash index from key to slot, giving O(1) lookup, O(1) move-to-head
// and O(1) tail eviction with memory proportional to the number of live
// entries.
package recache
